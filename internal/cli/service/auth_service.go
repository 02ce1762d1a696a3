package service

import (
	"AuctionHouse/internal/cli/api"
	"AuctionHouse/internal/cli/repo"
	"AuctionHouse/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrLoginTaken         = errors.New("login already in use")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrNotLoggedIn        = errors.New("not logged in, run `login` first")
)

// Store — токен и контекст пользователя в одном хранилище.
type Store interface {
	repo.TokenStore
	repo.UserContextStore
}

// AuthService — юзкейс-уровень аутентификации для CLI.
type AuthService struct {
	baseURL string
	store   Store
}

func NewAuthService(baseURL string, store Store) *AuthService {
	return &AuthService{baseURL: baseURL, store: store}
}

// Registration — данные для регистрации.
type Registration struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Register регистрирует пользователя и сохраняет выданный токен.
func (s *AuthService) Register(ctx context.Context, in Registration) (*model.User, error) {
	resp, body, err := api.PostJSON(ctx, api.Endpoint(s.baseURL, "/api/user/register"), in, "")
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return s.persist(resp, body)
	case http.StatusConflict:
		return nil, ErrLoginTaken
	default:
		return nil, fmt.Errorf("server error: %s", api.ErrorMessage(body))
	}
}

// Login входит и сохраняет выданный токен.
func (s *AuthService) Login(ctx context.Context, login, password string) (*model.User, error) {
	payload := map[string]string{"login": login, "password": password}
	resp, body, err := api.PostJSON(ctx, api.Endpoint(s.baseURL, "/api/user/login"), payload, "")
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return s.persist(resp, body)
	case http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("server error: %s", api.ErrorMessage(body))
	}
}

func (s *AuthService) persist(resp *http.Response, body []byte) (*model.User, error) {
	var u model.User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if err := api.PersistAuthFromResponse(resp, s.store); err != nil {
		return nil, fmt.Errorf("saving auth: %w", err)
	}
	if err := s.store.SaveUser(repo.UserContext{ID: u.ID, Login: u.Login}); err != nil {
		return nil, fmt.Errorf("saving user context: %w", err)
	}
	return &u, nil
}

// Logout очищает локальный контекст аутентификации.
func (s *AuthService) Logout() error {
	return s.store.Clear()
}

// CurrentUser возвращает вошедшего пользователя.
func (s *AuthService) CurrentUser() (repo.UserContext, error) {
	u, err := s.store.LoadUser()
	if err != nil {
		return repo.UserContext{}, ErrNotLoggedIn
	}
	return u, nil
}

// Token возвращает сохранённый токен или ErrNotLoggedIn.
func (s *AuthService) Token() (string, error) {
	tok, err := s.store.Load()
	if err != nil {
		return "", ErrNotLoggedIn
	}
	return tok, nil
}
