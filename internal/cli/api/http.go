package api

import (
	"AuctionHouse/internal/cli/repo"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const authCookieName = "auth_token"

// Endpoint склеивает адрес сервера и путь API.
func Endpoint(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// PostJSON sends a JSON POST request. If token is non-empty, it is passed as auth cookie.
func PostJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return do(ctx, http.MethodPost, url, bytes.NewReader(b), token)
}

// GetJSON sends a GET request with optional auth cookie.
func GetJSON(ctx context.Context, url string, token string) (*http.Response, []byte, error) {
	return do(ctx, http.MethodGet, url, nil, token)
}

func do(ctx context.Context, method, url string, body io.Reader, token string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: authCookieName, Value: token})
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, b, nil
}

// PersistAuthFromResponse извлекает auth cookie из ответа и сохраняет его в store.
func PersistAuthFromResponse(resp *http.Response, store repo.TokenStore) error {
	for _, c := range resp.Cookies() {
		if c.Name == authCookieName && c.Value != "" {
			return store.Save(c.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}

// ErrorMessage достаёт текст ошибки сервера: message из JSON-отказа или тело как есть.
func ErrorMessage(body []byte) string {
	var rej struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &rej); err == nil && rej.Message != "" {
		return rej.Message
	}
	return strings.TrimSpace(string(body))
}
