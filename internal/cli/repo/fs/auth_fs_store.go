package fs

import (
	"AuctionHouse/internal/cli/repo"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AuthFSStore — файловое хранилище токена и контекста пользователя для CLI.
// Токен лежит в TokenPath, контекст пользователя рядом, в TokenPath + ".user".
type AuthFSStore struct {
	TokenPath string
}

var (
	_ repo.TokenStore       = AuthFSStore{}
	_ repo.UserContextStore = AuthFSStore{}
)

func (s AuthFSStore) userPath() string { return s.TokenPath + ".user" }

func (s AuthFSStore) write(p, data string) error {
	if s.TokenPath == "" {
		return errors.New("token file path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(data), 0o600)
}

// read читает файл и обрезает завершающие переводы строк/пробелы.
func read(p string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	s := strings.TrimRight(string(b), " \t\r\n")
	if s == "" {
		return "", fmt.Errorf("empty file %s", p)
	}
	return s, nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	return s.write(s.TokenPath, token)
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	return read(s.TokenPath)
}

// Clear удаляет токен и контекст пользователя. Отсутствие файлов не ошибка.
func (s AuthFSStore) Clear() error {
	for _, p := range []string{s.TokenPath, s.userPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// SaveUser сохраняет id и логин вошедшего пользователя.
func (s AuthFSStore) SaveUser(u repo.UserContext) error {
	if u.ID <= 0 || u.Login == "" {
		return errors.New("empty user context")
	}
	return s.write(s.userPath(), strconv.FormatInt(u.ID, 10)+" "+u.Login)
}

// LoadUser читает контекст пользователя.
func (s AuthFSStore) LoadUser() (repo.UserContext, error) {
	line, err := read(s.userPath())
	if err != nil {
		return repo.UserContext{}, err
	}
	idStr, login, ok := strings.Cut(line, " ")
	if !ok {
		return repo.UserContext{}, errors.New("malformed user context")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return repo.UserContext{}, fmt.Errorf("malformed user context: %w", err)
	}
	return repo.UserContext{ID: id, Login: login}, nil
}
