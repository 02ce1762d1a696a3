package commands

import (
	"AuctionHouse/internal/config"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// withTempConfig собирает конфиг CLI с файлом токена во временном каталоге.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{ServerURL: serverURL, TokenFile: filepath.Join(t.TempDir(), "token")}
}

// loggedIn кладёт токен и контекст пользователя, как после успешного login.
func loggedIn(t *testing.T, cfg *config.Config, id, login string) {
	t.Helper()
	if err := os.WriteFile(cfg.TokenFile, []byte("tok-1"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	if err := os.WriteFile(cfg.TokenFile+".user", []byte(id+" "+login), 0o600); err != nil {
		t.Fatalf("write user: %v", err)
	}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}
