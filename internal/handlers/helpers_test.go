package handlers_test

import (
	"AuctionHouse/internal/config"
	"AuctionHouse/internal/handlers"
	"AuctionHouse/internal/middleware"
	"AuctionHouse/internal/model"
	"AuctionHouse/internal/repo"
	"AuctionHouse/internal/service"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testEnv — роутер поверх настоящих сервисов и SQLite в памяти.
type testEnv struct {
	router http.Handler
	cfg    *config.Config
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{AuthSecret: "test-secret", AuthTTL: time.Hour}
	logger := zap.NewNop().Sugar()
	auctions := service.NewAuctionService(repo.NewAuctionRepository(db), service.SystemClock{}, logger)
	h := handlers.NewHandler(
		service.NewUserService(repo.NewUserRepository(db)),
		auctions,
		service.NewBidService(repo.NewBidRepository(db), auctions, logger),
		logger,
		cfg,
	)
	return &testEnv{router: h.Router, cfg: cfg, db: db}
}

// do выполняет запрос; userID == 0 означает анонимный запрос.
func (e *testEnv) do(t *testing.T, method, path, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		addAuth(t, req, userID, e.cfg.AuthSecret)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) user(t *testing.T, login string) *model.User {
	t.Helper()
	u := &model.User{Login: login, Password: "x", FirstName: strings.ToUpper(login[:1]) + login[1:]}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) auction(t *testing.T, ownerID int64, price string, endedAt time.Time) *model.Auction {
	t.Helper()
	a := &model.Auction{
		UserID:        ownerID,
		Title:         "Lot",
		StartingPrice: decimal.RequireFromString(price),
		EndedAt:       endedAt.UTC(),
	}
	require.NoError(t, e.db.Create(a).Error)
	return a
}

func addAuth(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, middleware.SetLoginCookie(rr, userID, secret))
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

func hasAuthCookie(rr *httptest.ResponseRecorder) bool {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "auth_token" && c.Value != "" {
			return true
		}
	}
	return false
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

// мок для repo.UserRepository: нужен там, где хранилище должно сломаться
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)
