package repo

import (
	"AuctionHouse/internal/model"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB инициализирует отдельную in-memory SQLite (modernc.org/sqlite) на каждый тест
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := InitDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// хелперы для наполнения базы
func mkUser(t *testing.T, db *gorm.DB, login string) *model.User {
	t.Helper()
	u := &model.User{Login: login, Password: "hash", FirstName: "F" + login, LastName: "L" + login}
	require.NoError(t, db.Create(u).Error)
	return u
}

func mkAuction(t *testing.T, db *gorm.DB, ownerID int64, price string, endedAt time.Time) *model.Auction {
	t.Helper()
	a := &model.Auction{
		UserID:        ownerID,
		Title:         "lot",
		StartingPrice: decimal.RequireFromString(price),
		EndedAt:       endedAt.UTC(),
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func mkBid(t *testing.T, db *gorm.DB, auctionID, userID int64, amount string, status model.BidStatus, at time.Time) *model.Bid {
	t.Helper()
	b := &model.Bid{
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    decimal.RequireFromString(amount),
		Status:    status,
		CreatedAt: at.UTC(),
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestInitDB_DialectorSelection(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@localhost:5432/db", "postgres"},
		{"postgresql://u:p@localhost/db", "postgres"},
		{"host=localhost user=u dbname=db", "postgres"},
		{"mysql://u:p@tcp(localhost:3306)/db", "mysql"},
		{"auction.db", "sqlite"},
		{"file::memory:?cache=shared", "sqlite"},
	}
	for _, tt := range tests {
		if got := dialectorFor(tt.dsn).Name(); got != tt.want {
			t.Errorf("dialectorFor(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestSQLiteDSN_AddsPragmas(t *testing.T) {
	got := sqliteDSN("auction.db")
	require.Equal(t, "auction.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", got)

	got = sqliteDSN("file:x?mode=memory&_pragma=foreign_keys(0)")
	require.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(0)&_pragma=busy_timeout(5000)", got)
}

var bg = context.Background()
