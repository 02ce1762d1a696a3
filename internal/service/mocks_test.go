package service

import (
	"AuctionHouse/internal/model"
	"AuctionHouse/internal/repo"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
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

// мок для repo.AuctionRepository
type mockAuctionRepo struct {
	mock.Mock
	tx *mockAuctionTx
}

func (m *mockAuctionRepo) Create(ctx context.Context, a *model.Auction) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockAuctionRepo) GetByID(ctx context.Context, id int64) (*model.Auction, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*model.Auction); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAuctionRepo) GetWithBids(ctx context.Context, id int64) (*model.Auction, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*model.Auction); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAuctionRepo) Atomically(ctx context.Context, fn func(tx repo.AuctionTx) error) error {
	m.Called(ctx)
	return fn(m.tx)
}
func (m *mockAuctionRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockAuctionRepo) ListOpen(ctx context.Context, now time.Time) ([]model.Auction, error) {
	args := m.Called(ctx, now)
	if v, ok := args.Get(0).([]model.Auction); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAuctionRepo) ListByOwner(ctx context.Context, userID int64, now time.Time) ([]model.Auction, error) {
	args := m.Called(ctx, userID, now)
	if v, ok := args.Get(0).([]model.Auction); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
var _ repo.AuctionRepository = (*mockAuctionRepo)(nil)

type mockAuctionTx struct{ mock.Mock }

func (m *mockAuctionTx) LockAuction(id int64) (*model.Auction, error) {
	args := m.Called(id)
	if a, ok := args.Get(0).(*model.Auction); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAuctionTx) CountBids(auctionID int64) (int64, error) {
	args := m.Called(auctionID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockAuctionTx) Update(id int64, updates map[string]any) (*model.Auction, error) {
	args := m.Called(id, updates)
	if a, ok := args.Get(0).(*model.Auction); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.AuctionTx = (*mockAuctionTx)(nil)

// мок для repo.BidRepository: Atomically прогоняет fn на моке транзакции
type mockBidRepo struct {
	mock.Mock
	tx *mockBidTx
}

func (m *mockBidRepo) Atomically(ctx context.Context, fn func(tx repo.BidTx) error) error {
	m.Called(ctx)
	return fn(m.tx)
}
func (m *mockBidRepo) ListByAuction(ctx context.Context, auctionID int64) ([]model.Bid, error) {
	args := m.Called(ctx, auctionID)
	if v, ok := args.Get(0).([]model.Bid); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBidRepo) ListCurrentByBidder(ctx context.Context, userID int64, now time.Time) ([]model.Bid, error) {
	args := m.Called(ctx, userID, now)
	if v, ok := args.Get(0).([]model.Bid); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBidRepo) ListWonByBidder(ctx context.Context, userID int64, now time.Time) ([]model.Bid, error) {
	args := m.Called(ctx, userID, now)
	if v, ok := args.Get(0).([]model.Bid); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.BidRepository = (*mockBidRepo)(nil)

type mockBidTx struct{ mock.Mock }

func (m *mockBidTx) LockAuction(auctionID int64) (*model.Auction, error) {
	args := m.Called(auctionID)
	if a, ok := args.Get(0).(*model.Auction); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBidTx) LatestBid(auctionID int64) (*model.Bid, error) {
	args := m.Called(auctionID)
	if b, ok := args.Get(0).(*model.Bid); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBidTx) HighestBid(auctionID int64) (*model.Bid, error) {
	args := m.Called(auctionID)
	if b, ok := args.Get(0).(*model.Bid); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBidTx) OutbidAll(auctionID int64) error {
	return m.Called(auctionID).Error(0)
}
func (m *mockBidTx) Insert(bid *model.Bid) error {
	args := m.Called(bid)
	if args.Error(0) == nil {
		bid.ID = 1
	}
	return args.Error(0)
}

var _ repo.BidTx = (*mockBidTx)(nil)

// fixedClock — часы, стоящие на месте
type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }
