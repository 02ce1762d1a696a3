package repo

import (
	"AuctionHouse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BidTx — операции над ставками одного аукциона внутри одной транзакции.
// Контекст (и дедлайн запроса) уже привязан к транзакции.
type BidTx interface {
	// LockAuction читает аукцион с блокировкой строки до конца транзакции
	// (SELECT ... FOR UPDATE; SQLite блокирует базу целиком).
	LockAuction(auctionID int64) (*model.Auction, error)
	// LatestBid — последняя по времени ставка, nil если ставок нет.
	LatestBid(auctionID int64) (*model.Bid, error)
	// HighestBid — ставка с максимальной суммой, nil если ставок нет.
	HighestBid(auctionID int64) (*model.Bid, error)
	// OutbidAll переводит все ставки аукциона в Outbid.
	OutbidAll(auctionID int64) error
	Insert(bid *model.Bid) error
}

// BidRepository — доступ к ставкам.
type BidRepository interface {
	// Atomically выполняет fn в одной транзакции: любая ошибка fn откатывает всё.
	Atomically(ctx context.Context, fn func(tx BidTx) error) error
	// ListByAuction — история ставок аукциона по убыванию суммы.
	ListByAuction(ctx context.Context, auctionID int64) ([]model.Bid, error)
	// ListCurrentByBidder — ставки пользователя на ещё открытые аукционы.
	ListCurrentByBidder(ctx context.Context, userID int64, now time.Time) ([]model.Bid, error)
	// ListWonByBidder — выигравшие ставки пользователя на закрытых аукционах.
	ListWonByBidder(ctx context.Context, userID int64, now time.Time) ([]model.Bid, error)
}

type bidRepo struct {
	db *gorm.DB
}

// NewBidRepository создаёт реализацию репозитория для Bid.
func NewBidRepository(db *gorm.DB) BidRepository {
	return &bidRepo{db: db}
}

func (r *bidRepo) Atomically(ctx context.Context, fn func(tx BidTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&bidTx{db: tx})
	})
}

func (r *bidRepo) ListByAuction(ctx context.Context, auctionID int64) ([]model.Bid, error) {
	var res []model.Bid
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			// только публичный профиль участника
			return db.Select("id", "first_name", "last_name")
		}).
		Preload("Auction").
		Where("auction_id = ?", auctionID).
		Order("amount DESC").
		Order("created_at ASC").
		Find(&res).Error
	return res, err
}

func (r *bidRepo) ListCurrentByBidder(ctx context.Context, userID int64, now time.Time) ([]model.Bid, error) {
	var res []model.Bid
	err := r.db.WithContext(ctx).
		Select("bids.*").
		Joins("JOIN auctions ON auctions.id = bids.auction_id").
		Preload("Auction").
		Where("bids.user_id = ? AND auctions.ended_at > ?", userID, now).
		Order("bids.created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *bidRepo) ListWonByBidder(ctx context.Context, userID int64, now time.Time) ([]model.Bid, error) {
	var res []model.Bid
	err := r.db.WithContext(ctx).
		Select("bids.*").
		Joins("JOIN auctions ON auctions.id = bids.auction_id").
		Preload("Auction").
		Where("bids.user_id = ? AND bids.status = ? AND auctions.ended_at <= ?", userID, model.BidWinning, now).
		Order("auctions.ended_at DESC").
		Find(&res).Error
	return res, err
}

type bidTx struct {
	db *gorm.DB
}

func (t *bidTx) LockAuction(auctionID int64) (*model.Auction, error) {
	var a model.Auction
	err := t.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).First(&a, auctionID).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (t *bidTx) LatestBid(auctionID int64) (*model.Bid, error) {
	return t.firstBid(auctionID, "created_at DESC", "id DESC")
}

func (t *bidTx) HighestBid(auctionID int64) (*model.Bid, error) {
	return t.firstBid(auctionID, "amount DESC", "created_at ASC")
}

func (t *bidTx) firstBid(auctionID int64, order ...string) (*model.Bid, error) {
	q := t.db.Where("auction_id = ?", auctionID)
	for _, o := range order {
		q = q.Order(o)
	}
	var bids []model.Bid
	if err := q.Limit(1).Find(&bids).Error; err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, nil
	}
	return &bids[0], nil
}

func (t *bidTx) OutbidAll(auctionID int64) error {
	return t.db.Model(&model.Bid{}).
		Where("auction_id = ? AND status <> ?", auctionID, model.BidOutbid).
		Update("status", model.BidOutbid).Error
}

func (t *bidTx) Insert(bid *model.Bid) error {
	return t.db.Create(bid).Error
}
