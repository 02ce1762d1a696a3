package repo

import (
	"AuctionHouse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuctionTx — правка одного аукциона внутри транзакции под блокировкой его строки.
type AuctionTx interface {
	// LockAuction читает аукцион с блокировкой строки до конца транзакции.
	LockAuction(id int64) (*model.Auction, error)
	CountBids(auctionID int64) (int64, error)
	Update(id int64, updates map[string]any) (*model.Auction, error)
}

// AuctionRepository — доступ к аукционам.
type AuctionRepository interface {
	Create(ctx context.Context, a *model.Auction) error
	// GetByID возвращает gorm.ErrRecordNotFound, если аукциона нет.
	GetByID(ctx context.Context, id int64) (*model.Auction, error)
	// GetWithBids возвращает аукцион вместе со ставками (по убыванию суммы).
	GetWithBids(ctx context.Context, id int64) (*model.Auction, error)
	// Atomically выполняет fn в одной транзакции: ставка не может закоммититься
	// между чтением аукциона и его обновлением.
	Atomically(ctx context.Context, fn func(tx AuctionTx) error) error
	Delete(ctx context.Context, id int64) error
	// ListOpen — аукционы с ended_at > now, ближайшие к закрытию первыми.
	ListOpen(ctx context.Context, now time.Time) ([]model.Auction, error)
	// ListByOwner — сначала идущие аукционы пользователя, затем завершённые; внутри групп по ended_at.
	ListByOwner(ctx context.Context, userID int64, now time.Time) ([]model.Auction, error)
}

type auctionRepo struct {
	db *gorm.DB
}

// NewAuctionRepository создаёт реализацию репозитория для Auction.
func NewAuctionRepository(db *gorm.DB) AuctionRepository {
	return &auctionRepo{db: db}
}

func (r *auctionRepo) Create(ctx context.Context, a *model.Auction) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *auctionRepo) GetByID(ctx context.Context, id int64) (*model.Auction, error) {
	var a model.Auction
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *auctionRepo) GetWithBids(ctx context.Context, id int64) (*model.Auction, error) {
	var a model.Auction
	err := r.db.WithContext(ctx).
		Preload("Bids", func(db *gorm.DB) *gorm.DB {
			return db.Order("amount DESC").Order("created_at ASC")
		}).
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *auctionRepo) Atomically(ctx context.Context, fn func(tx AuctionTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&auctionTx{db: tx})
	})
}

func (r *auctionRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.Auction{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *auctionRepo) ListOpen(ctx context.Context, now time.Time) ([]model.Auction, error) {
	var res []model.Auction
	err := r.db.WithContext(ctx).
		Where("ended_at > ?", now).
		Order("ended_at ASC").
		Find(&res).Error
	return res, err
}

func (r *auctionRepo) ListByOwner(ctx context.Context, userID int64, now time.Time) ([]model.Auction, error) {
	var ongoing, finished []model.Auction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND ended_at > ?", userID, now).
		Order("ended_at ASC").
		Find(&ongoing).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND ended_at <= ?", userID, now).
		Order("ended_at ASC").
		Find(&finished).Error; err != nil {
		return nil, err
	}
	return append(ongoing, finished...), nil
}

type auctionTx struct {
	db *gorm.DB
}

func (t *auctionTx) LockAuction(id int64) (*model.Auction, error) {
	var a model.Auction
	err := t.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (t *auctionTx) CountBids(auctionID int64) (int64, error) {
	var n int64
	err := t.db.Model(&model.Bid{}).Where("auction_id = ?", auctionID).Count(&n).Error
	return n, err
}

func (t *auctionTx) Update(id int64, updates map[string]any) (*model.Auction, error) {
	res := t.db.Model(&model.Auction{ID: id}).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var a model.Auction
	if err := t.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
