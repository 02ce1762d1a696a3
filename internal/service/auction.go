package service

import (
	"AuctionHouse/internal/model"
	"AuctionHouse/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuctionService — реестр аукционов: существование, владелец, открыт/закрыт.
// Аукцион открыт, пока now < EndedAt; отдельного флага закрытия нет.
type AuctionService struct {
	repo   repo.AuctionRepository
	clock  Clock
	locks  *auctionLocks
	logger *zap.SugaredLogger
}

func NewAuctionService(r repo.AuctionRepository, clock Clock, logger *zap.SugaredLogger) *AuctionService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &AuctionService{repo: r, clock: clock, locks: newAuctionLocks(), logger: logger}
}

// NewAuction — данные для создания аукциона.
type NewAuction struct {
	Title         string
	Description   string
	StartingPrice decimal.Decimal
	EndedAt       time.Time
	Image         *string
}

// AuctionUpdate — частичное обновление; nil-поля не меняются.
type AuctionUpdate struct {
	Title         *string
	Description   *string
	StartingPrice *decimal.Decimal
	EndedAt       *time.Time
	Image         *string
}

// Get возвращает аукцион или ErrAuctionNotFound.
func (s *AuctionService) Get(ctx context.Context, id int64) (*model.Auction, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err)
	}
	return a, nil
}

// GetWithBids возвращает аукцион со ставками по убыванию суммы.
func (s *AuctionService) GetWithBids(ctx context.Context, id int64) (*model.Auction, error) {
	a, err := s.repo.GetWithBids(ctx, id)
	if err != nil {
		return nil, s.notFound(err)
	}
	return a, nil
}

// IsOwner — true, если userID создал аукцион.
func (s *AuctionService) IsOwner(ctx context.Context, userID, auctionID int64) (bool, error) {
	a, err := s.Get(ctx, auctionID)
	if err != nil {
		return false, err
	}
	return OwnedBy(a, userID), nil
}

// OwnedBy — проверка владельца без обращения к хранилищу.
func OwnedBy(a *model.Auction, userID int64) bool {
	return a.UserID == userID
}

// IsOpen — принимает ли аукцион ставки прямо сейчас.
func (s *AuctionService) IsOpen(a *model.Auction) bool {
	return openAt(a, s.clock.Now())
}

// IsOpenByID — IsOpen по идентификатору.
func (s *AuctionService) IsOpenByID(ctx context.Context, id int64) (bool, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return s.IsOpen(a), nil
}

func openAt(a *model.Auction, now time.Time) bool {
	return now.Before(a.EndedAt)
}

// Create создаёт аукцион владельца ownerID.
func (s *AuctionService) Create(ctx context.Context, ownerID int64, in NewAuction) (*model.Auction, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidAuction)
	}
	if err := validatePrice(in.StartingPrice); err != nil {
		return nil, err
	}
	if !in.EndedAt.After(s.clock.Now()) {
		return nil, fmt.Errorf("%w: ended_at must be in the future", ErrInvalidAuction)
	}

	a := &model.Auction{
		UserID:        ownerID,
		Title:         title,
		Description:   in.Description,
		StartingPrice: in.StartingPrice,
		EndedAt:       in.EndedAt.UTC(),
		Image:         in.Image,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Errorw("create auction failed", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("create auction: %w", err)
	}
	return a, nil
}

// Update меняет аукцион. Править может только владелец и только до закрытия;
// после первой ставки стартовая цена и время закрытия заморожены.
// Проверки и запись идут в одной транзакции под блокировкой строки аукциона,
// той же, что берёт PlaceBid.
func (s *AuctionService) Update(ctx context.Context, userID, id int64, upd AuctionUpdate) (*model.Auction, error) {
	release, err := s.locks.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	var updated *model.Auction
	err = s.repo.Atomically(ctx, func(tx repo.AuctionTx) error {
		a, err := tx.LockAuction(id)
		if err != nil {
			return s.notFound(err)
		}
		if !OwnedBy(a, userID) {
			return ErrNotOwner
		}
		if !s.IsOpen(a) {
			return ErrAuctionEnded
		}

		updates, err := s.changes(tx, id, upd)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			updated = a
			return nil
		}
		updated, err = tx.Update(id, updates)
		return err
	})
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrAuctionNotFound
	case errors.Is(err, ErrAuctionNotFound), errors.Is(err, ErrNotOwner), errors.Is(err, ErrAuctionEnded),
		errors.Is(err, ErrAuctionFrozen), errors.Is(err, ErrInvalidAuction):
		return nil, err
	default:
		s.logger.Errorw("update auction failed", "auction_id", id, "error", err)
		return nil, fmt.Errorf("update auction %d: %w", id, err)
	}
}

// changes собирает столбцы для обновления; цену и время закрытия можно менять только без ставок.
func (s *AuctionService) changes(tx repo.AuctionTx, id int64, upd AuctionUpdate) (map[string]any, error) {
	updates := map[string]any{}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidAuction)
		}
		updates["title"] = title
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Image != nil {
		updates["image"] = *upd.Image
	}
	if upd.StartingPrice == nil && upd.EndedAt == nil {
		return updates, nil
	}

	n, err := tx.CountBids(id)
	if err != nil {
		return nil, fmt.Errorf("count bids: %w", err)
	}
	if n > 0 {
		return nil, ErrAuctionFrozen
	}
	if upd.StartingPrice != nil {
		if err := validatePrice(*upd.StartingPrice); err != nil {
			return nil, err
		}
		updates["starting_price"] = *upd.StartingPrice
	}
	if upd.EndedAt != nil {
		if !upd.EndedAt.After(s.clock.Now()) {
			return nil, fmt.Errorf("%w: ended_at must be in the future", ErrInvalidAuction)
		}
		updates["ended_at"] = upd.EndedAt.UTC()
	}
	return updates, nil
}

// Delete удаляет аукцион владельца вместе со ставками.
func (s *AuctionService) Delete(ctx context.Context, userID, id int64) error {
	release, err := s.locks.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !OwnedBy(a, userID) {
		return ErrNotOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuctionNotFound
		}
		s.logger.Errorw("delete auction failed", "auction_id", id, "error", err)
		return fmt.Errorf("delete auction %d: %w", id, err)
	}
	return nil
}

// ListOpen — открытые аукционы, ближайшие к закрытию первыми.
func (s *AuctionService) ListOpen(ctx context.Context) ([]model.Auction, error) {
	return s.repo.ListOpen(ctx, s.clock.Now())
}

// ListByOwner — аукционы пользователя: сначала идущие, затем завершённые.
func (s *AuctionService) ListByOwner(ctx context.Context, userID int64) ([]model.Auction, error) {
	return s.repo.ListByOwner(ctx, userID, s.clock.Now())
}

func (s *AuctionService) notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAuctionNotFound
	}
	return err
}

func validatePrice(p decimal.Decimal) error {
	if err := checkAmount(p); err != nil {
		return fmt.Errorf("%w: starting_price %v", ErrInvalidAuction, err)
	}
	if !p.IsPositive() {
		return fmt.Errorf("%w: starting_price must be positive", ErrInvalidAuction)
	}
	return nil
}
