package service

import (
	"AuctionHouse/internal/model"
	"AuctionHouse/internal/repo"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BidService — журнал ставок: проверяет и атомарно фиксирует новую ставку,
// поддерживая единственную Winning-ставку на аукцион.
type BidService struct {
	bids     repo.BidRepository
	auctions *AuctionService
	logger   *zap.SugaredLogger
}

func NewBidService(bids repo.BidRepository, auctions *AuctionService, logger *zap.SugaredLogger) *BidService {
	return &BidService{bids: bids, auctions: auctions, logger: logger}
}

// PlaceBid принимает ставку amount от bidderID на аукцион auctionID.
//
// Проверки идут по порядку, первая проваленная возвращается как *RejectionError:
// аукцион существует, открыт, ставит не владелец, последняя ставка не этого же
// участника, сумма выше стартовой цены и выше текущей максимальной.
// Проверки и запись выполняются в одной транзакции под блокировкой аукциона,
// поэтому время закрытия и текущий максимум читаются там же, где вставляется ставка.
func (s *BidService) PlaceBid(ctx context.Context, auctionID, bidderID int64, amount decimal.Decimal) (*model.Bid, error) {
	if err := checkAmount(amount); err != nil {
		return nil, fmt.Errorf("%w: amount %v", ErrInvalidAmount, err)
	}

	release, err := s.auctions.locks.acquire(ctx, auctionID)
	if err != nil {
		return nil, s.fail(auctionID, bidderID, amount, err)
	}
	defer release()

	var placed *model.Bid
	err = s.bids.Atomically(ctx, func(tx repo.BidTx) error {
		auction, err := tx.LockAuction(auctionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuctionNotFound
			}
			return fmt.Errorf("lock auction: %w", err)
		}

		now := s.auctions.clock.Now()
		if err := s.check(tx, auction, bidderID, amount, now); err != nil {
			return err
		}

		if err := tx.OutbidAll(auctionID); err != nil {
			return fmt.Errorf("outbid previous bids: %w", err)
		}
		bid := &model.Bid{
			AuctionID: auctionID,
			UserID:    bidderID,
			Amount:    amount,
			Status:    model.BidWinning,
			CreatedAt: now,
		}
		if err := tx.Insert(bid); err != nil {
			return fmt.Errorf("insert bid: %w", err)
		}
		placed = bid
		return nil
	})
	if err != nil {
		return nil, s.fail(auctionID, bidderID, amount, err)
	}

	s.logger.Infow("bid placed",
		"auction_id", auctionID,
		"bidder_id", bidderID,
		"bid_id", placed.ID,
		"amount", amount.String(),
	)
	return placed, nil
}

func (s *BidService) check(tx repo.BidTx, auction *model.Auction, bidderID int64, amount decimal.Decimal, now time.Time) error {
	if !openAt(auction, now) {
		return ErrAuctionClosed
	}
	if OwnedBy(auction, bidderID) {
		return ErrSelfBid
	}

	latest, err := tx.LatestBid(auction.ID)
	if err != nil {
		return fmt.Errorf("latest bid: %w", err)
	}
	if latest != nil && latest.UserID == bidderID {
		return ErrConsecutiveBid
	}

	if !amount.GreaterThan(auction.StartingPrice) {
		return ErrBelowStartingPrice
	}

	highest, err := tx.HighestBid(auction.ID)
	if err != nil {
		return fmt.Errorf("highest bid: %w", err)
	}
	if highest != nil && !amount.GreaterThan(highest.Amount) {
		return ErrBelowHighestBid
	}
	return nil
}

// fail классифицирует ошибку: отказ по правилам, повторяемый конфликт или сбой хранилища.
func (s *BidService) fail(auctionID, bidderID int64, amount decimal.Decimal, err error) error {
	var rej *RejectionError
	switch {
	case errors.As(err, &rej):
		s.logger.Warnw("bid rejected",
			"auction_id", auctionID,
			"bidder_id", bidderID,
			"amount", amount.String(),
			"reason", rej.Code,
		)
		return err
	case repo.IsTransient(err):
		s.logger.Warnw("bid not committed, retryable",
			"auction_id", auctionID,
			"bidder_id", bidderID,
			"error", err,
		)
		return fmt.Errorf("place bid on auction %d: %w", auctionID, ErrBidConflict)
	default:
		s.logger.Errorw("place bid failed",
			"auction_id", auctionID,
			"bidder_id", bidderID,
			"error", err,
		)
		return fmt.Errorf("place bid on auction %d: %w", auctionID, err)
	}
}

// ListCurrentBidsOf — ставки пользователя на ещё открытые аукционы.
func (s *BidService) ListCurrentBidsOf(ctx context.Context, userID int64) ([]model.Bid, error) {
	return s.bids.ListCurrentByBidder(ctx, userID, s.auctions.clock.Now())
}

// ListWonBidsOf — выигранные пользователем аукционы (Winning-ставки на закрытых аукционах).
func (s *BidService) ListWonBidsOf(ctx context.Context, userID int64) ([]model.Bid, error) {
	return s.bids.ListWonByBidder(ctx, userID, s.auctions.clock.Now())
}

// ListBidsOf — история ставок аукциона по убыванию суммы.
func (s *BidService) ListBidsOf(ctx context.Context, auctionID int64) ([]model.Bid, error) {
	return s.bids.ListByAuction(ctx, auctionID)
}
