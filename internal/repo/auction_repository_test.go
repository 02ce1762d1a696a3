package repo

import (
	"AuctionHouse/internal/model"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAuctionRepository_CreateGetUpdate(t *testing.T) {
	db := newTestDB(t)
	r := NewAuctionRepository(db)
	owner := mkUser(t, db, "owner")

	ended := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	a := &model.Auction{UserID: owner.ID, Title: "Guitar", StartingPrice: decimal.RequireFromString("100.50"), EndedAt: ended}
	require.NoError(t, r.Create(bg, a))
	assert.NotZero(t, a.ID)

	got, err := r.GetByID(bg, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guitar", got.Title)
	assert.True(t, got.StartingPrice.Equal(decimal.RequireFromString("100.5")))
	assert.True(t, got.EndedAt.Equal(ended))

	var updated *model.Auction
	err = r.Atomically(bg, func(tx AuctionTx) error {
		var err error
		updated, err = tx.Update(a.ID, map[string]any{"title": "Bass", "starting_price": decimal.NewFromInt(120)})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "Bass", updated.Title)
	assert.True(t, updated.StartingPrice.Equal(decimal.NewFromInt(120)))

	err = r.Atomically(bg, func(tx AuctionTx) error {
		_, err := tx.Update(9999, map[string]any{"title": "x"})
		return err
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = r.GetByID(bg, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuctionRepository_DeleteCascadesBids(t *testing.T) {
	db := newTestDB(t)
	r := NewAuctionRepository(db)
	owner := mkUser(t, db, "owner")
	bidder := mkUser(t, db, "bidder")
	a := mkAuction(t, db, owner.ID, "10", time.Now().Add(time.Hour))
	mkBid(t, db, a.ID, bidder.ID, "11", model.BidWinning, time.Now())

	require.NoError(t, r.Atomically(bg, func(tx AuctionTx) error {
		n, err := tx.CountBids(a.ID)
		assert.Equal(t, int64(1), n)
		return err
	}))

	require.NoError(t, r.Delete(bg, a.ID))
	var left int64
	require.NoError(t, db.Model(&model.Bid{}).Count(&left).Error)
	assert.Zero(t, left, "bids must be removed with their auction")

	assert.ErrorIs(t, r.Delete(bg, a.ID), gorm.ErrRecordNotFound)
}

func TestAuctionRepository_GetWithBidsOrderedByAmount(t *testing.T) {
	db := newTestDB(t)
	r := NewAuctionRepository(db)
	owner := mkUser(t, db, "owner")
	b1 := mkUser(t, db, "b1")
	b2 := mkUser(t, db, "b2")
	a := mkAuction(t, db, owner.ID, "10", time.Now().Add(time.Hour))
	now := time.Now()
	mkBid(t, db, a.ID, b1.ID, "11", model.BidOutbid, now.Add(-3*time.Minute))
	mkBid(t, db, a.ID, b2.ID, "15", model.BidOutbid, now.Add(-2*time.Minute))
	mkBid(t, db, a.ID, b1.ID, "20", model.BidWinning, now.Add(-time.Minute))

	got, err := r.GetWithBids(bg, a.ID)
	require.NoError(t, err)
	if assert.Len(t, got.Bids, 3) {
		assert.Equal(t, "20", got.Bids[0].Amount.String())
		assert.Equal(t, "15", got.Bids[1].Amount.String())
		assert.Equal(t, "11", got.Bids[2].Amount.String())
	}
}

func TestAuctionRepository_Listings(t *testing.T) {
	db := newTestDB(t)
	r := NewAuctionRepository(db)
	alice := mkUser(t, db, "alice")
	bob := mkUser(t, db, "bob")
	now := time.Now().UTC().Truncate(time.Second)

	late := mkAuction(t, db, alice.ID, "1", now.Add(3*time.Hour))
	soon := mkAuction(t, db, alice.ID, "1", now.Add(time.Hour))
	oldest := mkAuction(t, db, alice.ID, "1", now.Add(-3*time.Hour))
	recent := mkAuction(t, db, alice.ID, "1", now.Add(-time.Hour))
	other := mkAuction(t, db, bob.ID, "1", now.Add(2*time.Hour))

	open, err := r.ListOpen(bg, now)
	require.NoError(t, err)
	if assert.Len(t, open, 3) {
		assert.Equal(t, soon.ID, open[0].ID)
		assert.Equal(t, other.ID, open[1].ID)
		assert.Equal(t, late.ID, open[2].ID)
	}

	// сначала идущие (по ended_at), затем завершённые (по ended_at)
	mine, err := r.ListByOwner(bg, alice.ID, now)
	require.NoError(t, err)
	ids := make([]int64, 0, len(mine))
	for _, a := range mine {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []int64{soon.ID, late.ID, oldest.ID, recent.ID}, ids)

	none, err := r.ListByOwner(bg, 9999, now)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAuctionRepository_AtomicallyRollsBackEdit(t *testing.T) {
	db := newTestDB(t)
	r := NewAuctionRepository(db)
	owner := mkUser(t, db, "owner")
	a := mkAuction(t, db, owner.ID, "10", time.Now().Add(time.Hour))

	boom := errors.New("boom")
	err := r.Atomically(bg, func(tx AuctionTx) error {
		_, err := tx.Update(a.ID, map[string]any{"title": "Changed"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := r.GetByID(bg, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Title, got.Title)

	err = r.Atomically(bg, func(tx AuctionTx) error {
		_, err := tx.LockAuction(9999)
		return err
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// Ставка, начатая во время правки, ждёт её коммита и не попадает между подсчётом ставок и обновлением.
func TestAuctionRepository_EditExcludesConcurrentBid(t *testing.T) {
	db := newTestDB(t)
	auctions := NewAuctionRepository(db)
	bids := NewBidRepository(db)
	owner := mkUser(t, db, "owner")
	bidder := mkUser(t, db, "bidder")
	a := mkAuction(t, db, owner.ID, "10", time.Now().Add(time.Hour))

	bidDone := make(chan error, 1)
	err := auctions.Atomically(bg, func(tx AuctionTx) error {
		locked, err := tx.LockAuction(a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, locked.ID)

		go func() {
			bidDone <- bids.Atomically(bg, func(btx BidTx) error {
				if _, err := btx.LockAuction(a.ID); err != nil {
					return err
				}
				return btx.Insert(&model.Bid{
					AuctionID: a.ID, UserID: bidder.ID, Amount: decimal.NewFromInt(11),
					Status: model.BidWinning, CreatedAt: time.Now().UTC(),
				})
			})
		}()
		time.Sleep(50 * time.Millisecond)

		n, err := tx.CountBids(a.ID)
		require.NoError(t, err)
		assert.Zero(t, n, "bid must not commit while the auction row is locked")

		_, err = tx.Update(a.ID, map[string]any{"starting_price": decimal.NewFromInt(20)})
		return err
	})
	require.NoError(t, err)
	require.NoError(t, <-bidDone)

	got, err := auctions.GetWithBids(bg, a.ID)
	require.NoError(t, err)
	assert.True(t, got.StartingPrice.Equal(decimal.NewFromInt(20)))
	assert.Len(t, got.Bids, 1)
}
