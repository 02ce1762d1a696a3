package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BidStatus — состояние ставки.
type BidStatus string

const (
	BidWinning BidStatus = "Winning"
	BidOutbid  BidStatus = "Outbid"
)

// Bid — ставка пользователя на аукцион.
// На один аукцион приходится не более одной ставки в статусе Winning.
type Bid struct {
	ID        int64 `gorm:"primaryKey" json:"id"`
	AuctionID int64 `gorm:"not null;index:idx_bids_auction_created,priority:1" json:"auction_id"`
	UserID    int64 `gorm:"not null;index" json:"user_id"` // участник, сделавший ставку

	Auction *Auction `json:"auction,omitempty"`
	User    *User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`

	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status BidStatus       `gorm:"type:varchar(16);not null;default:Winning" json:"status"`

	// выставляется сервисом из его часов, а не БД
	CreatedAt time.Time `gorm:"not null;index:idx_bids_auction_created,priority:2" json:"created_at"`
}
