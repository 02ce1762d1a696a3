package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Auction — лот, открытый для ставок до EndedAt.
// Флага "закрыт" нет: открытость вычисляется сравнением EndedAt с текущим временем.
type Auction struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"` // владелец, ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Bids []Bid `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"bids,omitempty"`

	Title         string          `gorm:"not null" json:"title"`
	Description   string          `json:"description"`
	StartingPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"starting_price"`
	EndedAt       time.Time       `gorm:"not null;index" json:"ended_at"`
	Image         *string         `json:"image,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
