package model

import "time"

// User — серверная модель участника аукционов.
type User struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	Login     string `gorm:"uniqueIndex;not null" json:"login,omitempty"`
	Password  string `gorm:"not null" json:"-"` // bcrypt-хеш
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
