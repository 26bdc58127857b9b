package models

import "time"

// LoginEvent is an append-only audit record of a successful authentication.
// Rows are never updated or deleted.
type LoginEvent struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Email     string `gorm:"size:255;not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
