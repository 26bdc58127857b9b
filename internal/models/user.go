package models

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. Email is stored normalized
// (lowercased, trimmed); the unique index is the real uniqueness guarantee
// behind the friendlier pre-insert check in the signup handler.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	DisplayName  string `gorm:"size:64"`
	Role         string `gorm:"size:16;not null;default:user"`
	// no column default: gorm drops zero-value fields that carry one, which
	// would turn a created inactive account active. Signup sets it explicitly.
	IsActive bool `gorm:"not null"`
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
