package models

import "time"

// Trail is a catalog entry for a fort trek. The catalog is seeded at
// migration time and served read-only; hazard reports reference it.
type Trail struct {
	ID         uint    `gorm:"primaryKey"`
	Name       string  `gorm:"size:128;uniqueIndex;not null"`
	FortName   string  `gorm:"size:128;not null"`
	Lat        float64 `gorm:"not null"`
	Lng        float64 `gorm:"not null"`
	ElevationM int     `gorm:"not null"`
	DistanceKm float64
	Difficulty string `gorm:"size:32"`
	Terrain    string `gorm:"size:64"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
