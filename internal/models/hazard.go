package models

import "time"

// Hazard types reported on the trails.
const (
	HazardLandslide    = "landslide"
	HazardSlipperyRock = "slippery_rock"
	HazardFallenTree   = "fallen_tree"
	HazardFlooding     = "flooding"
	HazardWildlife     = "wildlife"
	HazardOther        = "other"
)

// Hazard severities.
const (
	SeverityLow      = "low"
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
	SeverityExtreme  = "extreme"
)

// Moderation states. New reports start as pending and move through
// verification by an admin.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusResolved = "resolved"
	StatusRejected = "rejected"
)

// HazardReport is a user-submitted trail hazard observation.
type HazardReport struct {
	ID          uint    `gorm:"primaryKey"`
	TrailID     *uint   `gorm:"index"` // nil for off-trail reports
	Lat         float64 `gorm:"not null"`
	Lng         float64 `gorm:"not null"`
	Type        string  `gorm:"size:32;not null;index"`
	Severity    string  `gorm:"size:16;not null;index"`
	Description string  `gorm:"size:1024"`
	Status      string  `gorm:"size:16;not null;default:pending;index"`
	ReportedBy  uint    `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Trail    *Trail `gorm:"constraint:OnDelete:SET NULL"`
	Reporter User   `gorm:"foreignKey:ReportedBy;constraint:OnDelete:CASCADE"`
}
