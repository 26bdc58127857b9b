package database

import (
	"fmt"

	"github.com/Karann1101/sahyadri-guardian/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.LoginEvent{},
		&models.Trail{},
		&models.HazardReport{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedTrails inserts the fort trek catalog. Idempotent: existing rows
// (matched by unique name) are left untouched.
func SeedTrails(db *gorm.DB) error {
	trails := []models.Trail{
		{
			Name:       "Sinhagad Fort Trek",
			FortName:   "Sinhagad Fort",
			Lat:        18.365664,
			Lng:        73.755269,
			ElevationM: 1312,
			DistanceKm: 2.7,
			Difficulty: "Moderate",
			Terrain:    "rocky ridge",
		},
		{
			Name:       "Rajgad Fort Trek",
			FortName:   "Rajgad Fort",
			Lat:        18.246111,
			Lng:        73.682222,
			ElevationM: 1376,
			DistanceKm: 5.2,
			Difficulty: "Challenging",
			Terrain:    "steep scramble",
		},
		{
			Name:       "Torna Fort Trek",
			FortName:   "Torna Fort",
			Lat:        18.276072,
			Lng:        73.622716,
			ElevationM: 1403,
			DistanceKm: 3.8,
			Difficulty: "Easy",
			Terrain:    "forest trail",
		},
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&trails).Error; err != nil {
		return fmt.Errorf("seed trails: %w", err)
	}
	return nil
}
