// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/nutrimate/v1/internal/infrastructure/persistence/gorm"
)

// DemoEmail is the account created by SeedDatabase; its password is "password"
const DemoEmail = "demo@nutrimate.app"

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// a single connection keeps ":memory:" databases shared across queries
	if dbPath == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase creates a demo account with a diabetic, vegetarian profile
func SeedDatabase(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&gormModels.UserModel{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil // Already seeded
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	now := time.Now().UTC()
	demo := gormModels.UserModel{
		ID:           uuid.New(),
		Email:        DemoEmail,
		Phone:        "5550100100",
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&demo).Error; err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}

		profile := gormModels.HealthProfileModel{
			ID:             uuid.New(),
			UserID:         demo.ID,
			Name:           "Demo User",
			DateOfBirth:    time.Date(1985, time.March, 14, 0, 0, 0, 0, time.UTC),
			Gender:         "Female",
			WeightKg:       72,
			HeightCm:       164,
			Conditions:     gormModels.StringSlice{"Diabetes"},
			DietPreference: "Vegetarian",
			Allergies:      "",
			ActivityLevel:  "Light",
			Goals:          "Weight loss",
			Nutrition: gormModels.NutritionModel{
				BMR:        1420,
				TDEE:       1950,
				EnergyKcal: 1700,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create demo profile: %w", err)
		}
		return nil
	})
}
