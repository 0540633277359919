// Package gorm provides GORM model definitions and repositories
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone        string    `gorm:"type:varchar(32);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// HealthProfileModel represents the GORM model for health profiles.
// Nutrition targets are flattened into nutrition_* columns.
type HealthProfileModel struct {
	ID             uuid.UUID      `gorm:"type:char(36);primaryKey"`
	UserID         uuid.UUID      `gorm:"type:char(36);uniqueIndex;not null"`
	Name           string         `gorm:"type:varchar(255);not null"`
	DateOfBirth    time.Time      `gorm:"not null"`
	Gender         string         `gorm:"type:varchar(16);not null"`
	WeightKg       float64        `gorm:"not null"`
	HeightCm       float64        `gorm:"not null"`
	Conditions     StringSlice    `gorm:"type:json"`
	DietPreference string         `gorm:"type:varchar(32);not null"`
	Allergies      string         `gorm:"type:text"`
	ActivityLevel  string         `gorm:"type:varchar(32);not null"`
	Goals          string         `gorm:"type:text"`
	Nutrition      NutritionModel `gorm:"embedded;embeddedPrefix:nutrition_"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NutritionModel represents embedded nutrition targets
type NutritionModel struct {
	BMR           float64
	TDEE          float64
	EnergyKcal    float64
	ProteinG      float64
	CarbG         float64
	FatG          float64
	FiberG        float64
	FreeSugarG    float64
	CholesterolMg float64
}

// ChatMessageModel represents the GORM model for chat history
type ChatMessageModel struct {
	ID        uuid.UUID   `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID   `gorm:"type:char(36);not null;index:idx_chat_user_created,priority:1"`
	Message   string      `gorm:"type:text;not null"`
	Response  string      `gorm:"type:text;not null"`
	FoodItems StringSlice `gorm:"type:json"`
	IsAllowed *bool
	CreatedAt time.Time `gorm:"index:idx_chat_user_created,priority:2,sort:desc"`
}

// PredictionModel represents the GORM model for meal predictions
type PredictionModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Meals     RawJSON   `gorm:"type:json;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// ReviewModel represents the GORM model for customer reviews
type ReviewModel struct {
	ID         uuid.UUID   `gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID   `gorm:"type:char(36);not null;index"`
	Rating     int         `gorm:"not null"`
	ReviewText string      `gorm:"type:text;not null"`
	Images     StringSlice `gorm:"type:json"`
	CreatedAt  time.Time   `gorm:"index"`
}

// StringSlice custom type for handling string arrays stored as JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// RawJSON holds an opaque JSON document
type RawJSON json.RawMessage

// Scan implements the sql.Scanner interface
func (j *RawJSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append(RawJSON(nil), v...)
	case string:
		*j = RawJSON(v)
	default:
		return fmt.Errorf("cannot scan %T into RawJSON", value)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (j RawJSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "null", nil
	}
	return string(j), nil
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ChatMessageModel
func (m *ChatMessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (UserModel) TableName() string {
	return "users"
}

func (HealthProfileModel) TableName() string {
	return "health_profiles"
}

func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

func (PredictionModel) TableName() string {
	return "predictions"
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// AllModels lists every model for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&HealthProfileModel{},
		&ChatMessageModel{},
		&PredictionModel{},
		&ReviewModel{},
	}
}
