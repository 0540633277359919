package inbound

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/domain/review"
)

// UserService handles registration and login
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error)
	Login(ctx context.Context, cmd LoginCommand) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
}

// RegisterCommand carries registration input
type RegisterCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginCommand carries login input
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned after a successful register or login
type AuthResult struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ProfileService manages the health profile form
type ProfileService interface {
	Save(ctx context.Context, userID uuid.UUID, p *profile.Profile) (*profile.Profile, error)
	Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, error)
	// Health returns the eligibility view of the user's profile
	Health(ctx context.Context, userID uuid.UUID) (profile.Health, error)
}

// PredictionService produces meal recommendations
type PredictionService interface {
	Predict(ctx context.Context, userID uuid.UUID) (*PredictionResult, error)
}

// PredictionResult holds the new meals and the user's prediction history
type PredictionResult struct {
	Meals       json.RawMessage       `json:"meals"`
	Predictions []*profile.Prediction `json:"predictions"`
}

// ReviewService manages customer reviews
type ReviewService interface {
	Create(ctx context.Context, userID uuid.UUID, cmd CreateReviewCommand) (*review.Review, error)
	List(ctx context.Context, offset, limit int) ([]*review.Review, int64, error)
}

// CreateReviewCommand carries review input
type CreateReviewCommand struct {
	Rating int      `json:"rating" validate:"required,min=1,max=5"`
	Text   string   `json:"reviewText" validate:"required"`
	Images []string `json:"images" validate:"omitempty,max=5,dive,url"`
}
