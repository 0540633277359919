package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutrimate/v1/internal/domain/profile"
)

// TokenIssuer mints access tokens for authenticated users
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, email string) (token string, expiresAt time.Time, err error)
	RevokeToken(ctx context.Context, token string) error
}

// MealPredictor runs the external meal recommendation model for a profile
// and returns its raw JSON output.
type MealPredictor interface {
	Predict(ctx context.Context, p *profile.Profile) ([]byte, error)
}

// DomainMetrics records business counters for chat and prediction traffic
type DomainMetrics interface {
	RecordFoodQuery(outcome string)
	RecordFoodEvaluation(food string, allowed bool)
	RecordPrediction(result string)
}
