package profile

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Prediction is a stored meal recommendation produced by the ML model
type Prediction struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Meals     json.RawMessage `json:"meals"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewPrediction wraps raw model output. Only JSON objects and arrays are accepted.
func NewPrediction(userID uuid.UUID, meals []byte) (*Prediction, error) {
	trimmed := bytes.TrimSpace(meals)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, ErrInvalidMeals
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, ErrInvalidMeals
	}

	return &Prediction{
		ID:        uuid.New(),
		UserID:    userID,
		Meals:     json.RawMessage(append([]byte(nil), trimmed...)),
		CreatedAt: time.Now().UTC(),
	}, nil
}
