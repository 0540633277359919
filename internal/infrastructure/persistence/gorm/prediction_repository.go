package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/ports/outbound"
)

// PredictionRepository implements the prediction repository using GORM
type PredictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *gorm.DB) outbound.PredictionRepository {
	return &PredictionRepository{db: db}
}

// Create stores a prediction
func (r *PredictionRepository) Create(ctx context.Context, p *profile.Prediction) error {
	return r.db.WithContext(ctx).Create(PredictionToModel(p)).Error
}

// FindByUserID lists the user's predictions, newest first
func (r *PredictionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*profile.Prediction, error) {
	var models []PredictionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	preds := make([]*profile.Prediction, len(models))
	for i := range models {
		preds[i] = ModelToPrediction(&models[i])
	}
	return preds, nil
}
