// Package prediction provides the application layer for meal recommendations
package prediction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/ports/inbound"
	"github.com/nutrimate/v1/internal/ports/outbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

// PredictionService runs the meal model for a user's profile
type PredictionService struct {
	profiles    inbound.ProfileService
	predictor   outbound.MealPredictor
	predictions outbound.PredictionRepository
	metrics     outbound.DomainMetrics
	logger      *zap.Logger
}

var _ inbound.PredictionService = (*PredictionService)(nil)

// NewPredictionService creates a new prediction service
func NewPredictionService(
	profiles inbound.ProfileService,
	predictor outbound.MealPredictor,
	predictions outbound.PredictionRepository,
	metrics outbound.DomainMetrics,
	logger *zap.Logger,
) *PredictionService {
	return &PredictionService{
		profiles:    profiles,
		predictor:   predictor,
		predictions: predictions,
		metrics:     metrics,
		logger:      logger.Named("prediction-service"),
	}
}

// Predict runs the model, stores its output and returns it with the
// user's prediction history
func (s *PredictionService) Predict(ctx context.Context, userID uuid.UUID) (*inbound.PredictionResult, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	out, err := s.predictor.Predict(ctx, p)
	if err != nil {
		s.metrics.RecordPrediction("error")
		s.logger.Error("Meal model failed", zap.String("user_id", userID.String()), zap.Error(err))
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.NewMLScriptError(err.Error(), err)
	}

	pred, err := profile.NewPrediction(userID, out)
	if err != nil {
		s.metrics.RecordPrediction("invalid_output")
		return nil, apperrors.NewMLScriptError("Invalid JSON output from model", err)
	}

	if err := s.predictions.Create(ctx, pred); err != nil {
		return nil, apperrors.NewDatabaseError("save prediction", err)
	}
	s.metrics.RecordPrediction("success")

	history, err := s.predictions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list predictions", err)
	}

	s.logger.Info("Meal prediction stored",
		zap.String("user_id", userID.String()),
		zap.String("prediction_id", pred.ID.String()),
	)

	return &inbound.PredictionResult{Meals: pred.Meals, Predictions: history}, nil
}
