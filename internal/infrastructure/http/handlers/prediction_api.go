package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/infrastructure/http/response"
	"github.com/nutrimate/v1/internal/ports/inbound"
)

// PredictionAPIHandlers runs meal predictions
type PredictionAPIHandlers struct {
	predictions inbound.PredictionService
	logger      *zap.Logger
}

// NewPredictionAPIHandlers creates the prediction handlers
func NewPredictionAPIHandlers(predictions inbound.PredictionService, logger *zap.Logger) *PredictionAPIHandlers {
	return &PredictionAPIHandlers{predictions: predictions, logger: logger}
}

// Predict handles POST /api/v1/predict
func (h *PredictionAPIHandlers) Predict(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	result, err := h.predictions.Predict(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, result, "Recommendations generated and saved successfully")
}
