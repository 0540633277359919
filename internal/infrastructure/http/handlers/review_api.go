package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/domain/review"
	"github.com/nutrimate/v1/internal/infrastructure/http/response"
	"github.com/nutrimate/v1/internal/infrastructure/security"
	"github.com/nutrimate/v1/internal/ports/inbound"
)

const maxReviewPage = 100

// ReviewPage is the list response for reviews
type ReviewPage struct {
	Reviews []*review.Review `json:"reviews"`
	Total   int64            `json:"total"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

// ReviewAPIHandlers serves customer reviews
type ReviewAPIHandlers struct {
	reviews   inbound.ReviewService
	validator *security.Validator
	logger    *zap.Logger
}

// NewReviewAPIHandlers creates the review handlers
func NewReviewAPIHandlers(reviews inbound.ReviewService, validator *security.Validator, logger *zap.Logger) *ReviewAPIHandlers {
	return &ReviewAPIHandlers{reviews: reviews, validator: validator, logger: logger}
}

// Create handles POST /api/v1/reviews
func (h *ReviewAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	var cmd inbound.CreateReviewCommand
	if err := decodeJSON(r, h.validator, &cmd); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	created, err := h.reviews.Create(r.Context(), userID, cmd)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusCreated, created, "Review submitted")
}

// List handles GET /api/v1/reviews?offset=&limit=
func (h *ReviewAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	if limit == 0 || limit > maxReviewPage {
		limit = maxReviewPage
	}

	reviews, total, err := h.reviews.List(r.Context(), offset, limit)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, ReviewPage{Reviews: reviews, Total: total, Offset: offset, Limit: limit}, "")
}
