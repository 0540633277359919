// Package review provides the application layer for customer reviews
package review

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/domain/review"
	"github.com/nutrimate/v1/internal/ports/inbound"
	"github.com/nutrimate/v1/internal/ports/outbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

// MaxPageSize caps one page of reviews
const MaxPageSize = 100

// ReviewService implements the review use cases
type ReviewService struct {
	reviewRepo outbound.ReviewRepository
	logger     *zap.Logger
}

var _ inbound.ReviewService = (*ReviewService)(nil)

// NewReviewService creates a new review service
func NewReviewService(reviewRepo outbound.ReviewRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		logger:     logger.Named("review-service"),
	}
}

// Create stores a new review by the user
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, cmd inbound.CreateReviewCommand) (*review.Review, error) {
	r, err := review.NewReview(userID, cmd.Rating, cmd.Text, cmd.Images)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.reviewRepo.Create(ctx, r); err != nil {
		return nil, apperrors.NewDatabaseError("create review", err)
	}

	s.logger.Info("Review created",
		zap.String("review_id", r.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("rating", r.Rating),
	)
	return r, nil
}

// List returns reviews newest first
func (s *ReviewService) List(ctx context.Context, offset, limit int) ([]*review.Review, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	reviews, total, err := s.reviewRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list reviews", err)
	}
	if reviews == nil {
		reviews = []*review.Review{}
	}
	return reviews, total, nil
}
