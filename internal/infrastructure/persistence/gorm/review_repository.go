package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/nutrimate/v1/internal/domain/review"
	"github.com/nutrimate/v1/internal/ports/outbound"
)

// ReviewRepository implements the review repository using GORM
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) outbound.ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create stores a review
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	return r.db.WithContext(ctx).Create(ReviewToModel(rv)).Error
}

// List returns a page of reviews, newest first, and the total count
func (r *ReviewRepository) List(ctx context.Context, offset, limit int) ([]*review.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ReviewModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []ReviewModel
	err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = ModelToReview(&models[i])
	}
	return reviews, total, nil
}
