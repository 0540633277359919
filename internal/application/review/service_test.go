package review

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nutrimate/v1/internal/domain/review"
	"github.com/nutrimate/v1/internal/ports/inbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
	"github.com/nutrimate/v1/test/testutils"
)

func TestReviewService_Create(t *testing.T) {
	repo := &testutils.MockReviewRepository{}
	service := NewReviewService(repo, zaptest.NewLogger(t))
	userID := uuid.New()

	t.Run("ValidReview_ShouldPersist", func(t *testing.T) {
		repo.On("Create", mock.Anything, mock.AnythingOfType("*review.Review")).Return(nil).Once()

		r, err := service.Create(context.Background(), userID, inbound.CreateReviewCommand{
			Rating: 5,
			Text:   "The chatbot caught the sugar in my dessert",
			Images: []string{"https://img.example.com/a.png"},
		})

		require.NoError(t, err)
		assert.Equal(t, userID, r.UserID)
		assert.Equal(t, 5, r.Rating)
	})

	t.Run("RatingOutOfRange_ShouldFailValidation", func(t *testing.T) {
		_, err := service.Create(context.Background(), userID, inbound.CreateReviewCommand{Rating: 9, Text: "x"})

		assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	repo.AssertExpectations(t)
}

func TestReviewService_List(t *testing.T) {
	repo := &testutils.MockReviewRepository{}
	service := NewReviewService(repo, zaptest.NewLogger(t))
	faker := gofakeit.New(11)
	stored := []*review.Review{testutils.NewReview(faker, uuid.New()), testutils.NewReview(faker, uuid.New())}

	repo.On("List", mock.Anything, 0, MaxPageSize).Return(stored, int64(2), nil).Once()

	reviews, total, err := service.List(context.Background(), -1, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, reviews, 2)
	repo.AssertExpectations(t)
}
