package review

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	userID := uuid.New()

	r, err := NewReview(userID, 5, "  Helpful chatbot  ", []string{"https://cdn.example.com/a.png"})
	require.NoError(t, err)

	assert.Equal(t, userID, r.UserID)
	assert.Equal(t, "Helpful chatbot", r.Text)
	assert.Equal(t, []string{"https://cdn.example.com/a.png"}, r.Images)
}

func TestNewReview_Validation(t *testing.T) {
	userID := uuid.New()
	tooMany := strings.Split(strings.Repeat("https://x.io/i.png,", 6), ",")[:6]

	tests := []struct {
		name    string
		userID  uuid.UUID
		rating  int
		text    string
		images  []string
		wantErr error
	}{
		{"no author", uuid.Nil, 4, "ok", nil, ErrInvalidAuthor},
		{"rating too low", userID, 0, "ok", nil, ErrInvalidRating},
		{"rating too high", userID, 6, "ok", nil, ErrInvalidRating},
		{"blank text", userID, 3, "   ", nil, ErrTextRequired},
		{"too many images", userID, 3, "ok", tooMany, ErrTooManyImages},
		{"relative image", userID, 3, "ok", []string{"/uploads/a.png"}, ErrInvalidImage},
		{"ftp image", userID, 3, "ok", []string{"ftp://host/a.png"}, ErrInvalidImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReview(tt.userID, tt.rating, tt.text, tt.images)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
