// Package review defines customer reviews of the service
package review

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
	MaxImages = 5
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrTextRequired  = errors.New("review text is required")
	ErrTooManyImages = errors.New("a review can have at most 5 images")
	ErrInvalidImage  = errors.New("image must be an absolute http(s) URL")
	ErrInvalidAuthor = errors.New("review must belong to a user")
)

// Review is a rating left by a user
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Text      string    `json:"reviewText"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"date"`
}

// NewReview validates and creates a review
func NewReview(userID uuid.UUID, rating int, text string, images []string) (*Review, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidAuthor
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if len(images) > MaxImages {
		return nil, ErrTooManyImages
	}
	for _, img := range images {
		u, err := url.Parse(img)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, ErrInvalidImage
		}
	}

	return &Review{
		ID:        uuid.New(),
		UserID:    userID,
		Rating:    rating,
		Text:      text,
		Images:    append([]string{}, images...),
		CreatedAt: time.Now().UTC(),
	}, nil
}
