// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nutrimate/v1/internal/domain/chat"
	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/domain/review"
	"github.com/nutrimate/v1/internal/domain/user"
)

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// UserRepository defines the interface for account persistence
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	Update(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ProfileRepository stores one health profile per user
type ProfileRepository interface {
	// Upsert creates the profile or replaces the user's existing one
	Upsert(ctx context.Context, p *profile.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error)
}

// ChatRepository stores chat history
type ChatRepository interface {
	Save(ctx context.Context, msg *chat.Message) error
	// ListRecent returns up to limit messages after skipping the newest skip,
	// ordered newest first, plus the user's total message count.
	ListRecent(ctx context.Context, userID uuid.UUID, limit, skip int) ([]*chat.Message, int64, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Stats(ctx context.Context, userID uuid.UUID) (*chat.Stats, error)
}

// PredictionRepository stores meal predictions
type PredictionRepository interface {
	Create(ctx context.Context, p *profile.Prediction) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*profile.Prediction, error)
}

// ReviewRepository stores customer reviews
type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) error
	List(ctx context.Context, offset, limit int) ([]*review.Review, int64, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
