// Package profile provides the application layer for health profiles
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/ports/inbound"
	"github.com/nutrimate/v1/internal/ports/outbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

// DefaultHealthCacheTTL bounds how long a cached eligibility view is served
const DefaultHealthCacheTTL = 10 * time.Minute

// ProfileService implements the profile use cases
type ProfileService struct {
	profileRepo outbound.ProfileRepository
	cache       outbound.CacheRepository
	cacheTTL    time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

var _ inbound.ProfileService = (*ProfileService)(nil)

// NewProfileService creates a new profile service
func NewProfileService(
	profileRepo outbound.ProfileRepository,
	cache outbound.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ProfileService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultHealthCacheTTL
	}
	return &ProfileService{
		profileRepo: profileRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		now:         time.Now,
		logger:      logger.Named("profile-service"),
	}
}

// Save creates or replaces the user's profile
func (s *ProfileService) Save(ctx context.Context, userID uuid.UUID, p *profile.Profile) (*profile.Profile, error) {
	if p == nil {
		return nil, apperrors.NewBadRequestError("profile is required")
	}

	now := s.now().UTC()
	p.UserID = userID
	p.ApplyDefaults()
	if err := p.Validate(now); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	existing, err := s.profileRepo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	case errors.Is(err, profile.ErrProfileNotFound):
		p.ID = uuid.New()
		p.CreatedAt = now
	default:
		return nil, apperrors.NewDatabaseError("find profile", err)
	}
	p.UpdatedAt = now

	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperrors.NewDatabaseError("save profile", err)
	}

	if err := s.cache.Delete(ctx, healthKey(userID)); err != nil {
		s.logger.Warn("Failed to invalidate cached health view",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Profile saved",
		zap.String("user_id", userID.String()),
		zap.String("diet_preference", string(p.DietPreference)),
		zap.Strings("conditions", p.Conditions),
	)
	return p, nil
}

// Get returns the user's profile
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperrors.NewProfileNotFoundError(userID.String())
		}
		return nil, apperrors.NewDatabaseError("find profile", err)
	}
	return p, nil
}

// Health returns the eligibility view of the user's profile, served from
// cache when possible
func (s *ProfileService) Health(ctx context.Context, userID uuid.UUID) (profile.Health, error) {
	key := healthKey(userID)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var h profile.Health
		if err := json.Unmarshal(data, &h); err == nil {
			return h, nil
		}
		s.logger.Warn("Discarding unreadable cached health view", zap.String("key", key))
	} else if !errors.Is(err, outbound.ErrCacheMiss) {
		s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return profile.Health{}, err
	}

	h := p.Health()
	if data, err := json.Marshal(h); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return h, nil
}

func healthKey(userID uuid.UUID) string {
	return "profile:health:" + userID.String()
}
