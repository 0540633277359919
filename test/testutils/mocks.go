package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nutrimate/v1/internal/domain/chat"
	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/domain/review"
	"github.com/nutrimate/v1/internal/domain/user"
	"github.com/nutrimate/v1/internal/ports/inbound"
	"github.com/nutrimate/v1/internal/ports/outbound"
)

var (
	_ outbound.UserRepository       = (*MockUserRepository)(nil)
	_ outbound.ProfileRepository    = (*MockProfileRepository)(nil)
	_ outbound.ChatRepository       = (*MockChatRepository)(nil)
	_ outbound.PredictionRepository = (*MockPredictionRepository)(nil)
	_ outbound.ReviewRepository     = (*MockReviewRepository)(nil)
	_ outbound.CacheRepository      = (*MockCacheRepository)(nil)
	_ outbound.TokenIssuer          = (*MockTokenIssuer)(nil)
	_ outbound.MealPredictor        = (*MockMealPredictor)(nil)
	_ outbound.DomainMetrics        = (*MockDomainMetrics)(nil)
	_ inbound.ProfileService        = (*MockProfileService)(nil)
)

// MockUserRepository provides a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockProfileRepository provides a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Upsert(ctx context.Context, p *profile.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*profile.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockChatRepository provides a mock implementation of ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Save(ctx context.Context, msg *chat.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockChatRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit, skip int) ([]*chat.Message, int64, error) {
	args := m.Called(ctx, userID, limit, skip)
	msgs, _ := args.Get(0).([]*chat.Message)
	return msgs, args.Get(1).(int64), args.Error(2)
}

func (m *MockChatRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatRepository) Stats(ctx context.Context, userID uuid.UUID) (*chat.Stats, error) {
	args := m.Called(ctx, userID)
	if s, ok := args.Get(0).(*chat.Stats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPredictionRepository provides a mock implementation of PredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Create(ctx context.Context, p *profile.Prediction) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPredictionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*profile.Prediction, error) {
	args := m.Called(ctx, userID)
	preds, _ := args.Get(0).([]*profile.Prediction)
	return preds, args.Error(1)
}

// MockReviewRepository provides a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *review.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context, offset, limit int) ([]*review.Review, int64, error) {
	args := m.Called(ctx, offset, limit)
	reviews, _ := args.Get(0).([]*review.Review)
	return reviews, args.Get(1).(int64), args.Error(2)
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockTokenIssuer provides a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateAccessToken(userID uuid.UUID, email string) (string, time.Time, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) RevokeToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// MockMealPredictor provides a mock implementation of MealPredictor
type MockMealPredictor struct {
	mock.Mock
}

func (m *MockMealPredictor) Predict(ctx context.Context, p *profile.Profile) ([]byte, error) {
	args := m.Called(ctx, p)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

// MockDomainMetrics provides a mock implementation of DomainMetrics
type MockDomainMetrics struct {
	mock.Mock
}

func (m *MockDomainMetrics) RecordFoodQuery(outcome string) {
	m.Called(outcome)
}

func (m *MockDomainMetrics) RecordFoodEvaluation(food string, allowed bool) {
	m.Called(food, allowed)
}

func (m *MockDomainMetrics) RecordPrediction(result string) {
	m.Called(result)
}

// NewPermissiveMetrics returns a metrics mock that accepts any call
func NewPermissiveMetrics() *MockDomainMetrics {
	m := &MockDomainMetrics{}
	m.On("RecordFoodQuery", mock.Anything).Maybe()
	m.On("RecordFoodEvaluation", mock.Anything, mock.Anything).Maybe()
	m.On("RecordPrediction", mock.Anything).Maybe()
	return m
}

// MockProfileService provides a mock implementation of ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Save(ctx context.Context, userID uuid.UUID, p *profile.Profile) (*profile.Profile, error) {
	args := m.Called(ctx, userID, p)
	if saved, ok := args.Get(0).(*profile.Profile); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*profile.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) Health(ctx context.Context, userID uuid.UUID) (profile.Health, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(profile.Health), args.Error(1)
}
