package security

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/infrastructure/config"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/memory"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

type TokenServiceTestSuite struct {
	suite.Suite
	cache   *memory.CacheRepository
	service *TokenService
	now     time.Time
	ctx     context.Context
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Now().Truncate(time.Second)
	suite.cache = memory.NewCacheRepository(time.Hour)
	suite.service = NewTokenService(config.AuthConfig{
		JWTSecret:     "test-secret-key-for-testing-only-32-bytes",
		JWTExpiration: time.Hour,
		Issuer:        "nutrimate",
	}, suite.cache, zap.NewNop())
	suite.service.now = func() time.Time { return suite.now }
}

func (suite *TokenServiceTestSuite) TearDownTest() {
	_ = suite.cache.Close()
}

func (suite *TokenServiceTestSuite) TestGenerateAndValidate() {
	userID := uuid.New()

	token, expiresAt, err := suite.service.GenerateAccessToken(userID, "asha@example.com")
	suite.Require().NoError(err)
	suite.Equal(suite.now.Add(time.Hour), expiresAt)
	suite.Len(strings.Split(token, "."), 3)

	claims, err := suite.service.ValidateToken(suite.ctx, token)
	suite.Require().NoError(err)
	suite.Equal(userID.String(), claims.UserID)
	suite.Equal("asha@example.com", claims.Email)
	suite.Equal("nutrimate", claims.Issuer)
	suite.NotEmpty(claims.ID)
}

func (suite *TokenServiceTestSuite) TestExpiredToken() {
	token, _, err := suite.service.GenerateAccessToken(uuid.New(), "a@b.co")
	suite.Require().NoError(err)

	suite.now = suite.now.Add(2 * time.Hour)

	_, err = suite.service.ValidateToken(suite.ctx, token)
	suite.True(apperrors.Is(err, apperrors.CodeUnauthorized))
}

func (suite *TokenServiceTestSuite) TestTamperedAndForeignTokens() {
	token, _, err := suite.service.GenerateAccessToken(uuid.New(), "a@b.co")
	suite.Require().NoError(err)

	_, err = suite.service.ValidateToken(suite.ctx, token+"x")
	suite.True(apperrors.Is(err, apperrors.CodeUnauthorized))

	other := NewTokenService(config.AuthConfig{
		JWTSecret:     "another-secret-another-secret-123",
		JWTExpiration: time.Hour,
	}, suite.cache, zap.NewNop())
	foreign, _, err := other.GenerateAccessToken(uuid.New(), "a@b.co")
	suite.Require().NoError(err)

	_, err = suite.service.ValidateToken(suite.ctx, foreign)
	suite.True(apperrors.Is(err, apperrors.CodeUnauthorized))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": uuid.New().String()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	suite.Require().NoError(err)

	_, err = suite.service.ValidateToken(suite.ctx, unsigned)
	suite.True(apperrors.Is(err, apperrors.CodeUnauthorized))
}

func (suite *TokenServiceTestSuite) TestRevokeToken() {
	token, _, err := suite.service.GenerateAccessToken(uuid.New(), "a@b.co")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.RevokeToken(suite.ctx, token))

	_, err = suite.service.ValidateToken(suite.ctx, token)
	suite.True(apperrors.Is(err, apperrors.CodeTokenRevoked))

	claims, err := suite.service.parse(token)
	suite.Require().NoError(err)
	revoked, err := suite.service.IsRevoked(suite.ctx, claims.ID)
	suite.Require().NoError(err)
	suite.True(revoked)
}

func (suite *TokenServiceTestSuite) TestRevokeGarbageIsNoop() {
	suite.NoError(suite.service.RevokeToken(suite.ctx, "not-a-token"))
	suite.Equal(0, suite.cache.Len())
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
