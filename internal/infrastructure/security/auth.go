// Package security provides token issuance, request validation and rate
// limiting for the HTTP API.
package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/infrastructure/config"
	"github.com/nutrimate/v1/internal/ports/outbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

const revokedKeyPrefix = "revoked_token:"

// Claims is the JWT payload carried by access tokens
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 access tokens. Logged-out tokens
// are remembered in the cache by their jti until they would have expired.
type TokenService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	revoked    outbound.CacheRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewTokenService creates a token service from the auth config
func NewTokenService(cfg config.AuthConfig, revoked outbound.CacheRepository, logger *zap.Logger) *TokenService {
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "nutrimate"
	}
	return &TokenService{
		secret:     []byte(cfg.JWTSecret),
		issuer:     issuer,
		expiration: cfg.JWTExpiration,
		revoked:    revoked,
		logger:     logger,
		now:        time.Now,
	}
}

// GenerateAccessToken creates a new access token for the user
func (s *TokenService) GenerateAccessToken(userID uuid.UUID, email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{s.issuer + "-api"},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken parses the token, checks signature, expiry and issuer, and
// rejects tokens that were revoked.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid or expired token").WithCause(err)
	}

	revoked, err := s.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("Failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
	} else if revoked {
		return nil, apperrors.NewTokenRevokedError()
	}

	return claims, nil
}

// RevokeToken adds the token's jti to the revocation list. Tokens that no
// longer parse are already unusable and are ignored.
func (s *TokenService) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		s.logger.Debug("Skipping revocation of invalid token", zap.Error(err))
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.revoked.Set(ctx, revokedKeyPrefix+claims.ID, []byte("revoked"), ttl); err != nil {
		return fmt.Errorf("failed to store revoked token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the jti is on the revocation list
func (s *TokenService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return s.revoked.Exists(ctx, revokedKeyPrefix+jti)
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, fmt.Errorf("invalid user id claim: %w", err)
	}

	return claims, nil
}

var _ outbound.TokenIssuer = (*TokenService)(nil)
