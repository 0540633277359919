// Package user provides the application layer for account management
package user

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/domain/user"
	"github.com/nutrimate/v1/internal/ports/inbound"
	"github.com/nutrimate/v1/internal/ports/outbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

// UserService implements registration, login and logout
type UserService struct {
	userRepo   outbound.UserRepository
	tokens     outbound.TokenIssuer
	bcryptCost int
	logger     *zap.Logger
}

var _ inbound.UserService = (*UserService)(nil)

// NewUserService creates a new user service
func NewUserService(
	userRepo outbound.UserRepository,
	tokens outbound.TokenIssuer,
	bcryptCost int,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger.Named("user-service"),
	}
}

// Register creates a new account and signs the user in
func (s *UserService) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.AuthResult, error) {
	cmd.Email = normalizeEmail(cmd.Email)
	s.logger.Info("Registering new user", zap.String("email", cmd.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, apperrors.NewDatabaseError("check existing user", err)
	}
	if exists {
		return nil, apperrors.NewEmailAlreadyExistsError(cmd.Email)
	}

	newUser, err := user.NewUser(cmd.Email, cmd.Phone, cmd.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, user.ErrPasswordHash) {
			return nil, apperrors.NewInternalError("failed to create user").WithCause(err)
		}
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrUserExists) {
			return nil, apperrors.NewEmailAlreadyExistsError(cmd.Email)
		}
		return nil, apperrors.NewDatabaseError("save user", err)
	}

	s.logger.Info("User registered successfully",
		zap.String("user_id", newUser.ID().String()),
		zap.String("email", newUser.Email()),
	)

	return s.issue(newUser)
}

// Login authenticates a user by email and password
func (s *UserService) Login(ctx context.Context, cmd inbound.LoginCommand) (*inbound.AuthResult, error) {
	cmd.Email = normalizeEmail(cmd.Email)
	s.logger.Info("User login attempt", zap.String("email", cmd.Email))

	account, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.NewInvalidCredentialsError()
		}
		return nil, apperrors.NewDatabaseError("find user", err)
	}

	if err := account.CheckPassword(cmd.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", cmd.Email))
		return nil, apperrors.NewInvalidCredentialsError()
	}

	if !account.IsActive() {
		return nil, apperrors.NewForbiddenError("account is deactivated")
	}

	account.RecordLogin()
	if err := s.userRepo.Update(ctx, account); err != nil {
		s.logger.Error("Failed to update last login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully", zap.String("user_id", account.ID().String()))

	return s.issue(account)
}

// Logout revokes the presented access token
func (s *UserService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.RevokeToken(ctx, token); err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

func (s *UserService) issue(u *user.User) (*inbound.AuthResult, error) {
	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID(), u.Email())
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate token").WithCause(err)
	}
	return &inbound.AuthResult{Token: token, UserID: u.ID(), ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
