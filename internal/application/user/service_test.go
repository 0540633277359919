package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/nutrimate/v1/internal/domain/user"
	"github.com/nutrimate/v1/internal/ports/inbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
	"github.com/nutrimate/v1/test/testutils"
)

type UserServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	faker   *gofakeit.Faker
	repo    *testutils.MockUserRepository
	tokens  *testutils.MockTokenIssuer
	service *UserService
	expiry  time.Time
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.faker = gofakeit.New(1)
	s.repo = &testutils.MockUserRepository{}
	s.tokens = &testutils.MockTokenIssuer{}
	s.expiry = time.Now().Add(time.Hour)
	s.service = NewUserService(s.repo, s.tokens, bcrypt.MinCost, zaptest.NewLogger(s.T()))
}

func (s *UserServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.tokens.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegister() {
	s.Run("NewEmail_ShouldCreateAndIssueToken", func() {
		s.repo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil).Once()
		s.repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil).Once()
		s.tokens.On("GenerateAccessToken", mock.AnythingOfType("uuid.UUID"), "new@example.com").
			Return("signed-token", s.expiry, nil).Once()

		result, err := s.service.Register(s.ctx, inbound.RegisterCommand{
			Email:    " New@Example.com ",
			Phone:    "9876543210",
			Password: "hunter22",
		})

		s.Require().NoError(err)
		s.Equal("signed-token", result.Token)
		s.NotEqual(uuid.Nil, result.UserID)
		s.Equal(s.expiry, result.ExpiresAt)
	})

	s.Run("TakenEmail_ShouldConflict", func() {
		s.repo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil).Once()

		_, err := s.service.Register(s.ctx, inbound.RegisterCommand{
			Email:    "taken@example.com",
			Phone:    "9876543210",
			Password: "hunter22",
		})

		s.True(apperrors.Is(err, apperrors.CodeEmailAlreadyExists))
	})

	s.Run("ShortPassword_ShouldFailValidation", func() {
		s.repo.On("ExistsByEmail", mock.Anything, "short@example.com").Return(false, nil).Once()

		_, err := s.service.Register(s.ctx, inbound.RegisterCommand{
			Email:    "short@example.com",
			Phone:    "9876543210",
			Password: "abc",
		})

		s.True(apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func (s *UserServiceTestSuite) TestLogin() {
	account := testutils.NewUser(s.faker)

	s.Run("ValidCredentials_ShouldIssueToken", func() {
		s.repo.On("FindByEmail", mock.Anything, account.Email()).Return(account, nil).Once()
		s.repo.On("Update", mock.Anything, account).Return(nil).Once()
		s.tokens.On("GenerateAccessToken", account.ID(), account.Email()).Return("tok", s.expiry, nil).Once()

		result, err := s.service.Login(s.ctx, inbound.LoginCommand{Email: account.Email(), Password: testutils.DefaultPassword})

		s.Require().NoError(err)
		s.Equal(account.ID(), result.UserID)
		s.NotNil(account.LastLoginAt())
	})

	s.Run("WrongPassword_ShouldReturnInvalidCredentials", func() {
		s.repo.On("FindByEmail", mock.Anything, account.Email()).Return(account, nil).Once()

		_, err := s.service.Login(s.ctx, inbound.LoginCommand{Email: account.Email(), Password: "wrong-password"})

		s.True(apperrors.Is(err, apperrors.CodeInvalidCredentials))
	})

	s.Run("UnknownEmail_ShouldReturnInvalidCredentials", func() {
		s.repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, user.ErrUserNotFound).Once()

		_, err := s.service.Login(s.ctx, inbound.LoginCommand{Email: "ghost@example.com", Password: "whatever"})

		s.True(apperrors.Is(err, apperrors.CodeInvalidCredentials))
	})

	s.Run("DeactivatedAccount_ShouldBeForbidden", func() {
		inactive := testutils.NewUser(s.faker)
		inactive.Deactivate()
		s.repo.On("FindByEmail", mock.Anything, inactive.Email()).Return(inactive, nil).Once()

		_, err := s.service.Login(s.ctx, inbound.LoginCommand{Email: inactive.Email(), Password: testutils.DefaultPassword})

		s.True(apperrors.Is(err, apperrors.CodeForbidden))
	})
}

func (s *UserServiceTestSuite) TestLogout() {
	s.tokens.On("RevokeToken", mock.Anything, "tok").Return(nil).Once()
	s.NoError(s.service.Logout(s.ctx, "tok"))

	s.tokens.On("RevokeToken", mock.Anything, "bad").Return(errors.New("redis down")).Once()
	s.Error(s.service.Logout(s.ctx, "bad"))
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
