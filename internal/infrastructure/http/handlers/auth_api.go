package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/infrastructure/http/middleware"
	"github.com/nutrimate/v1/internal/infrastructure/http/response"
	"github.com/nutrimate/v1/internal/infrastructure/security"
	"github.com/nutrimate/v1/internal/ports/inbound"
)

// AuthAPIHandlers handles authentication API requests
type AuthAPIHandlers struct {
	users     inbound.UserService
	validator *security.Validator
	logger    *zap.Logger
}

// NewAuthAPIHandlers creates a new authentication API handlers instance
func NewAuthAPIHandlers(users inbound.UserService, validator *security.Validator, logger *zap.Logger) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		users:     users,
		validator: validator,
		logger:    logger,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.RegisterCommand
	if err := decodeJSON(r, h.validator, &cmd); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	result, err := h.users.Register(r.Context(), cmd)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusCreated, result, "User registered successfully")
}

// Login handles POST /api/v1/auth/login
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.LoginCommand
	if err := decodeJSON(r, h.validator, &cmd); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	result, err := h.users.Login(r.Context(), cmd)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, result, "Login successful")
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthAPIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.GetTokenFromContext(r.Context())
	if err := h.users.Logout(r.Context(), token); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	email, _ := middleware.GetUserEmailFromContext(r.Context())
	h.logger.Info("User logged out", zap.String("email", email))
	response.OK(w, http.StatusOK, nil, "Logged out")
}
