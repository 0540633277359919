// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/nutrimate/v1/internal/infrastructure/http/middleware"
	"github.com/nutrimate/v1/internal/infrastructure/security"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

// decodeJSON reads the request body into dst and validates it
func decodeJSON(r *http.Request, v *security.Validator, dst interface{}) error {
	if r.Body == nil {
		return apperrors.NewBadRequestError("Request body is required")
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.NewBadRequestError("Request body too large")
		case errors.Is(err, io.EOF):
			return apperrors.NewBadRequestError("Request body is required")
		default:
			return apperrors.NewBadRequestError("Invalid JSON payload")
		}
	}

	return v.Struct(dst)
}

// currentUser returns the authenticated caller
func currentUser(r *http.Request) (uuid.UUID, error) {
	id, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, apperrors.NewUnauthorizedError("Authentication required")
	}
	return id, nil
}

// queryInt parses an optional non-negative integer query parameter
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.NewBadRequestError(name + " must be a non-negative integer")
	}
	return n, nil
}
