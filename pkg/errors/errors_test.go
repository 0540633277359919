package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", NewValidationError("message is required"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError(""), http.StatusUnauthorized},
		{"revoked", NewTokenRevokedError(), http.StatusUnauthorized},
		{"profile missing", NewProfileNotFoundError("u1"), http.StatusNotFound},
		{"email taken", NewEmailAlreadyExistsError("a@b.c"), http.StatusConflict},
		{"rate limited", NewTooManyRequestsError(), http.StatusTooManyRequests},
		{"ml failure", NewMLScriptError("exit status 1", nil), http.StatusBadGateway},
		{"method", NewAppError(CodeMethodNotAllowed, "Method not allowed", ""), http.StatusMethodNotAllowed},
		{"forbidden", NewForbiddenError(""), http.StatusForbidden},
		{"internal", NewInternalError(""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	cause := stderrors.New("boom")
	wrapped := Wrap(cause, "failed to save")
	require.NotNil(t, wrapped)
	assert.Equal(t, CodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped, cause)

	original := NewNotFoundError("review")
	assert.Same(t, original, Wrap(fmt.Errorf("context: %w", original), "other"))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewProfileNotFoundError("u1"))

	assert.True(t, Is(err, CodeProfileNotFound))
	assert.False(t, Is(err, CodeNotFound))
	assert.False(t, Is(stderrors.New("plain"), CodeInternal))
}

func TestNewNotFoundError_CapitalizesResource(t *testing.T) {
	assert.Equal(t, "Review not found", NewNotFoundError("review").Message)
	assert.Equal(t, "Resource not found", NewNotFoundError("").Message)
}

func TestValidationErrors(t *testing.T) {
	appErr := NewValidationErrors([]ValidationError{
		{Field: "email", Message: "email must be a valid email"},
		{Field: "password", Message: "password must be at least 6 characters"},
	})

	assert.Equal(t, CodeValidationFailed, appErr.Code)
	assert.Equal(t, "email must be a valid email; password must be at least 6 characters", appErr.Details)
	assert.Contains(t, appErr.Metadata, "validation_errors")
}

func TestStatusCode_UnknownCodeIsInternal(t *testing.T) {
	err := NewAppError(ErrorCode("SOMETHING_NEW"), "new", "")
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
	assert.Equal(t, http.StatusInternalServerError, NewDatabaseError("save message", stderrors.New("locked")).StatusCode())
}
