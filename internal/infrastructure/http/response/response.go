// Package response writes the JSON envelope shared by every API endpoint
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	apperrors "github.com/nutrimate/v1/pkg/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorBody is the error part of the envelope
type ErrorBody struct {
	Code      apperrors.ErrorCode `json:"code"`
	Message   string              `json:"message"`
	Details   string              `json:"details,omitempty"`
	Fields    interface{}         `json:"fields,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// JSON writes v with the given status
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("Failed to encode JSON response", zap.Error(err))
	}
}

// OK writes a success envelope
func OK(w http.ResponseWriter, status int, data interface{}, message string) {
	JSON(w, status, APIResponse{Success: true, Data: data, Message: message})
}

// Error writes err as an error envelope. Errors that are not AppErrors are
// logged and reported as INTERNAL_ERROR without leaking their text.
func Error(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("An unexpected error occurred").WithCause(err)
	}

	status := appErr.StatusCode()
	requestID := chimw.GetReqID(r.Context())

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("path", r.URL.Path),
			zap.String("code", string(appErr.Code)),
			zap.String("details", appErr.Details),
			zap.Error(appErr.Cause),
		)
	}

	body := &ErrorBody{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: requestID,
	}
	if status >= http.StatusInternalServerError && appErr.Code == apperrors.CodeInternal {
		body.Details = ""
	}
	if fields, ok := appErr.Metadata["validation_errors"]; ok {
		body.Fields = fields
	}

	JSON(w, status, APIResponse{Success: false, Error: body})
}
