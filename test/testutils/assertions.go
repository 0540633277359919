package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the JSON envelope every API response is wrapped in
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details,omitempty"`
	} `json:"error,omitempty"`
}

// HTTPAssertions provides HTTP-specific assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// Envelope asserts the status code and decodes the JSON envelope
func (ha *HTTPAssertions) Envelope(rec *httptest.ResponseRecorder, expectedCode int) Envelope {
	ha.t.Helper()
	require.NotNil(ha.t, rec)
	assert.Equal(ha.t, expectedCode, rec.Code, rec.Body.String())
	assert.True(ha.t, strings.Contains(rec.Header().Get("Content-Type"), "application/json"),
		"Response should have JSON content type, got: %s", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(ha.t, json.Unmarshal(rec.Body.Bytes(), &env), "Response should be valid JSON")
	return env
}

// Data asserts a successful envelope and decodes its data into target
func (ha *HTTPAssertions) Data(rec *httptest.ResponseRecorder, expectedCode int, target interface{}) {
	ha.t.Helper()
	env := ha.Envelope(rec, expectedCode)
	require.True(ha.t, env.Success, rec.Body.String())
	require.NoError(ha.t, json.Unmarshal(env.Data, target))
}

// ErrorCode asserts a failed envelope with the given error code
func (ha *HTTPAssertions) ErrorCode(rec *httptest.ResponseRecorder, expectedStatus int, expectedCode string) Envelope {
	ha.t.Helper()
	env := ha.Envelope(rec, expectedStatus)
	assert.False(ha.t, env.Success)
	require.NotNil(ha.t, env.Error, "Response should contain error field")
	assert.Equal(ha.t, expectedCode, env.Error.Code)
	return env
}

// SecurityHeaders asserts that the API security headers are present
func (ha *HTTPAssertions) SecurityHeaders(rec *httptest.ResponseRecorder) {
	ha.t.Helper()
	for _, header := range []string{"X-Content-Type-Options", "X-Frame-Options", "Referrer-Policy"} {
		assert.NotEmpty(ha.t, rec.Header().Get(header), "Security header %s should be present", header)
	}
}
