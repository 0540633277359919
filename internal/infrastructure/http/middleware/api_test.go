package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/infrastructure/config"
	"github.com/nutrimate/v1/internal/infrastructure/security"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

type stubValidator struct {
	claims *security.Claims
	err    error
}

func (s stubValidator) ValidateToken(ctx context.Context, token string) (*security.Claims, error) {
	return s.claims, s.err
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthenticateAPI(t *testing.T) {
	userID := uuid.New()

	t.Run("MissingHeader_ShouldReturn401", func(t *testing.T) {
		h := AuthenticateAPI(stubValidator{}, zap.NewNop())(http.HandlerFunc(okHandler))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), string(apperrors.CodeUnauthorized))
	})

	t.Run("RevokedToken_ShouldReturn401", func(t *testing.T) {
		h := AuthenticateAPI(stubValidator{err: apperrors.NewTokenRevokedError()}, zap.NewNop())(http.HandlerFunc(okHandler))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), string(apperrors.CodeTokenRevoked))
	})

	t.Run("ValidToken_ShouldPopulateContext", func(t *testing.T) {
		claims := &security.Claims{UserID: userID.String(), Email: "a@b.co"}
		var gotID uuid.UUID
		var gotToken string
		h := AuthenticateAPI(stubValidator{claims: claims}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, _ = GetUserIDFromContext(r.Context())
			gotToken, _ = GetTokenFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		req.Header.Set("Authorization", "bearer tok-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, "tok-123", gotToken)
	})
}

func TestJSONOnly(t *testing.T) {
	h := JSONOnly()(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader("message=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityAndCORS(t *testing.T) {
	h := Security()(CORS([]string{"https://app.nutrimate.test"})(http.HandlerFunc(okHandler)))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
	req.Header.Set("Origin", "https://app.nutrimate.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.nutrimate.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/foods", nil)
	req.Header.Set("Origin", "https://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	limiter := security.NewRateLimiter(config.RateLimitConfig{
		RequestsPerMin:  1,
		BurstSize:       1,
		CleanupInterval: time.Minute,
	}, zap.NewNop())

	r := chi.NewRouter()
	r.Use(RateLimit(limiter, zap.NewNop()))
	r.Get("/api/v1/foods", okHandler)

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/foods", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.1.1.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.1.1.1:5001"))
	assert.Equal(t, http.StatusOK, do("10.1.1.2:5000"))
}

func TestCompress_Brotli(t *testing.T) {
	payload := strings.Repeat(`{"food":"apple","allowed":true},`, 100)
	h := Compress(5)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods", nil)
	req.Header.Set("Accept-Encoding", "br")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "br", rec.Header().Get("Content-Encoding"))
	assert.Less(t, rec.Body.Len(), len(payload))
}
