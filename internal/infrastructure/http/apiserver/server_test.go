package apiserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	gormlogger "gorm.io/gorm/logger"

	chatapp "github.com/nutrimate/v1/internal/application/chat"
	predictionapp "github.com/nutrimate/v1/internal/application/prediction"
	profileapp "github.com/nutrimate/v1/internal/application/profile"
	reviewapp "github.com/nutrimate/v1/internal/application/review"
	userapp "github.com/nutrimate/v1/internal/application/user"
	"github.com/nutrimate/v1/internal/domain/food"
	"github.com/nutrimate/v1/internal/infrastructure/config"
	"github.com/nutrimate/v1/internal/infrastructure/monitoring"
	gormrepo "github.com/nutrimate/v1/internal/infrastructure/persistence/gorm"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/memory"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/sqlite"
	"github.com/nutrimate/v1/internal/infrastructure/security"
	"github.com/nutrimate/v1/internal/ports/inbound"
	"github.com/nutrimate/v1/pkg/healthcheck"
	"github.com/nutrimate/v1/test/testutils"
)

type ServerTestSuite struct {
	suite.Suite
	faker     *gofakeit.Faker
	cache     *memory.CacheRepository
	predictor *testutils.MockMealPredictor
	metrics   *monitoring.MetricsCollector
	handler   http.Handler
	assert    *testutils.HTTPAssertions
}

func (s *ServerTestSuite) SetupTest() {
	logger := zaptest.NewLogger(s.T(), zaptest.Level(zap.WarnLevel))
	s.faker = gofakeit.New(7)
	s.assert = testutils.NewHTTPAssertions(s.T())

	db, err := sqlite.SetupDatabase(":memory:", gormlogger.Silent)
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = sqlDB.Close() })

	s.cache = memory.NewCacheRepository(time.Minute)
	s.T().Cleanup(func() { _ = s.cache.Close() })

	s.metrics = monitoring.NewMetricsCollector(logger)
	s.predictor = &testutils.MockMealPredictor{}

	cfg := &config.Config{
		App: config.AppConfig{Name: "NutriMate", Version: "test", Environment: "test"},
		Server: config.ServerConfig{
			Port:           8080,
			WriteTimeout:   5 * time.Second,
			EnableCORS:     true,
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   1 << 20,
		},
		Auth:       config.AuthConfig{JWTSecret: "server-test-secret-0123456789abcdef", JWTExpiration: time.Hour},
		Monitoring: config.MonitoringConfig{EnableMetrics: true},
	}

	tokens := security.NewTokenService(cfg.Auth, s.cache, logger)
	profiles := profileapp.NewProfileService(gormrepo.NewProfileRepository(db), s.cache, time.Minute, logger)

	health := healthcheck.New("test", logger)
	health.SetCacheTTL(0)
	health.Register("database", healthcheck.NewDatabaseChecker(sqlDB))

	server, err := NewServer(cfg, logger, Dependencies{
		Users:       userapp.NewUserService(gormrepo.NewUserRepository(db), tokens, bcrypt.MinCost, logger),
		Profiles:    profiles,
		Chat:        chatapp.NewChatService(gormrepo.NewChatRepository(db), profiles, food.DefaultCatalog(), s.metrics, logger),
		Predictions: predictionapp.NewPredictionService(profiles, s.predictor, gormrepo.NewPredictionRepository(db), s.metrics, logger),
		Reviews:     reviewapp.NewReviewService(gormrepo.NewReviewRepository(db), logger),
		Tokens:      tokens,
		Validator:   security.NewValidator(),
		Metrics:     s.metrics,
		Health:      health,
	})
	s.Require().NoError(err)
	s.handler = server.Handler()
}

func (s *ServerTestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf).WithContext(context.Background())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) register() string {
	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", inbound.RegisterCommand{
		Email:    s.faker.Email(),
		Phone:    "5551234567",
		Password: "correct-horse",
	})

	var result inbound.AuthResult
	s.assert.Data(rec, http.StatusCreated, &result)
	s.Require().NotEmpty(result.Token)
	return result.Token
}

func (s *ServerTestSuite) saveProfile(token string) {
	rec := s.do(http.MethodPost, "/api/v1/profile", token, map[string]interface{}{
		"name":           s.faker.Name(),
		"dob":            "1985-06-15",
		"gender":         "Female",
		"weight":         68.5,
		"height":         165,
		"conditions":     []string{"Diabetes"},
		"dietPreference": "Vegetarian",
		"activityLevel":  "Light",
	})
	s.assert.Envelope(rec, http.StatusOK)
}

func (s *ServerTestSuite) TestHealthAndDocs() {
	rec := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"database"`)

	rec = s.do(http.MethodGet, "/health/live", "", nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/openapi.json", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	var doc map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &doc))
	s.Equal("3.0.3", doc["openapi"])
	s.Contains(doc["paths"], "/chat")
}

func (s *ServerTestSuite) TestFoodsIsPublic() {
	var foods []food.Entry
	s.assert.Data(s.do(http.MethodGet, "/api/v1/foods", "", nil), http.StatusOK, &foods)
	s.Len(foods, len(food.DefaultEntries()))

	rec := s.do(http.MethodGet, "/api/v1/foods", "", nil)
	s.assert.SecurityHeaders(rec)
}

func (s *ServerTestSuite) TestRoutingErrors() {
	s.assert.ErrorCode(s.do(http.MethodGet, "/api/v1/nope", "", nil), http.StatusNotFound, "NOT_FOUND")
	s.assert.ErrorCode(s.do(http.MethodPut, "/api/v1/foods", "", nil), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
	s.assert.ErrorCode(s.do(http.MethodPost, "/api/v1/chat", "", map[string]string{"message": "apple"}),
		http.StatusUnauthorized, "UNAUTHORIZED")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("email=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	s.Equal(http.StatusUnsupportedMediaType, rec.Code)
}

func (s *ServerTestSuite) TestRegisterValidation() {
	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "not-an-email"})
	s.assert.ErrorCode(rec, http.StatusBadRequest, "VALIDATION_FAILED")
}

func (s *ServerTestSuite) TestChatFlow() {
	token := s.register()

	s.assert.ErrorCode(s.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "can I eat an apple?"}),
		http.StatusNotFound, "PROFILE_NOT_FOUND")

	s.saveProfile(token)

	var denied inbound.AskResult
	s.assert.Data(s.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "Can I have chocolate?"}),
		http.StatusOK, &denied)
	s.Require().NotNil(denied.IsAllowed)
	s.False(*denied.IsAllowed)
	s.Equal([]string{"chocolate"}, denied.FoodItems)

	var allowed inbound.AskResult
	s.assert.Data(s.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "is carrot fine?"}),
		http.StatusOK, &allowed)
	s.Require().NotNil(allowed.IsAllowed)
	s.True(*allowed.IsAllowed)

	var page inbound.HistoryPage
	s.assert.Data(s.do(http.MethodGet, "/api/v1/chat/history?limit=1", token, nil), http.StatusOK, &page)
	s.Len(page.Messages, 1)
	s.Equal(int64(2), page.Pagination.Total)
	s.True(page.Pagination.HasMore)
	s.Equal("Can I have chocolate?", page.Messages[0].Text)

	var checks []inbound.FoodCheck
	s.assert.Data(s.do(http.MethodPost, "/api/v1/chat/check", token, map[string][]string{"foods": {"apple", "pizza"}}),
		http.StatusOK, &checks)
	s.Require().Len(checks, 2)
	s.True(checks[0].Found)
	s.False(checks[1].Found)

	s.assert.Envelope(s.do(http.MethodGet, "/api/v1/chat/stats", token, nil), http.StatusOK)
	s.assert.Envelope(s.do(http.MethodDelete, "/api/v1/chat/history", token, nil), http.StatusOK)

	s.assert.Data(s.do(http.MethodGet, "/api/v1/chat/history", token, nil), http.StatusOK, &page)
	s.Empty(page.Messages)

	rec := s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "nutrimate_food_queries_total")
}

func (s *ServerTestSuite) TestPredictAndReviews() {
	token := s.register()
	s.saveProfile(token)

	s.predictor.On("Predict", mock.Anything, mock.Anything).
		Return([]byte(`{"breakfast":"oats","lunch":"dal"}`), nil).Once()

	var prediction inbound.PredictionResult
	s.assert.Data(s.do(http.MethodPost, "/api/v1/predict", token, nil), http.StatusOK, &prediction)
	s.JSONEq(`{"breakfast":"oats","lunch":"dal"}`, string(prediction.Meals))
	s.Len(prediction.Predictions, 1)
	s.predictor.AssertExpectations(s.T())

	s.assert.Envelope(s.do(http.MethodPost, "/api/v1/reviews", token, inbound.CreateReviewCommand{
		Rating: 5,
		Text:   "The chat caught every dessert I tried to sneak in.",
	}), http.StatusCreated)

	var reviews struct {
		Total int64 `json:"total"`
		Limit int   `json:"limit"`
	}
	s.assert.Data(s.do(http.MethodGet, "/api/v1/reviews?limit=500", "", nil), http.StatusOK, &reviews)
	s.Equal(int64(1), reviews.Total)
	s.Equal(100, reviews.Limit)
}

func (s *ServerTestSuite) TestLogoutRevokesToken() {
	token := s.register()

	s.assert.Envelope(s.do(http.MethodPost, "/api/v1/auth/logout", token, nil), http.StatusOK)
	s.assert.ErrorCode(s.do(http.MethodGet, "/api/v1/profile", token, nil), http.StatusUnauthorized, "TOKEN_REVOKED")
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
