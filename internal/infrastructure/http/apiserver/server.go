// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/infrastructure/config"
	"github.com/nutrimate/v1/internal/infrastructure/http/handlers"
	"github.com/nutrimate/v1/internal/infrastructure/http/middleware"
	"github.com/nutrimate/v1/internal/infrastructure/http/response"
	"github.com/nutrimate/v1/internal/infrastructure/monitoring"
	"github.com/nutrimate/v1/internal/infrastructure/security"
	"github.com/nutrimate/v1/internal/ports/inbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
	"github.com/nutrimate/v1/pkg/healthcheck"
)

// Dependencies are the collaborators the router needs. Limiter may be nil.
type Dependencies struct {
	Users       inbound.UserService
	Profiles    inbound.ProfileService
	Chat        inbound.ChatService
	Predictions inbound.PredictionService
	Reviews     inbound.ReviewService
	Tokens      middleware.TokenValidator
	Validator   *security.Validator
	Limiter     *security.RateLimiter
	Metrics     *monitoring.MetricsCollector
	Health      *healthcheck.HealthCheck
}

// Server is the NutriMate JSON API server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	deps    Dependencies
	openAPI *OpenAPIHandler
	router  *chi.Mux
	server  *http.Server
}

// NewServer builds the router and the underlying http.Server
func NewServer(cfg *config.Config, log *zap.Logger, deps Dependencies) (*Server, error) {
	openAPI, err := NewOpenAPIHandler(log)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:  cfg,
		logger:  log.Named("api-server"),
		deps:    deps,
		openAPI: openAPI,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        otelhttp.NewHandler(s.router, "nutrimate-api"),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s, nil
}

// Handler returns the fully wired router, without the tracing wrapper
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	if s.deps.Metrics != nil {
		r.Use(middleware.Metrics(s.deps.Metrics))
	}
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}

	if s.config.Server.WriteTimeout > 0 {
		r.Use(chimiddleware.Timeout(s.config.Server.WriteTimeout))
	}
	if s.config.Server.EnableCompression {
		r.Use(middleware.Compress(5))
	}
	if s.config.Server.MaxBodyBytes > 0 {
		r.Use(middleware.MaxBody(s.config.Server.MaxBodyBytes))
	}
	r.Use(middleware.JSONOnly())
	if s.deps.Limiter != nil {
		r.Use(middleware.RateLimit(s.deps.Limiter, s.logger))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, s.logger, apperrors.NewNotFoundError("route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, s.logger,
			apperrors.NewAppError(apperrors.CodeMethodNotAllowed, "Method not allowed", r.Method+" "+r.URL.Path))
	})

	healthPath := s.config.Monitoring.HealthCheckPath
	if healthPath == "" {
		healthPath = "/health"
	}
	if s.deps.Health != nil {
		r.Get(healthPath, s.deps.Health.Handler())
		r.Get(healthPath+"/live", s.deps.Health.LivenessHandler())
		r.Get(healthPath+"/ready", s.deps.Health.ReadinessHandler())
	}

	if s.config.Monitoring.EnableMetrics && s.deps.Metrics != nil {
		metricsPath := s.config.Monitoring.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.Method(http.MethodGet, metricsPath, s.deps.Metrics.Handler())
	}

	r.Get("/api/v1/openapi.yaml", s.openAPI.ServeOpenAPISpec)
	r.Get("/api/v1/openapi.json", s.openAPI.ServeOpenAPIJSON)
	r.Get("/api/v1/docs", s.openAPI.ServeSwaggerUI)

	r.Route("/api/v1", s.setupAPIV1Routes)

	return r
}

func (s *Server) setupAPIV1Routes(r chi.Router) {
	authH := handlers.NewAuthAPIHandlers(s.deps.Users, s.deps.Validator, s.logger)
	profileH := handlers.NewProfileAPIHandlers(s.deps.Profiles, s.deps.Validator, s.logger)
	chatH := handlers.NewChatAPIHandlers(s.deps.Chat, s.deps.Validator, s.logger)
	predictH := handlers.NewPredictionAPIHandlers(s.deps.Predictions, s.logger)
	reviewH := handlers.NewReviewAPIHandlers(s.deps.Reviews, s.deps.Validator, s.logger)

	authenticate := middleware.AuthenticateAPI(s.deps.Tokens, s.logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.With(authenticate).Post("/logout", authH.Logout)
	})

	r.Get("/foods", chatH.Foods)
	r.Get("/reviews", reviewH.List)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/profile", profileH.GetProfile)
		r.Post("/profile", profileH.SaveProfile)

		r.Route("/chat", func(r chi.Router) {
			r.Post("/", chatH.Ask)
			r.Get("/history", chatH.History)
			r.Delete("/history", chatH.ClearHistory)
			r.Get("/stats", chatH.Stats)
			r.Post("/check", chatH.CheckFoods)
		})

		r.Post("/predict", predictH.Predict)
		r.Post("/reviews", reviewH.Create)
	})
}

// Start serves until Shutdown is called. It returns nil on a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting NutriMate API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Server returns the underlying HTTP server instance
func (s *Server) Server() *http.Server {
	return s.server
}

// Shutdown drains in-flight requests, bounded by the configured shutdown timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")

	if timeout := s.config.Server.ShutdownTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.server.Shutdown(ctx)
}

