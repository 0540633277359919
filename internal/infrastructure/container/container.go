// Package container wires the application together with Uber FX
package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	chatapp "github.com/nutrimate/v1/internal/application/chat"
	predictionapp "github.com/nutrimate/v1/internal/application/prediction"
	profileapp "github.com/nutrimate/v1/internal/application/profile"
	reviewapp "github.com/nutrimate/v1/internal/application/review"
	userapp "github.com/nutrimate/v1/internal/application/user"
	"github.com/nutrimate/v1/internal/domain/food"
	"github.com/nutrimate/v1/internal/infrastructure/cache"
	"github.com/nutrimate/v1/internal/infrastructure/config"
	"github.com/nutrimate/v1/internal/infrastructure/http/apiserver"
	"github.com/nutrimate/v1/internal/infrastructure/ml"
	"github.com/nutrimate/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/nutrimate/v1/internal/infrastructure/persistence/gorm"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/memory"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/migrations"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/nutrimate/v1/internal/infrastructure/persistence/redis"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/sqlite"
	"github.com/nutrimate/v1/internal/infrastructure/security"
	"github.com/nutrimate/v1/internal/ports/inbound"
	"github.com/nutrimate/v1/internal/ports/outbound"
	"github.com/nutrimate/v1/pkg/healthcheck"
	"github.com/nutrimate/v1/pkg/logger"
)

// ConfigPath is the optional config file handed to config.Watch. Empty
// means the default search paths.
type ConfigPath string

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	DomainModule,
	SecurityModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule loads the configuration and keeps the log level in sync with
// later edits of the config file.
var ConfigModule = fx.Provide(
	func() zap.AtomicLevel {
		return zap.NewAtomicLevel()
	},
	func(path ConfigPath, level zap.AtomicLevel) (*config.Config, error) {
		return config.Watch(string(path),
			func(next *config.Config) {
				level.SetLevel(logger.ParseLevel(next.Logging.Level))
			},
			func(err error) {
				zap.L().Warn("Ignoring invalid config change", zap.Error(err))
			},
		)
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
		level.SetLevel(logger.ParseLevel(cfg.Logging.Level))
		log, err := logger.NewWithLevel(logger.Config{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			Development: cfg.App.Debug,
			OutputPaths: cfg.Logging.OutputPaths,
		}, level)
		if err != nil {
			return nil, err
		}
		zap.ReplaceGlobals(log)
		return log, nil
	},
)

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	fx.Annotate(
		func(m *monitoring.MetricsCollector) *monitoring.MetricsCollector { return m },
		fx.As(new(outbound.DomainMetrics)),
	),
	func(cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		return monitoring.NewTracingProvider(cfg.App, cfg.Monitoring, log)
	},
)

// DatabaseModule provides the gorm connection for the configured driver
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger, metrics *monitoring.MetricsCollector) (*gorm.DB, error) {
		var (
			db  *gorm.DB
			err error
		)

		switch cfg.Database.Driver {
		case "postgres":
			db, err = openPostgres(cfg, log)
		default:
			db, err = openSQLite(cfg, log)
		}
		if err != nil {
			return nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		metrics.RegisterDB(sqlDB, cfg.Database.Driver)

		return db, nil
	},
)

func openSQLite(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := sqlite.SetupDatabase(cfg.Database.Path, postgres.GORMLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
	}

	if cfg.IsDevelopment() {
		if err := sqlite.SeedDatabase(db); err != nil {
			log.Warn("Failed to seed database", zap.Error(err))
		}
	}

	log.Info("Connected to SQLite database", zap.String("path", cfg.Database.Path))
	return db, nil
}

func openPostgres(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	cm, err := postgres.NewConnectionManager(cfg, log)
	if err != nil {
		return nil, err
	}
	db := cm.GetDB()

	if cfg.Database.AutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := runMigrations(sqlDB, log); err != nil {
			_ = cm.Close()
			return nil, err
		}
	}

	return db, nil
}

func runMigrations(db *sql.DB, log *zap.Logger) error {
	m, err := migrations.New(db, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return m.Up()
}

// CacheBackend keeps the redis client reachable for health checks and shutdown
type CacheBackend struct {
	repo  outbound.CacheRepository
	redis *cache.RedisClient
	close func() error
}

// CacheModule provides the shared cache, backed by redis when enabled
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*CacheBackend, error) {
		if !cfg.Redis.Enabled {
			log.Info("Using in-memory cache")
			repo := memory.NewCacheRepository(time.Minute)
			return &CacheBackend{repo: repo, close: repo.Close}, nil
		}

		client, err := cache.NewRedisClient(&cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		return &CacheBackend{
			repo:  redisRepo.NewCacheRepository(client, cfg.Redis.KeyPrefix, log),
			redis: client,
			close: client.Close,
		}, nil
	},
	func(b *CacheBackend, metrics *monitoring.MetricsCollector) outbound.CacheRepository {
		return monitoring.NewInstrumentedCache(b.repo, metrics)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewUserRepository,
	gormRepo.NewProfileRepository,
	gormRepo.NewChatRepository,
	gormRepo.NewPredictionRepository,
	gormRepo.NewReviewRepository,
)

// DomainModule provides the food catalog
var DomainModule = fx.Provide(
	food.DefaultCatalog,
)

// SecurityModule provides tokens, validation and rate limiting
var SecurityModule = fx.Provide(
	func(cfg *config.Config, revoked outbound.CacheRepository, log *zap.Logger) *security.TokenService {
		return security.NewTokenService(cfg.Auth, revoked, log)
	},
	fx.Annotate(
		func(t *security.TokenService) *security.TokenService { return t },
		fx.As(new(outbound.TokenIssuer)),
	),
	security.NewValidator,
	func(cfg *config.Config, log *zap.Logger) *security.RateLimiter {
		if !cfg.RateLimit.Enable {
			return nil
		}
		return security.NewRateLimiter(cfg.RateLimit, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config, log *zap.Logger) *ml.ScriptRunner {
			return ml.NewScriptRunner(cfg.ML, log)
		},
		fx.As(new(outbound.MealPredictor)),
	),
	fx.Annotate(
		func(repo outbound.UserRepository, tokens outbound.TokenIssuer, cfg *config.Config, log *zap.Logger) *userapp.UserService {
			return userapp.NewUserService(repo, tokens, cfg.Auth.BCryptCost, log)
		},
		fx.As(new(inbound.UserService)),
	),
	fx.Annotate(
		func(repo outbound.ProfileRepository, c outbound.CacheRepository, cfg *config.Config, log *zap.Logger) *profileapp.ProfileService {
			return profileapp.NewProfileService(repo, c, cfg.Chat.ProfileCacheTTL, log)
		},
		fx.As(new(inbound.ProfileService)),
	),
	fx.Annotate(
		chatapp.NewChatService,
		fx.As(new(inbound.ChatService)),
	),
	fx.Annotate(
		predictionapp.NewPredictionService,
		fx.As(new(inbound.PredictionService)),
	),
	fx.Annotate(
		reviewapp.NewReviewService,
		fx.As(new(inbound.ReviewService)),
	),
)

// HTTPModule provides health checks and the API server
var HTTPModule = fx.Provide(
	NewHealthCheck,
	NewAPIServer,
)

// NewHealthCheck registers a checker for every backing service
func NewHealthCheck(cfg *config.Config, log *zap.Logger, db *gorm.DB, backend *CacheBackend, catalog *food.Catalog) (*healthcheck.HealthCheck, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	hc := healthcheck.New(cfg.App.Version, log)
	hc.Register("database", healthcheck.NewDatabaseChecker(sqlDB))
	if client := backend.redis; client != nil {
		hc.Register("redis", healthcheck.NewCustomChecker("redis",
			func(ctx context.Context) (healthcheck.Status, string, interface{}) {
				if err := client.Ping(ctx); err != nil {
					return healthcheck.StatusUnhealthy, err.Error(), nil
				}
				return healthcheck.StatusHealthy, "", client.Stats()
			}))
	}
	hc.Register("food_catalog", healthcheck.NewCustomChecker("food_catalog",
		func(ctx context.Context) (healthcheck.Status, string, interface{}) {
			n := len(catalog.Entries())
			if n == 0 {
				return healthcheck.StatusUnhealthy, "food catalog is empty", nil
			}
			return healthcheck.StatusHealthy, "", map[string]int{"foods": n}
		}))

	return hc, nil
}

// APIServerParams collects everything the router depends on
type APIServerParams struct {
	fx.In

	Config      *config.Config
	Logger      *zap.Logger
	Users       inbound.UserService
	Profiles    inbound.ProfileService
	Chat        inbound.ChatService
	Predictions inbound.PredictionService
	Reviews     inbound.ReviewService
	Tokens      *security.TokenService
	Validator   *security.Validator
	Limiter     *security.RateLimiter
	Metrics     *monitoring.MetricsCollector
	Health      *healthcheck.HealthCheck
}

// NewAPIServer builds the HTTP server
func NewAPIServer(p APIServerParams) (*apiserver.Server, error) {
	return apiserver.NewServer(p.Config, p.Logger, apiserver.Dependencies{
		Users:       p.Users,
		Profiles:    p.Profiles,
		Chat:        p.Chat,
		Predictions: p.Predictions,
		Reviews:     p.Reviews,
		Tokens:      p.Tokens,
		Validator:   p.Validator,
		Limiter:     p.Limiter,
		Metrics:     p.Metrics,
		Health:      p.Health,
	})
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// LifecycleParams are the resources started and stopped with the app
type LifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     *config.Config
	Logger     *zap.Logger
	DB         *gorm.DB
	Cache      *CacheBackend
	Limiter    *security.RateLimiter
	Tracing    *monitoring.TracingProvider
	Server     *apiserver.Server
}

// RegisterLifecycleHooks starts the server and releases resources in reverse order on stop
func RegisterLifecycleHooks(p LifecycleParams) {
	log := p.Logger

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting NutriMate",
				zap.String("version", p.Config.App.Version),
				zap.String("environment", p.Config.App.Environment),
				zap.String("database", p.Config.Database.Driver),
				zap.Bool("redis", p.Config.Redis.Enabled),
			)

			if p.Limiter != nil {
				p.Limiter.Start()
			}

			go func() {
				if err := p.Server.Start(); err != nil {
					log.Error("HTTP server failed", zap.Error(err))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down NutriMate")

			if err := p.Server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if p.Limiter != nil {
				p.Limiter.Stop()
			}

			if err := p.Tracing.Shutdown(ctx); err != nil {
				log.Error("Failed to flush traces", zap.Error(err))
			}

			if err := p.Cache.close(); err != nil {
				log.Error("Failed to close cache", zap.Error(err))
			}

			if sqlDB, err := p.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
