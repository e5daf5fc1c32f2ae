package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/schooldirectory/internal/app/controllers"
	appMigrations "github.com/yigit/schooldirectory/internal/app/migrations"
	appRepos "github.com/yigit/schooldirectory/internal/app/repositories"
	appRoutes "github.com/yigit/schooldirectory/internal/app/routes"
	appServices "github.com/yigit/schooldirectory/internal/app/services"
	"github.com/yigit/schooldirectory/internal/config"
	"github.com/yigit/schooldirectory/internal/db"
	appMiddleware "github.com/yigit/schooldirectory/internal/middleware"
	"github.com/yigit/schooldirectory/internal/pkg/logger"
	"github.com/yigit/schooldirectory/internal/pkg/ratelimit"
	"github.com/yigit/schooldirectory/internal/seed"
)

// DefaultConfigPath is used when no config path is given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Store is the selected backing store with its lifecycle hooks
type Store struct {
	Driver string
	Repos  *appRepos.Repositories
	// DB is nil for the memory driver
	DB *db.PostgresDB
}

// Ping checks the store connection. Nil for stores that cannot go away.
func (s *Store) Ping() appControllers.PingFunc {
	if s.DB == nil {
		return nil
	}
	return func(ctx context.Context) error { return s.DB.Pool.Ping(ctx) }
}

// Close releases the store resources
func (s *Store) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             *Store
	Services          *appServices.Services
	SchoolController  *appControllers.SchoolController
	FacultyController *appControllers.FacultyController
	HealthController  *appControllers.HealthController
	Limiter           ratelimit.Limiter
	Redis             *redis.Client
	Logger            zerolog.Logger
}

// Close releases every resource held by the dependencies
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Error closing redis client")
		}
	}
	if d.Store != nil {
		d.Store.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   true,
		},
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured backing store. For PostgreSQL it also applies
// pending migrations.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		lgr.Warn().Msg("Using in-memory store, data will not survive a restart")
		return &Store{Driver: config.StoreDriverMemory, Repos: appRepos.NewMemoryRepositories()}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Store{
		Driver: config.StoreDriverPostgres,
		Repos:  appRepos.NewRepositories(database),
		DB:     database,
	}, nil
}

// SetupRateLimiter builds the limiter selected by configuration. It returns a nil
// limiter when rate limiting is disabled.
func SetupRateLimiter(cfg *config.Config, lgr zerolog.Logger) (ratelimit.Limiter, *redis.Client, error) {
	if !cfg.RateLimit.Enabled {
		lgr.Warn().Msg("Rate limiting disabled")
		return nil, nil, nil
	}

	rules := ratelimit.PerMinute(
		cfg.RateLimit.SearchPerMinute,
		cfg.RateLimit.ListPerMinute,
		cfg.RateLimit.DetailPerMinute,
		cfg.RateLimit.HealthPerMinute,
	)

	if cfg.RateLimit.Backend == config.RateLimitBackendRedis {
		client, err := ratelimit.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect rate limit backend: %w", err)
		}
		lgr.Info().Msg("Rate limiting with redis fixed windows")
		return ratelimit.NewRedisLimiter(client, rules, "schooldirectory:ratelimit"), client, nil
	}

	lgr.Info().Msg("Rate limiting with in-memory token buckets")
	return ratelimit.NewMemoryLimiter(rules), nil, nil
}

// BuildDependencies initializes application services, controllers and collaborators.
func BuildDependencies(ctx context.Context, cfg *config.Config, store *Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.Services = appServices.NewServices(store.Repos)

	limiter, redisClient, err := SetupRateLimiter(cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps.Limiter = limiter
	deps.Redis = redisClient

	if err := seed.CreateDefaultData(ctx, deps.Services.Schools, cfg.Seed.File, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	deps.SchoolController = appControllers.NewSchoolController(deps.Services.Schools)
	deps.FacultyController = appControllers.NewFacultyController(deps.Services.Faculties)
	deps.HealthController = appControllers.NewHealthController(store.Driver, store.Ping())

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	router.Use(cors.New(newCORSConfig(cfg.Server.CORSOrigins)))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.SchoolController,
		deps.FacultyController,
		deps.HealthController,
		deps.Limiter,
	)

	return router
}

// newCORSConfig allows every origin when origins is empty or contains "*".
func newCORSConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", appMiddleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{appMiddleware.RequestIDHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
		return corsConfig
	}
	corsConfig.AllowOrigins = origins
	return corsConfig
}
