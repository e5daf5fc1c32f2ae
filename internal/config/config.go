package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Rate limit backends
const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string   `yaml:"port" env:"SERVER_PORT"`
		Mode        string   `yaml:"mode" env:"SERVER_MODE"`
		CORSOrigins []string `yaml:"cors_origins" env:"CORS_ALLOWED_ORIGINS"`
		// ShutdownTimeout bounds the graceful drain of in-flight requests, e.g. "10s"
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Store struct {
		Driver string `yaml:"driver" env:"STORE_DRIVER"`
	} `yaml:"store"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Logging struct {
		Level      string `yaml:"level" env:"LOG_LEVEL"`
		Format     string `yaml:"format" env:"LOG_FORMAT"`
		File       string `yaml:"file" env:"LOG_FILE"`
		MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB"`
		MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS"`
		MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS"`
	} `yaml:"logging"`

	RateLimit struct {
		Enabled         bool   `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
		Backend         string `yaml:"backend" env:"RATE_LIMIT_BACKEND"`
		SearchPerMinute int    `yaml:"search_per_minute" env:"RATE_LIMIT_SEARCH"`
		ListPerMinute   int    `yaml:"list_per_minute" env:"RATE_LIMIT_LIST"`
		DetailPerMinute int    `yaml:"detail_per_minute" env:"RATE_LIMIT_DETAIL"`
		HealthPerMinute int    `yaml:"health_per_minute" env:"RATE_LIMIT_HEALTH"`
	} `yaml:"rate_limit"`

	Redis struct {
		URL string `yaml:"url" env:"REDIS_URL"`
	} `yaml:"redis"`

	Seed struct {
		File string `yaml:"file" env:"SEED_FILE"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file, a .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.CORSOrigins = []string{"*"}
	config.Server.ShutdownTimeout = "10s"

	config.Store.Driver = StoreDriverPostgres

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "schools"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.MaxSizeMB = 100
	config.Logging.MaxBackups = 5
	config.Logging.MaxAgeDays = 30

	config.RateLimit.Enabled = true
	config.RateLimit.Backend = RateLimitBackendMemory
	config.RateLimit.SearchPerMinute = 50
	config.RateLimit.ListPerMinute = 100
	config.RateLimit.DetailPerMinute = 200
	config.RateLimit.HealthPerMinute = 500
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Store.Driver {
	case StoreDriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection lifetime: %w", err)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	if config.RateLimit.Enabled {
		switch config.RateLimit.Backend {
		case RateLimitBackendMemory:
		case RateLimitBackendRedis:
			if config.Redis.URL == "" {
				return fmt.Errorf("redis url is required for the redis rate limit backend")
			}
		default:
			return fmt.Errorf("unknown rate limit backend %q", config.RateLimit.Backend)
		}

		limits := map[string]int{
			"search_per_minute": config.RateLimit.SearchPerMinute,
			"list_per_minute":   config.RateLimit.ListPerMinute,
			"detail_per_minute": config.RateLimit.DetailPerMinute,
			"health_per_minute": config.RateLimit.HealthPerMinute,
		}
		for name, v := range limits {
			if v <= 0 {
				return fmt.Errorf("rate_limit.%s must be positive", name)
			}
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}
