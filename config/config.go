package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/infrastructure/archive"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/infrastructure/feed"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/logging"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/usecase"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Construction domain.ConstructionConstants
	Defaults     DefaultsConfig
	Auth         AuthConfig
	RateLimit    RateLimitConfig
	Feed         FeedConfig
	Archive      archive.Config
	Logging      logging.Config
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds the SQLite store location
type DatabaseConfig struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"`
}

// DefaultsConfig holds the labels used when a job leaves them unset
type DefaultsConfig struct {
	FinishName     string `mapstructure:"finish_name"`
	HingeType      string `mapstructure:"hinge_type"`
	DrawerType     string `mapstructure:"drawer_type"`
	Status         string `mapstructure:"status"`
	DeliveryMethod string `mapstructure:"delivery_method"`
}

// AuthConfig holds the bearer token settings for admin routes
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
	Burst int `mapstructure:"burst"`
}

// FeedConfig holds remote catalog feed configuration
type FeedConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	feed.Config `mapstructure:",squash"`
}

// IsDevelopment reports whether the server runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development" || c.Server.Environment == "test"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/kitchen-interchange/")

	// KITCHEN_SERVER_PORT -> server.port
	v.SetEnvPrefix("KITCHEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Database defaults
	v.SetDefault("database.path", "data/kitchen.db")
	v.SetDefault("database.busy_timeout_ms", 5000)

	// Construction constants, millimetres
	v.SetDefault("construction.toe_kick_height", 135)
	v.SetDefault("construction.base_height", 720)
	v.SetDefault("construction.base_depth", 575)
	v.SetDefault("construction.wall_height", 720)
	v.SetDefault("construction.wall_depth", 350)
	v.SetDefault("construction.tall_height", 2100)
	v.SetDefault("construction.tall_depth", 580)
	v.SetDefault("construction.benchtop_thickness", 33)
	v.SetDefault("construction.splashback_height", 600)
	v.SetDefault("construction.door_gap", 2)
	v.SetDefault("construction.drawer_gap", 2)
	v.SetDefault("construction.board_thickness", 18)
	v.SetDefault("construction.shelf_setback", 5)

	// Document labels
	v.SetDefault("defaults.finish_name", "Classic White")
	v.SetDefault("defaults.hinge_type", "Blum Clip Top Soft Close")
	v.SetDefault("defaults.drawer_type", "Blum Tandembox")
	v.SetDefault("defaults.status", "draft")
	v.SetDefault("defaults.delivery_method", "pickup")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "kitchen-planner")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	// Feed defaults
	v.SetDefault("feed.enabled", false)
	v.SetDefault("feed.timeout", "30s")
	v.SetDefault("feed.max_body_bytes", 20<<20)
	v.SetDefault("feed.requests_per_minute", 30)
	v.SetDefault("feed.max_attempts", 3)
	v.SetDefault("feed.allowed_hosts", []string{})

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.endpoint", "localhost:9000")
	v.SetDefault("archive.access_key", "")
	v.SetDefault("archive.secret_key", "")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.prefix", "assemblies")
	v.SetDefault("archive.use_ssl", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.development", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Database.Path == "" {
		return errors.New("database path is required (set KITCHEN_DATABASE_PATH)")
	}

	if err := usecase.ValidateConstants(config.Construction); err != nil {
		return fmt.Errorf("construction: %w", err)
	}

	if config.Auth.JWTSecret == "" && !config.IsDevelopment() {
		return errors.New("JWT secret is required outside development (set KITCHEN_AUTH_JWT_SECRET)")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit.per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Archive.Enabled && config.Archive.Bucket == "" {
		return errors.New("archive bucket is required when archive is enabled")
	}

	return nil
}

// loadEnvFile loads ./.env into the process environment when present.
// Variables already set are left alone.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
