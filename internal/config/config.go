package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	JWT           JWTConfig           `yaml:"jwt"`
	Logging       LoggingConfig       `yaml:"logging"`
	Relationships RelationshipsConfig `yaml:"relationships"`
	Seed          SeedConfig          `yaml:"seed"`
}

type ServerConfig struct {
	Port        string   `yaml:"port" env:"SERVER_PORT"`
	Mode        string   `yaml:"mode" env:"SERVER_MODE"`
	CORSOrigins []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
	// MigrationsDir is applied at startup when non-empty.
	MigrationsDir string `yaml:"migrations_dir" env:"SERVER_MIGRATIONS_DIR"`
}

type DatabaseConfig struct {
	Host            string `yaml:"host" env:"DB_HOST"`
	Port            string `yaml:"port" env:"DB_PORT"`
	User            string `yaml:"user" env:"DB_USER"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	DBName          string `yaml:"dbname" env:"DB_NAME"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
}

type JWTConfig struct {
	Secret                 string `yaml:"secret" env:"JWT_SECRET"`
	AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
	RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
	Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// RelationshipsConfig controls the connection and mentorship request policies.
type RelationshipsConfig struct {
	// AllowRerequestAfterDecline reopens a declined row instead of rejecting a new request.
	AllowRerequestAfterDecline bool `yaml:"allow_rerequest_after_decline" env:"RELATIONSHIPS_ALLOW_REREQUEST_AFTER_DECLINE"`
	// PendingTTL declines pending rows older than this. "0" disables expiry.
	PendingTTL string `yaml:"pending_ttl" env:"RELATIONSHIPS_PENDING_TTL"`
	// ExpirySchedule is a cron spec for the expiry sweep.
	ExpirySchedule string `yaml:"expiry_schedule" env:"RELATIONSHIPS_EXPIRY_SCHEDULE"`
}

// SeedConfig creates the first admin when AdminEmail is set.
type SeedConfig struct {
	AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
	AdminName     string `yaml:"admin_name" env:"SEED_ADMIN_NAME"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables.
// Precedence, lowest first: defaults, YAML file, .env, process environment.
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

	// godotenv.Load never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
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
	config.Server.CORSOrigins = []string{"http://localhost:5173"}
	config.Server.MigrationsDir = "migrations"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "mentorhub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "mentorhub.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Relationships.AllowRerequestAfterDecline = false
	config.Relationships.PendingTTL = "0"
	config.Relationships.ExpirySchedule = "@every 1h"

	config.Seed.AdminName = "Administrator"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.JWT.RefreshTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT refresh token expiration format: %w", err)
	}

	if ttl := config.Relationships.PendingTTL; ttl != "" && ttl != "0" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid relationships pending_ttl: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("relationships pending_ttl must not be negative")
		}
		if _, err := cron.ParseStandard(config.Relationships.ExpirySchedule); err != nil {
			return fmt.Errorf("invalid relationships expiry_schedule: %w", err)
		}
	}

	if config.Seed.AdminEmail != "" && config.Seed.AdminPassword == "" {
		return fmt.Errorf("seed admin_password is required when admin_email is set")
	}

	return nil
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
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
