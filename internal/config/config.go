package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

// Supported upload drivers.
const (
	UploadDriverLocal = "local"
	UploadDriverS3    = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Upload   UploadConfig
	S3       S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver      string // "postgres" or "mongo"
	AutoMigrate bool
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI      string
	Database string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds token and cookie configuration.
type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool
}

// UploadConfig holds product image upload configuration.
type UploadConfig struct {
	Driver   string // "local" or "s3"
	Dir      string
	MaxBytes int64
}

// S3Config holds AWS S3 configuration for uploaded images.
type S3Config struct {
	Bucket    string
	Region    string
	Prefix    string // Key prefix within bucket (e.g., "uploads/")
	PublicURL string
}

// Load loads configuration from an optional .env file and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Store: StoreConfig{
			Driver:      getEnv("STORE_DRIVER", StoreDriverPostgres),
			AutoMigrate: getEnvAsBool("AUTO_MIGRATE", true),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "trimmers"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "trimmers"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TokenTTL:     time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
			CookieSecure: getEnvAsBool("COOKIE_SECURE", false),
		},
		Upload: UploadConfig{
			Driver:   getEnv("UPLOAD_DRIVER", UploadDriverLocal),
			Dir:      getEnv("UPLOAD_DIR", "./public/uploads"),
			MaxBytes: getEnvAsInt64("UPLOAD_MAX_BYTES", 1024*1024),
		},
		S3: S3Config{
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Prefix:    getEnv("S3_PREFIX", "uploads/"),
			PublicURL: getEnv("S3_PUBLIC_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	case StoreDriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo URI is required")
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("mongo database name is required")
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be postgres or mongo)", c.Store.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT TTL must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Upload.MaxBytes < 1 {
		return fmt.Errorf("upload max bytes must be at least 1")
	}

	switch c.Upload.Driver {
	case UploadDriverLocal:
		if c.Upload.Dir == "" {
			return fmt.Errorf("upload directory is required for the local upload driver")
		}
	case UploadDriverS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for the s3 upload driver")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required for the s3 upload driver")
		}
		if c.S3.PublicURL == "" {
			return fmt.Errorf("S3 public URL is required for the s3 upload driver")
		}
	default:
		return fmt.Errorf("invalid upload driver: %s (must be local or s3)", c.Upload.Driver)
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as an int64 or returns a default value.
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
