// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sangostudent/backend/internal/models"
)

// Supported attempt log drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Session   SessionConfig
}

// DatabaseConfig holds attempt log database settings.
// An empty Driver disables the attempt log.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Path     string // SQLite database file
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds per-IP rate limiting settings
type RateLimitConfig struct {
	RequestsPerMinute int
}

// SessionConfig holds learner session settings
type SessionConfig struct {
	TTL               time.Duration
	CleanupInterval   time.Duration
	DefaultLanguage   models.Language
	InitialHearts     int
	InitialExperience int
	InitialStreak     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	// Database configuration
	if err := loadDatabase(&cfg.Database); err != nil {
		return nil, err
	}

	// Server configuration
	if cfg.Server.Port, err = intEnv("SERVER_PORT", 8080); err != nil {
		return nil, err
	}

	// Logging configuration
	cfg.Logging.Level = stringEnv("LOG_LEVEL", "info")

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Rate limit configuration
	if cfg.RateLimit.RequestsPerMinute, err = intEnv("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimit.RequestsPerMinute <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}

	// Session configuration
	if cfg.Session.TTL, err = durationEnv("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Session.CleanupInterval, err = durationEnv("SESSION_CLEANUP_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.Session.CleanupInterval <= 0 {
		return nil, fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive")
	}
	if cfg.Session.DefaultLanguage, err = models.ParseLanguage(stringEnv("DEFAULT_LANGUAGE", "fr")); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_LANGUAGE: %w", err)
	}
	if cfg.Session.InitialHearts, err = intEnv("INITIAL_HEARTS", 5); err != nil {
		return nil, err
	}
	if cfg.Session.InitialExperience, err = intEnv("INITIAL_EXPERIENCE", 120); err != nil {
		return nil, err
	}
	if cfg.Session.InitialStreak, err = intEnv("INITIAL_STREAK", 3); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDatabase reads the attempt log settings required by the selected driver
func loadDatabase(db *DatabaseConfig) error {
	db.Driver = strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))

	switch db.Driver {
	case "":
		return nil
	case DriverSQLite:
		db.Path = stringEnv("DB_PATH", "sango.db")
		return nil
	case DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q, must be '%s' or '%s'", db.Driver, DriverMySQL, DriverSQLite)
	}

	required := []struct {
		name string
		dst  *string
	}{
		{"DB_HOST", &db.Host},
		{"DB_USER", &db.User},
		{"DB_PASSWORD", &db.Password},
		{"DB_NAME", &db.DBName},
	}
	for _, r := range required {
		*r.dst = os.Getenv(r.name)
		if *r.dst == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	db.Port = dbPort

	return nil
}

// DatabaseEnabled reports whether the attempt log should be written to a database
func (c *Config) DatabaseEnabled() bool {
	return c.Database.Driver != ""
}

// DSN returns the database connection string for the configured driver
func (c *Config) DSN() string {
	switch c.Database.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.DBName,
		)
	case DriverSQLite:
		return fmt.Sprintf("file:%s?_busy_timeout=5000", c.Database.Path)
	default:
		return ""
	}
}

// parseOrigins splits a comma-separated origin list, defaulting to all origins
func parseOrigins(value string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	// If no valid origins found, default to allow all
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func stringEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
