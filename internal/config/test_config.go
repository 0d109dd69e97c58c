package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the attempt log configuration for integration tests
// from the .env file or TEST_DB_* environment variables.
// If the MySQL test database is not configured, a SQLite configuration at sqlitePath is returned,
// which allows tests to run without an external database.
func LoadTestConfig(sqlitePath string) (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("./../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Logging.Level = "debug"

	sqliteFallback := func() (*Config, error) {
		cfg.Database = DatabaseConfig{Driver: DriverSQLite, Path: sqlitePath}
		return cfg, nil
	}

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		return sqliteFallback()
	}

	dbPortStr := os.Getenv("TEST_DB_PORT")
	if dbPortStr == "" {
		return sqliteFallback()
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}

	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")
	if dbUser == "" || dbPassword == "" || dbName == "" {
		return sqliteFallback()
	}

	cfg.Database = DatabaseConfig{
		Driver:   DriverMySQL,
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
	}
	return cfg, nil
}
