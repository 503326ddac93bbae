package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the web console settings
type Config struct {
	Port              string
	GinMode           string
	BackendURL        string
	ToastTTL          time.Duration
	PricePushInterval time.Duration
	LogLevel          string
	Database          DatabaseConfig
}

// DatabaseConfig locates the optional import audit database
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Enabled reports whether an audit database was configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != "" || d.Host != ""
}

// ConnString returns the lib/pq connection string
func (d DatabaseConfig) ConnString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name,
	)
}

// Load reads .env (when present) and the environment.
// A missing .env file is not an error; loaded reports whether one was found.
func Load(files ...string) (cfg Config, loaded bool, err error) {
	loaded = godotenv.Load(files...) == nil

	cfg = Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", ""),
		BackendURL: getEnv("BACKEND_URL", "http://localhost:5000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "goldtracker"),
			Password: getEnv("DB_PASSWORD", "goldtracker"),
			Name:     getEnv("DB_NAME", "goldtracker"),
		},
	}

	if cfg.ToastTTL, err = getDuration("TOAST_TTL", 3*time.Second); err != nil {
		return cfg, loaded, err
	}
	if cfg.PricePushInterval, err = getDuration("PRICE_PUSH_INTERVAL", time.Minute); err != nil {
		return cfg, loaded, err
	}
	return cfg, loaded, nil
}

// Helper function to get environment variable with default
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration accepts Go durations ("3s") or a bare number of seconds.
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}
