package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsFloat(key string, fallback float64) float64 {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     int
	Name     string

	// Location is what the driver converts DATE and DATETIME values to and
	// from. It must match APP_TIMEZONE or call dates shift by a day.
	Location *time.Location
}

// DSN format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Asia%2FJakarta
func (d DatabaseConfig) DSN() string {
	loc := "Local"
	if d.Location != nil {
		loc = d.Location.String()
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, url.QueryEscape(loc))
}

type Config struct {
	Port      string
	JWTSecret string
	LogLevel  string
	Location  *time.Location

	Database DatabaseConfig

	// Optional. Empty disables the subordinate cache and transition locks.
	RedisAddress       string
	SubordinateTTL     time.Duration
	TransitionLockTTL  time.Duration
	MaxCheckInRadius   float64
	SubmissionDeadline int
}

func Load() (*Config, error) {
	loc, err := time.LoadLocation(GetEnv("APP_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	cfg := &Config{
		Port:      GetEnv("APP_PORT", "3000"),
		JWTSecret: GetEnv("JWT_SECRET", "rahasia_negara"),
		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		Location:  loc,
		Database: DatabaseConfig{
			User:     GetEnv("DB_USER", "root"),
			Password: GetEnv("DB_PASSWORD", ""),
			Host:     GetEnv("DB_HOST", "127.0.0.1"),
			Port:     GetEnvAsInt("DB_PORT", 3306),
			Name:     GetEnv("DB_NAME", "sales_activity_db"),
			Location: loc,
		},
		RedisAddress:       GetEnv("REDIS_ADDRESS", ""),
		SubordinateTTL:     time.Duration(GetEnvAsInt("SUBORDINATE_CACHE_TTL_SECONDS", 60)) * time.Second,
		TransitionLockTTL:  time.Duration(GetEnvAsInt("TRANSITION_LOCK_TTL_SECONDS", 10)) * time.Second,
		MaxCheckInRadius:   GetEnvAsFloat("GPS_MAX_RADIUS_METERS", 10),
		SubmissionDeadline: GetEnvAsInt("SUBMISSION_DEADLINE_DAYS", 2),
	}

	if cfg.MaxCheckInRadius <= 0 {
		return nil, fmt.Errorf("GPS_MAX_RADIUS_METERS must be positive, got %v", cfg.MaxCheckInRadius)
	}
	if cfg.SubmissionDeadline < 0 {
		return nil, fmt.Errorf("SUBMISSION_DEADLINE_DAYS must not be negative, got %d", cfg.SubmissionDeadline)
	}
	return cfg, nil
}
