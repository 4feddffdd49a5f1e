// Package config defines the application configuration and its loading.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Review   ReviewConfig   `mapstructure:"review" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// ReviewConfig contains the tunables of the review flow: per-status batch
// limits, the scheduling engine's ease floor, and how long an idle session
// is kept alive in the registry.
type ReviewConfig struct {
	DueLimit          int     `mapstructure:"due_limit"           validate:"required,gt=0"`
	NewLimit          int     `mapstructure:"new_limit"           validate:"required,gt=0"`
	MinEaseFactor     float64 `mapstructure:"min_ease_factor"     validate:"required,gt=1"`
	SessionTTLMinutes int     `mapstructure:"session_ttl_minutes" validate:"required,gt=0"`
}
