package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// Driver selects the backend; URL is a postgres connection string or a
// sqlite file path depending on the driver.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret           string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int   `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost          int    `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// SRSConfig overrides the scheduling interval table. All values are Go
// duration strings; zero values fall back to the built-in defaults.
type SRSConfig struct {
	NewInterval       time.Duration `mapstructure:"new_interval"`
	LearningInterval  time.Duration `mapstructure:"learning_interval"`
	MasteredInterval  time.Duration `mapstructure:"mastered_interval"`
	ForgotInterval    time.Duration `mapstructure:"forgot_interval"`
	FastMasteryWindow time.Duration `mapstructure:"fast_mastery_window"`
}
