// Package config provides centralized configuration management for the
// pipeline. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database DatabaseConfig
	Input    InputConfig
	Sink     SinkConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `env:"DB_MIN_CONNS" default:"1"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// InputConfig holds CSV input settings.
type InputConfig struct {
	// Path is the CSV file to load. Can also be given as the first
	// command-line argument, which takes precedence.
	Path string `env:"INPUT_CSV_PATH" envAlt:"CSV_PATH"`

	// Delimiter is the field delimiter (default: comma)
	Delimiter string `env:"INPUT_DELIMITER" default:","`

	// MaxFileSize is the maximum allowed file size in bytes (default: 100MB)
	MaxFileSize int64 `env:"INPUT_MAX_FILE_SIZE" default:"104857600"`
}

// SinkConfig holds destination table settings.
type SinkConfig struct {
	// Table is the destination table name (default: walmart_sales)
	Table string `env:"SINK_TABLE" default:"walmart_sales"`

	// Timeout bounds one full pipeline run, from load through the final
	// write (default: 5m)
	Timeout time.Duration `env:"SINK_TIMEOUT" default:"5m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
