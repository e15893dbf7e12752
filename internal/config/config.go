// Package config provides configuration management for the research network service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/scholarnet/research-network-service/internal/analytics"
)

// Config holds all configuration for the research network service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
	// OpenAlex contains upstream catalog settings.
	OpenAlex OpenAlexConfig `mapstructure:"openalex"`
	// Store contains record snapshot settings.
	Store StoreConfig `mapstructure:"store"`
	// Analytics contains aggregation pipeline settings.
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// HTTPPort is the HTTP server port (default: 8080).
	HTTPPort int `mapstructure:"http_port"`
	// MetricsPort is the metrics server port (default: 9091).
	MetricsPort int `mapstructure:"metrics_port"`
	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// IdleTimeout is the maximum duration to keep idle connections open.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// CORSAllowedOrigins lists origins allowed by the browser frontend.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and exposure.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for the metrics endpoint.
	Path string `mapstructure:"path"`
}

// OpenAlexConfig holds upstream catalog settings.
type OpenAlexConfig struct {
	// BaseURL is the OpenAlex API base URL.
	BaseURL string `mapstructure:"base_url"`
	// Email is the contact email for polite-pool access.
	Email string `mapstructure:"email"`
	// Timeout is the timeout for API calls.
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit is the maximum requests per second.
	RateLimit float64 `mapstructure:"rate_limit"`
	// PerPage is the page size for listing requests (max 200).
	PerPage int `mapstructure:"per_page"`
	// MaxRecords caps the total works fetched per run.
	MaxRecords int `mapstructure:"max_records"`
	// InstitutionID filters works to one institution (OpenAlex id).
	InstitutionID string `mapstructure:"institution_id"`
	// ConceptID filters works to one research field (OpenAlex id).
	ConceptID string `mapstructure:"concept_id"`
	// YearFrom is the inclusive lower publication-year bound (0 = open).
	YearFrom int `mapstructure:"year_from"`
	// YearTo is the inclusive upper publication-year bound (0 = open).
	YearTo int `mapstructure:"year_to"`
}

// StoreConfig holds record snapshot settings.
type StoreConfig struct {
	// SnapshotPath is the JSON file holding the record snapshot.
	SnapshotPath string `mapstructure:"snapshot_path"`
}

// AnalyticsConfig holds aggregation pipeline settings.
type AnalyticsConfig struct {
	// CollaborationThreshold is the minimum paper count for an author to
	// appear in the collaboration graph (default: 2).
	CollaborationThreshold int `mapstructure:"collaboration_threshold"`
}

// HTTPAddress returns the HTTP server address.
func (c *ServerConfig) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// MetricsAddress returns the metrics server address.
func (c *ServerConfig) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("RESNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/research-network-service")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.metrics_port", 9091)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "2m")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// OpenAlex defaults
	v.SetDefault("openalex.base_url", "https://api.openalex.org")
	v.SetDefault("openalex.email", "")
	v.SetDefault("openalex.timeout", "30s")
	v.SetDefault("openalex.rate_limit", 10.0)
	v.SetDefault("openalex.per_page", 50)
	v.SetDefault("openalex.max_records", 200)
	// I103163165 = Florida State University, C41008148 = Computer Science
	v.SetDefault("openalex.institution_id", "I103163165")
	v.SetDefault("openalex.concept_id", "C41008148")
	v.SetDefault("openalex.year_from", 2019)
	v.SetDefault("openalex.year_to", 2024)

	// Store defaults
	v.SetDefault("store.snapshot_path", "data/papers.json")

	// Analytics defaults
	v.SetDefault("analytics.collaboration_threshold", analytics.DefaultCollaborationThreshold)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort)
	}

	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.OpenAlex.BaseURL == "" {
		return fmt.Errorf("openalex base_url is required")
	}
	if c.OpenAlex.RateLimit <= 0 {
		return fmt.Errorf("openalex rate_limit must be positive")
	}
	if c.OpenAlex.PerPage < 1 || c.OpenAlex.PerPage > 200 {
		return fmt.Errorf("openalex per_page must be between 1 and 200")
	}
	if c.OpenAlex.MaxRecords <= 0 {
		return fmt.Errorf("openalex max_records must be positive")
	}
	if c.OpenAlex.YearFrom != 0 && c.OpenAlex.YearTo != 0 && c.OpenAlex.YearFrom > c.OpenAlex.YearTo {
		return fmt.Errorf("openalex year_from (%d) must not exceed year_to (%d)", c.OpenAlex.YearFrom, c.OpenAlex.YearTo)
	}

	if c.Store.SnapshotPath == "" {
		return fmt.Errorf("store snapshot_path is required")
	}

	if c.Analytics.CollaborationThreshold < 1 {
		return fmt.Errorf("analytics collaboration_threshold must be at least 1")
	}

	return nil
}
