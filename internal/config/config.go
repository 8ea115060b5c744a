// Package config provides configuration management for the champ predictor.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Prediction PredictionConfig `mapstructure:"prediction" validate:"required"`
	Stats      StatsConfig      `mapstructure:"stats" validate:"required"`
	Riot       RiotConfig       `mapstructure:"riot"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// PredictionConfig holds the fixed smoothing prior and which combination rules to score
type PredictionConfig struct {
	PriorWins       float64  `mapstructure:"prior_wins" validate:"gte=0"`
	PriorGames      float64  `mapstructure:"prior_games" validate:"required,gt=0"`
	ZeroGamesPolicy string   `mapstructure:"zero_games_policy" validate:"required,zeropolicy"`
	Rules           []string `mapstructure:"rules" validate:"required,min=1,dive,rule"`
	Workers         int      `mapstructure:"workers" validate:"gte=0"`
}

// StatsConfig controls how snapshots are built and cached
type StatsConfig struct {
	TrainingPercentile      int `mapstructure:"training_percentile" validate:"required,gt=0,lte=100"`
	SnapshotCacheTTLSeconds int `mapstructure:"snapshot_cache_ttl_seconds" validate:"required,gt=0"`
}

// RiotConfig represents the Riot match API client configuration
type RiotConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	Region         string  `mapstructure:"region" validate:"omitempty,oneof=americas europe asia sea"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gte=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MatchesPerPage int     `mapstructure:"matches_per_page" validate:"gte=0,lte=100"`
	SkipQueues     []int   `mapstructure:"skip_queues"`
}

// SchedulerConfig holds cron expressions for the background jobs; empty disables a job
type SchedulerConfig struct {
	IngestCron   string   `mapstructure:"ingest_cron"`
	RebuildCron  string   `mapstructure:"rebuild_cron"`
	EvaluateCron string   `mapstructure:"evaluate_cron"`
	SeedPUUIDs   []string `mapstructure:"seed_puuids"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SnapshotCacheTTL returns the snapshot cache lifetime
func (c *Config) SnapshotCacheTTL() time.Duration {
	return time.Duration(c.Stats.SnapshotCacheTTLSeconds) * time.Second
}

// RiotTimeout returns the per-request timeout for the Riot client
func (c *Config) RiotTimeout() time.Duration {
	return time.Duration(c.Riot.TimeoutSeconds) * time.Second
}
