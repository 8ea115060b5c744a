// Package app holds the start-up steps shared by the command line tools.
package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/config"
	"github.com/yourusername/champ-predictor/internal/database"
	"github.com/yourusername/champ-predictor/internal/logger"
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/prediction"
	"github.com/yourusername/champ-predictor/internal/repository"
	"github.com/yourusername/champ-predictor/internal/riot"
	"github.com/yourusername/champ-predictor/internal/winrate"
)

// LoadConfig loads the configuration, overlays AWS secrets when
// AWS_SECRETS_ENABLED is set, and validates the result
func LoadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// NewLogger creates the application logger from configuration
func NewLogger(cfg *config.Config) *logrus.Logger {
	return logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
}

// Connect opens the database and builds the repositories
func Connect(ctx context.Context, cfg *config.Config) (*database.DB, *repository.Repositories, error) {
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, repos, nil
}

// NewAggregator builds the aggregator with the configured smoothing prior
func NewAggregator(cfg *config.Config) (*prediction.Aggregator, error) {
	policy, err := winrate.ParsePolicy(cfg.Prediction.ZeroGamesPolicy)
	if err != nil {
		return nil, err
	}

	estimator, err := winrate.NewEstimator(cfg.Prediction.PriorWins, cfg.Prediction.PriorGames, policy)
	if err != nil {
		return nil, err
	}

	return prediction.NewAggregator(estimator), nil
}

// Rules parses the configured rule names
func Rules(names []string) ([]prediction.Rule, error) {
	rules := make([]prediction.Rule, 0, len(names))
	for _, name := range names {
		rule, err := prediction.ParseRule(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// NewRiotClient builds the Riot client from configuration
func NewRiotClient(cfg *config.Config, log *logrus.Logger) (*riot.Client, error) {
	riotCfg := riot.DefaultConfig(cfg.Riot.APIKey, cfg.Riot.Region)
	if cfg.Riot.TimeoutSeconds > 0 {
		riotCfg.Timeout = cfg.RiotTimeout()
	}
	if cfg.Riot.MaxRetries > 0 {
		riotCfg.MaxRetries = cfg.Riot.MaxRetries
	}
	if cfg.Riot.RateLimit > 0 {
		riotCfg.RateLimit = cfg.Riot.RateLimit
	}
	return riot.NewClient(riotCfg, log)
}

// ParseRoster parses a comma separated list of champion IDs
func ParseRoster(s string) (models.Roster, error) {
	var roster models.Roster
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid champion id %q: %w", part, err)
		}
		roster = append(roster, models.ChampionID(id))
	}
	return roster, nil
}
