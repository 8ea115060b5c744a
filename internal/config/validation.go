// Package config provides configuration management for the champ predictor.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("zeropolicy", validateZeroGamesPolicy)
	_ = v.RegisterValidation("rule", validateRule)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateZeroGamesPolicy mirrors winrate.ParsePolicy without importing it
func validateZeroGamesPolicy(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "smoothed", "neutral":
		return true
	default:
		return false
	}
}

func validateRule(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "average", "weighted":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.Prediction.PriorWins > cfg.Prediction.PriorGames {
		return fmt.Errorf("prediction.prior_wins cannot exceed prediction.prior_games")
	}

	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, expr := range map[string]string{
		"ingest_cron":   cfg.Scheduler.IngestCron,
		"rebuild_cron":  cfg.Scheduler.RebuildCron,
		"evaluate_cron": cfg.Scheduler.EvaluateCron,
	} {
		if expr == "" {
			continue
		}
		if _, err := parser.Parse(expr); err != nil {
			return fmt.Errorf("scheduler.%s %q is not a valid cron expression: %w", name, expr, err)
		}
	}

	if cfg.Scheduler.IngestCron != "" && cfg.Riot.APIKey == "" {
		return fmt.Errorf("scheduler.ingest_cron requires riot.api_key")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			b.WriteString(fmt.Sprintf("- Field '%s' is required\n", field))
		case "min", "max":
			b.WriteString(fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag))
		case "gt", "gte", "lt", "lte":
			b.WriteString(fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag))
		case "environment":
			b.WriteString(fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field))
		case "loglevel":
			b.WriteString(fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field))
		case "zeropolicy":
			b.WriteString(fmt.Sprintf("- Field '%s' must be one of: smoothed, neutral\n", field))
		case "rule":
			b.WriteString(fmt.Sprintf("- Field '%s' must be one of: average, weighted, got '%v'\n", field, value))
		case "oneof":
			b.WriteString(fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value))
		default:
			b.WriteString(fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag))
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", b.String())
}
