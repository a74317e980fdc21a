package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that required values are present for the current
// environment. Development gets by on defaults plus a JWT secret; the
// production checklist is stricter.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}

	if GetEnvironment() == Production {
		if cfg.DBPassword == "" {
			errors = append(errors, "DB_PASSWORD is required in production")
		}
		if cfg.RedisPassword == "" {
			errors = append(errors, "REDIS_PASSWORD is required in production")
		}
		if cfg.AdvisorAPIKey == "" {
			errors = append(errors, "ADVISOR_API_KEY is required in production")
		}
		if cfg.DBSSLMode == "disable" {
			errors = append(errors, "DB_SSL_MODE must not be disable in production")
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("unknown LOG_LEVEL %q", cfg.LogLevel))
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		errors = append(errors, fmt.Sprintf("unknown LOG_FORMAT %q", cfg.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
