package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validThemes    = []string{"auto", "dark", "light"}
	validBackends  = []string{BackendFile, BackendMemory, BackendRedis}
)

// Validate checks the configuration for correctness and reports every
// problem found as a ValidationErrors.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateAPI(&cfg.API)...)
	errs = append(errs, validateSession(&cfg.Session)...)
	errs = append(errs, validateUI(&cfg.UI)...)
	errs = append(errs, validateLog(&cfg.Log)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateAPI(c *APIConfig) []ValidationError {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []ValidationError{{
			Field:   "api.base_url",
			Message: "must be an absolute http(s) URL",
			Value:   c.BaseURL,
			Wrapped: ErrInvalidURL,
		}}
	}
	return nil
}

func validateSession(c *SessionConfig) []ValidationError {
	var errs []ValidationError

	if !slices.Contains(validBackends, c.Backend) {
		errs = append(errs, ValidationError{
			Field:   "session.backend",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validBackends, ", ")),
			Value:   c.Backend,
			Wrapped: ErrInvalidBackend,
		})
	}

	if c.Backend == BackendRedis && c.Redis.Addr == "" {
		errs = append(errs, ValidationError{
			Field:   "session.redis.addr",
			Message: "required when session.backend is redis",
			Wrapped: ErrInvalidConfig,
		})
	}

	if c.Redis.TTL < 0 {
		errs = append(errs, ValidationError{
			Field:   "session.redis.ttl",
			Message: "must not be negative",
			Value:   c.Redis.TTL,
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

func validateUI(c *UIConfig) []ValidationError {
	var errs []ValidationError

	if !slices.Contains(validThemes, c.Theme) {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validThemes, ", ")),
			Value:   c.Theme,
			Wrapped: ErrInvalidConfig,
		})
	}
	if c.Width < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.width",
			Message: "must not be negative",
			Value:   c.Width,
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

func validateLog(c *LogConfig) []ValidationError {
	if slices.Contains(validLogLevels, c.Level) {
		return nil
	}
	return []ValidationError{{
		Field:   "log.level",
		Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
		Value:   c.Level,
		Wrapped: ErrInvalidConfig,
	}}
}
