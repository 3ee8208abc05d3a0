// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Validator checks one aspect of a loaded configuration
type Validator interface {
	Validate(cfg *Config) error
}

// BasicValidator performs basic configuration validation
type BasicValidator struct{}

// Validate performs basic validation
func (v *BasicValidator) Validate(cfg *Config) error {
	if err := validateRequiredFields(cfg); err != nil {
		return err
	}

	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api url must be an http(s) URL, got %q", ErrInvalidConfig, cfg.API.BaseURL)
	}

	if cfg.App.LogSampleRate <= 0 || cfg.App.LogSampleRate > 1 {
		return fmt.Errorf("%w: log sample rate must be in (0, 1], got %v", ErrInvalidConfig, cfg.App.LogSampleRate)
	}

	if cfg.API.PageSize < 1 {
		return fmt.Errorf("%w: page size must be positive", ErrInvalidConfig)
	}

	if cfg.API.Timeout < 0 {
		return fmt.Errorf("%w: api timeout cannot be negative", ErrInvalidConfig)
	}

	switch cfg.Session.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if cfg.Redis.PoolSize <= 0 {
			return fmt.Errorf("%w: redis pool_size must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown session backend %q", ErrInvalidConfig, cfg.Session.Backend)
	}

	if cfg.Stub.RateLimitRequests <= 0 {
		return fmt.Errorf("%w: rate_limit_requests must be positive", ErrInvalidConfig)
	}

	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	if strings.HasPrefix(cfg.API.BaseURL, "http://") {
		return fmt.Errorf("%w: api url must use https in production", ErrInvalidConfig)
	}

	if cfg.Session.Backend == BackendMemory {
		return fmt.Errorf("%w: memory session backend loses the login in production", ErrInvalidConfig)
	}

	if strings.Contains(cfg.Stub.JWTSecret, "MISSING_") {
		return fmt.Errorf("%w: stub JWT secret", ErrMissingRequiredConfig)
	}

	return nil
}

// StubSecurityValidator rejects stub API settings that are only safe on a laptop
type StubSecurityValidator struct{}

// Validate checks the JWT secret, seeded admin password and CORS origins
func (v *StubSecurityValidator) Validate(cfg *Config) error {
	switch {
	case cfg.Stub.JWTSecret == DefaultJWTSecret:
		return fmt.Errorf("%w: default stub JWT secret", ErrInvalidConfig)
	case len(cfg.Stub.JWTSecret) < 32:
		return fmt.Errorf("%w: stub JWT secret must be at least 32 characters", ErrInvalidConfig)
	case cfg.Stub.AdminPassword == defaultAdminPassword:
		return fmt.Errorf("%w: default stub admin password", ErrInvalidConfig)
	}

	for _, origin := range cfg.Stub.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("%w: wildcard origin not allowed", ErrInvalidConfig)
		}
	}
	return nil
}

// validateRequiredFields walks cfg and reports the first field tagged
// required:"true" that is still empty
func validateRequiredFields(cfg *Config) error {
	return walkRequired(reflect.ValueOf(cfg).Elem(), "")
}

func walkRequired(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field, meta := v.Field(i), t.Field(i)
		name := meta.Name
		if prefix != "" {
			name = prefix + "." + name
		}

		if field.Kind() == reflect.Struct {
			if err := walkRequired(field, name); err != nil {
				return err
			}
			continue
		}
		if meta.Tag.Get("required") == "true" && missing(field) {
			return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, name)
		}
	}
	return nil
}

func missing(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == "" || strings.HasPrefix(v.String(), "MISSING_")
	case reflect.Int, reflect.Int64:
		return v.Int() == 0
	default:
		return v.IsZero()
	}
}
