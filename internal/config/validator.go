package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MultiValidationError represents multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("validation failed with %d errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		builder.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []ValidationError

	if err := ValidateEndpoint(c.Endpoint); err != nil {
		errs = append(errs, ValidationError{Field: "endpoint", Message: err.Error()})
	}

	if c.RequestTimeout < 0 {
		errs = append(errs, ValidationError{Field: "request_timeout", Message: "must not be negative"})
	}

	if c.AnimationInterval <= 0 {
		errs = append(errs, ValidationError{Field: "animation_interval", Message: "must be positive"})
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q (trace, debug, info, warn, error)", c.Log.Level),
		})
	}

	if c.UI.LeftPanelPercent < 10 || c.UI.LeftPanelPercent > 90 {
		errs = append(errs, ValidationError{Field: "ui.left_panel_percent", Message: "must be between 10 and 90"})
	}

	if _, _, err := net.SplitHostPort(c.Stub.Addr); err != nil {
		errs = append(errs, ValidationError{Field: "stub.addr", Message: err.Error()})
	}

	if c.Stub.Delay < 0 {
		errs = append(errs, ValidationError{Field: "stub.delay", Message: "must not be negative"})
	}

	if c.Stub.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "stub.rate_limit", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &MultiValidationError{Errors: errs}
	}
	return nil
}

// ValidateEndpoint requires an absolute http(s) URL with a host.
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", endpoint, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q (http or https)", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", endpoint)
	}

	return nil
}
