package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if err := c.validateScan(); err != nil {
		errors = append(errors, err...)
	}

	if err := c.validateDetectors(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}

func (c *Config) validateScan() ValidationErrors {
	var errors ValidationErrors

	if c.Scan.ResolveCacheSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.resolve_cache_size",
			Message: "resolve_cache_size must be positive",
		})
	}

	for i, name := range c.Scan.IgnoreDirs {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("scan.ignore_dirs[%d]", i),
				Message: "must be a single directory name",
			})
		}
	}

	for i, pattern := range c.Scan.ExcludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("scan.exclude_patterns[%d]", i),
				Message: fmt.Sprintf("invalid glob pattern %q", pattern),
			})
		}
	}

	return errors
}

func (c *Config) validateDetectors() ValidationErrors {
	var errors ValidationErrors
	seen := make(map[string]bool)

	for i, m := range c.Detectors.ExtraMarkers {
		prefix := fmt.Sprintf("detectors.extra_markers[%d]", i)

		if strings.TrimSpace(m.Marker) == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".marker",
				Message: "marker is required",
			})
		} else if seen[m.Marker] {
			errors = append(errors, ValidationError{
				Field:   prefix + ".marker",
				Message: fmt.Sprintf("duplicate marker %q", m.Marker),
			})
		}
		seen[m.Marker] = true

		if strings.TrimSpace(m.ProjectType) == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".project_type",
				Message: "project_type is required",
			})
		}

		if strings.TrimSpace(m.Language) == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".language",
				Message: "language is required",
			})
		}
	}

	return errors
}
