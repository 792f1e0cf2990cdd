package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.Server.URL == "" {
		collector.add("server.url", "is required")
	} else if parsed, err := url.Parse(cfg.Server.URL); err != nil {
		collector.add("server.url", fmt.Sprintf("invalid URL: %v", err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		collector.add("server.url", fmt.Sprintf("unsupported scheme %q", parsed.Scheme))
	} else if parsed.Host == "" {
		collector.add("server.url", "missing host")
	}

	if cfg.Server.TimeoutSeconds < 0 {
		collector.add("server.timeout_seconds", "must be >= 0")
	}

	switch cfg.UI.Mode {
	case ModeAuto, ModeLive, ModePlain:
	default:
		collector.add("ui.mode", fmt.Sprintf("must be %s, %s, or %s", ModeAuto, ModeLive, ModePlain))
	}

	return collector.result()
}
