package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Parser.validate(); err != nil {
		return fmt.Errorf("parser: %w", err)
	}
	return nil
}

func (l *LogConfig) validate() error {
	if !slices.Contains(logLevels, strings.ToLower(strings.TrimSpace(l.Level))) {
		return fmt.Errorf("level must be one of %v (got %q)", logLevels, l.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(strings.TrimSpace(l.Format))) {
		return fmt.Errorf("format must be one of %v (got %q)", logFormats, l.Format)
	}
	return nil
}

func (p *ParserConfig) validate() error {
	if p.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", p.Workers)
	}
	return nil
}
