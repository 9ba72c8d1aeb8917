// Package config loads keyline settings from TOML or YAML files and
// watches them for live reload.
package config

import (
	"fmt"

	"github.com/dshills/keyline/internal/engine/history"
)

// Config holds the user-tunable settings.
type Config struct {
	// HistoryCapacity bounds how many submitted lines are retained.
	HistoryCapacity int `toml:"history_capacity" yaml:"history_capacity"`

	// NavigationWindow bounds how many entries ArrowUp can page back
	// through. Zero means the full retained history.
	NavigationWindow int `toml:"navigation_window" yaml:"navigation_window"`

	// Prompt is the literal prompt text.
	Prompt string `toml:"prompt" yaml:"prompt"`

	// HistoryFile persists history across sessions when set.
	HistoryFile string `toml:"history_file" yaml:"history_file"`

	// CompleteScript is a Lua script defining complete(line).
	CompleteScript string `toml:"complete_script" yaml:"complete_script"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		HistoryCapacity: history.DefaultCapacity,
		Prompt:          "> ",
		LogLevel:        "info",
	}
}

// Validate checks ranges and fills zero values with defaults.
func (c *Config) Validate() error {
	if c.HistoryCapacity < 0 {
		return fmt.Errorf("history_capacity must not be negative, got %d", c.HistoryCapacity)
	}
	if c.NavigationWindow < 0 {
		return fmt.Errorf("navigation_window must not be negative, got %d", c.NavigationWindow)
	}
	if c.HistoryCapacity == 0 {
		c.HistoryCapacity = history.DefaultCapacity
	}
	if c.Prompt == "" {
		c.Prompt = "> "
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// ParseError reports a configuration file that failed to parse.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
