// Package config loads the user configuration for profiles.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/jacksmith/profiles/internal/logging"
	"github.com/jacksmith/profiles/internal/model"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the name of the user configuration file looked up in the
	// working directory.
	FileName = ".profilesconfig.yaml"

	// PathEnv names the environment variable that points at a config file.
	PathEnv = "PROFILES_CONFIG"

	// envPrefix is prepended to every env override (e.g. PROFILES_COLOR).
	envPrefix = "PROFILES_"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default configuration values
const (
	DefaultColor         = ColorAuto
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = logging.FormatText
	DefaultConfirmDelete = true
	DefaultGender        = string(model.GenderOther)
	DefaultPrompt        = "profiles> "
)

// Config represents user configuration from .profilesconfig.yaml, with
// PROFILES_* environment variables taking precedence.
// The file is user-managed and never written by profiles.
type Config struct {
	// Color controls ANSI colors: auto (only on a terminal), always or never.
	Color string `yaml:"color" env:"COLOR"`

	// LogLevel is the minimum level logged to stderr (debug, info, warn, error).
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	// ConfirmDelete asks before deleting a profile unless --yes is given.
	ConfirmDelete bool `yaml:"confirm_delete" env:"CONFIRM_DELETE"`

	// DefaultGender is preselected for new profiles.
	DefaultGender string `yaml:"default_gender" env:"DEFAULT_GENDER"`

	// Prompt is shown before each command on a terminal.
	Prompt string `yaml:"prompt" env:"PROMPT"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Color:         DefaultColor,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		ConfirmDelete: DefaultConfirmDelete,
		DefaultGender: DefaultGender,
		Prompt:        DefaultPrompt,
	}
}

// Locate returns the config file to load.
// Priority: flag > PROFILES_CONFIG > ./.profilesconfig.yaml.
func Locate(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return FileName
}

// Load reads the config file at path if it exists, otherwise starts from
// defaults. Partial config files are merged with defaults. Environment
// overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file - keep defaults
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every enumerated setting has a known value.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Color) {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q: must be auto, always or never", c.Color)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}

	if _, err := model.ParseGender(c.DefaultGender); err != nil {
		return fmt.Errorf("invalid default_gender: %w", err)
	}

	return nil
}

// SlogLevel converts LogLevel to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	return level, nil
}

// Gender returns DefaultGender parsed. Call after Validate.
func (c *Config) Gender() model.Gender {
	g, err := model.ParseGender(c.DefaultGender)
	if err != nil {
		return model.GenderOther
	}
	return g
}

// UseColor resolves the color mode given whether output is a terminal.
func (c *Config) UseColor(isTerminal bool) bool {
	switch strings.ToLower(c.Color) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}
