package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the top-level application configuration.
type Config struct {
	Registry RegistryConfig `toml:"registry"`
	Install  InstallConfig  `toml:"install"`
	Validate ValidateConfig `toml:"validate"`
	Log      LogConfig      `toml:"log"`
}

// RegistryConfig locates the skills tree and its published registry.
type RegistryConfig struct {
	// BaseURL is the root remote documents and registry.json are served from.
	BaseURL string `toml:"base_url"`
	// SkillsRoot is the local skills tree. Empty means "skills" next to the
	// executable.
	SkillsRoot string `toml:"skills_root"`
	// File is the published registry artifact, relative to SkillsRoot's parent
	// when not absolute.
	File string `toml:"file"`
	// Timeout bounds each remote request, e.g. "30s".
	Timeout Duration `toml:"timeout"`
	// TokenSource is "env" or "config"; empty disables authentication.
	TokenSource string `toml:"token_source"`
	Token       string `toml:"token"`
	TokenEnv    string `toml:"token_env"`
}

// InstallConfig holds defaults for the install command.
type InstallConfig struct {
	Destination string `toml:"destination"`
	// Mode is "auto", "local", or "remote".
	Mode string `toml:"mode"`
}

// ValidateConfig holds rule thresholds.
type ValidateConfig struct {
	MinDescriptionLength int  `toml:"min_description_length"`
	StrictScope          bool `toml:"strict_scope"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Duration decodes TOML strings such as "15s" into a time.Duration.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			BaseURL:  "https://raw.githubusercontent.com/julianshen/skillbox/main",
			File:     "registry.json",
			Timeout:  Duration{30 * time.Second},
			TokenEnv: "SKILLBOX_TOKEN",
		},
		Install: InstallConfig{
			Destination: filepath.Join(".claude", "skills"),
			Mode:        "auto",
		},
		Validate: ValidateConfig{
			MinDescriptionLength: 40,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultPath returns ~/.config/skillbox/config.toml, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "skillbox", "config.toml")
}

// Load reads the TOML file at path over DefaultConfig. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Install.Mode {
	case "", "auto", "local", "remote":
	default:
		return fmt.Errorf("install.mode must be auto, local, or remote, got %q", c.Install.Mode)
	}
	if c.Validate.MinDescriptionLength < 0 {
		return fmt.Errorf("validate.min_description_length must not be negative")
	}
	if c.Registry.Timeout.Duration < 0 {
		return fmt.Errorf("registry.timeout must not be negative")
	}
	return nil
}
