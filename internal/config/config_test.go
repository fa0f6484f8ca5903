package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https://raw.githubusercontent.com/julianshen/skillbox/main", cfg.Registry.BaseURL)
	assert.Equal(t, "registry.json", cfg.Registry.File)
	assert.Equal(t, 30*time.Second, cfg.Registry.Timeout.Duration)
	assert.Equal(t, filepath.Join(".claude", "skills"), cfg.Install.Destination)
	assert.Equal(t, "auto", cfg.Install.Mode)
	assert.Equal(t, 40, cfg.Validate.MinDescriptionLength)
	assert.False(t, cfg.Validate.StrictScope)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	tomlContent := `
[registry]
base_url = "https://mirror.example.com/skills"
skills_root = "/opt/skills"
timeout = "5s"

[install]
destination = ".cursor/skills"
mode = "remote"

[validate]
min_description_length = 80
strict_scope = true

[log]
level = "debug"
format = "json"
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.com/skills", cfg.Registry.BaseURL)
	assert.Equal(t, "/opt/skills", cfg.Registry.SkillsRoot)
	assert.Equal(t, "registry.json", cfg.Registry.File, "unset keys keep defaults")
	assert.Equal(t, 5*time.Second, cfg.Registry.Timeout.Duration)
	assert.Equal(t, ".cursor/skills", cfg.Install.Destination)
	assert.Equal(t, "remote", cfg.Install.Mode)
	assert.Equal(t, 80, cfg.Validate.MinDescriptionLength)
	assert.True(t, cfg.Validate.StrictScope)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Install.Mode)
	assert.Equal(t, 40, cfg.Validate.MinDescriptionLength)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[invalid toml..."), 0644))

	_, err := Load(tmpFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoadInvalidDuration(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[registry]\ntimeout = \"soon\"\n"), 0644))

	_, err := Load(tmpFile)
	assert.ErrorContains(t, err, "invalid duration")
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[install]\nmode = \"ftp\"\n"), 0644))

	_, err := Load(tmpFile)
	assert.ErrorContains(t, err, "install.mode")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ".config", "skillbox", "config.toml"), DefaultPath())
}
