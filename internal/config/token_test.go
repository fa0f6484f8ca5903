package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTokenFromEnv(t *testing.T) {
	t.Setenv("SKILLBOX_TEST_TOKEN", "ghp_test")
	got, err := ResolveToken("env", "", "SKILLBOX_TEST_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "ghp_test", got)
}

func TestResolveTokenFromConfig(t *testing.T) {
	got, err := ResolveToken("config", "inline", "")
	require.NoError(t, err)
	assert.Equal(t, "inline", got)
}

func TestResolveTokenDisabled(t *testing.T) {
	got, err := ResolveToken("", "ignored", "IGNORED")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveTokenMissingEnvVar(t *testing.T) {
	t.Setenv("SKILLBOX_TEST_TOKEN", "")
	_, err := ResolveToken("env", "", "SKILLBOX_TEST_TOKEN")
	assert.Error(t, err)
}

func TestResolveTokenEmptyConfig(t *testing.T) {
	_, err := ResolveToken("config", "", "")
	assert.Error(t, err)
}

func TestResolveTokenUnknownSource(t *testing.T) {
	_, err := ResolveToken("keychain", "", "")
	assert.ErrorContains(t, err, "unknown token_source")
}

func TestRegistryConfigResolvedToken(t *testing.T) {
	t.Setenv("SKILLBOX_TOKEN", "from-env")
	cfg := DefaultConfig()
	cfg.Registry.TokenSource = "env"

	got, err := cfg.Registry.ResolvedToken()
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
}
