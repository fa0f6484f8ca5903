package config

import (
	"fmt"
	"os"
)

// ResolveToken returns the credential sent with remote registry requests.
// Supported sources: "" (no token), "env" (read envVar), and "config"
// (use configValue as is).
func ResolveToken(source, configValue, envVar string) (string, error) {
	switch source {
	case "":
		return "", nil
	case "env":
		return resolveFromEnv(envVar)
	case "config":
		if configValue == "" {
			return "", fmt.Errorf("token_source is 'config' but no token value provided")
		}
		return configValue, nil
	default:
		return "", fmt.Errorf("unknown token_source: %q", source)
	}
}

// ResolvedToken resolves the registry token described by c.
func (c RegistryConfig) ResolvedToken() (string, error) {
	return ResolveToken(c.TokenSource, c.Token, c.TokenEnv)
}

func resolveFromEnv(envVar string) (string, error) {
	if envVar == "" {
		return "", fmt.Errorf("no environment variable name specified")
	}
	val := os.Getenv(envVar)
	if val == "" {
		return "", fmt.Errorf("environment variable %s is not set", envVar)
	}
	return val, nil
}
