package config

import (
	"fmt"
	"os"
	"strings"
)

// ResolveAPIKey resolves a credential based on the given source.
// Supported sources: "env" (first non-empty of envVars), "config" (the config
// value), "keyring" (currently falls back to env).
func ResolveAPIKey(source, configValue string, envVars ...string) (string, error) {
	switch source {
	case "keyring", "env", "":
		return resolveFromEnv(envVars)
	case "config":
		if configValue == "" {
			return "", fmt.Errorf("api_key_source is 'config' but no api_key value provided")
		}
		return configValue, nil
	default:
		return "", fmt.Errorf("unknown api_key_source: %q", source)
	}
}

func resolveFromEnv(envVars []string) (string, error) {
	if len(envVars) == 0 {
		return "", fmt.Errorf("no environment variable name specified")
	}
	for _, name := range envVars {
		if val := os.Getenv(name); val != "" {
			return val, nil
		}
	}
	return "", fmt.Errorf("environment variable %s is not set", strings.Join(envVars, " or "))
}
