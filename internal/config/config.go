package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the top-level bot configuration.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	GitHub   GitHubConfig   `toml:"github"`
	Docs     DocsConfig     `toml:"docs"`
	Log      LogConfig      `toml:"log"`
	Ledger   LedgerConfig   `toml:"ledger"`
}

// ProviderConfig holds settings for AI provider selection and configuration.
type ProviderConfig struct {
	Default           string                   `toml:"default"`
	Model             string                   `toml:"model"`
	MaxTokens         int                      `toml:"max_tokens"`
	Temperature       float64                  `toml:"temperature"`
	RequestsPerMinute int                      `toml:"requests_per_minute"`
	Anthropic         AnthropicProviderConfig  `toml:"anthropic"`
	OpenAI            []OpenAICompatibleConfig `toml:"openai_compatible"`
	Ollama            OllamaProviderConfig     `toml:"ollama"`
}

// AnthropicProviderConfig holds Anthropic-specific provider settings.
type AnthropicProviderConfig struct {
	APIKeySource string `toml:"api_key_source"`
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
}

// OpenAICompatibleConfig holds settings for an OpenAI-compatible provider.
type OpenAICompatibleConfig struct {
	Name         string            `toml:"name"`
	BaseURL      string            `toml:"base_url"`
	APIKeySource string            `toml:"api_key_source"`
	APIKey       string            `toml:"api_key"`
	ExtraHeaders map[string]string `toml:"extra_headers"`
}

// OllamaProviderConfig holds settings for a local Ollama server.
type OllamaProviderConfig struct {
	BaseURL string `toml:"base_url"`
}

// GitHubConfig holds repository access settings.
type GitHubConfig struct {
	TokenSource       string  `toml:"token_source"`
	Token             string  `toml:"token"`
	APIURL            string  `toml:"api_url"`
	Repository        string  `toml:"repository"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// DocsConfig controls where generated documentation lands.
type DocsConfig struct {
	Command   string `toml:"command"`
	Root      string `toml:"root"`
	Extension string `toml:"extension"`
	Language  string `toml:"language"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	JSON  bool   `toml:"json"`
	Level string `toml:"level"`
}

// LedgerConfig points at the optional SQLite run history. Empty disables it.
type LedgerConfig struct {
	Path string `toml:"path"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Default:           "anthropic",
			Model:             "claude-sonnet-4-5",
			MaxTokens:         8192,
			Temperature:       0.2,
			RequestsPerMinute: 20,
			Anthropic: AnthropicProviderConfig{
				APIKeySource: "env",
				BaseURL:      "https://api.anthropic.com",
			},
			Ollama: OllamaProviderConfig{
				BaseURL: "http://localhost:11434",
			},
		},
		GitHub: GitHubConfig{
			TokenSource:       "env",
			APIURL:            "https://api.github.com/",
			RequestsPerSecond: 5,
		},
		Docs: DocsConfig{
			Command:   "doxai",
			Root:      "docs",
			Extension: ".adoc",
			Language:  "ko",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML config file on top of DefaultConfig. A missing file is
// not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks fields whose bad values would only surface deep inside a run.
func (c *Config) Validate() error {
	if c.Docs.Command == "" {
		return fmt.Errorf("docs.command must not be empty")
	}
	if c.Docs.Root == "" {
		return fmt.Errorf("docs.root must not be empty")
	}
	if c.Docs.Extension == "" || c.Docs.Extension[0] != '.' {
		return fmt.Errorf("docs.extension must start with '.', got %q", c.Docs.Extension)
	}
	switch c.Docs.Language {
	case "ko", "en":
	default:
		return fmt.Errorf("docs.language must be ko or en, got %q", c.Docs.Language)
	}
	if c.Provider.MaxTokens <= 0 {
		return fmt.Errorf("provider.max_tokens must be positive")
	}
	if c.GitHub.RequestsPerSecond < 0 || c.Provider.RequestsPerMinute < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}
	return nil
}
