package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doxai/doxai/internal/config"
	"github.com/doxai/doxai/internal/provider"

	// Import sub-packages to trigger init() registration
	_ "github.com/doxai/doxai/internal/provider/anthropic"
	_ "github.com/doxai/doxai/internal/provider/ollama"
	_ "github.com/doxai/doxai/internal/provider/openai"
)

func TestNewProviderAnthropic(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-anthropic-key")

	cfg := config.DefaultConfig()
	cfg.Provider.Default = "anthropic"

	p, err := provider.NewProvider(cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewProviderAnthropicFromActionInput(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("INPUT_ANTHROPIC_API_KEY", "from-input")

	p, err := provider.NewProvider(config.DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewProviderAnthropicMissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("INPUT_ANTHROPIC_API_KEY", "")

	cfg := config.DefaultConfig()
	cfg.Provider.Anthropic.APIKeySource = "env"

	_, err := provider.NewProvider(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestNewProviderOllamaNeedsNoKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.Default = "ollama"

	p, err := provider.NewProvider(cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewProviderOpenRouter(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-openrouter-key")

	cfg := config.DefaultConfig()
	cfg.Provider.Default = "openrouter"
	cfg.Provider.OpenAI = []config.OpenAICompatibleConfig{
		{
			Name:         "openrouter",
			BaseURL:      "https://openrouter.ai/api/v1",
			APIKeySource: "env",
			ExtraHeaders: map[string]string{
				"HTTP-Referer": "https://github.com/doxai/doxai",
			},
		},
	}

	p, err := provider.NewProvider(cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewProviderOpenAIWithConfigKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.Default = "openai"
	cfg.Provider.OpenAI = []config.OpenAICompatibleConfig{
		{
			Name:         "openai",
			BaseURL:      "https://api.openai.com/v1",
			APIKeySource: "config",
			APIKey:       "sk-from-config",
		},
	}

	p, err := provider.NewProvider(cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewProviderOpenAIMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("INPUT_OPENAI_API_KEY", "")

	cfg := config.DefaultConfig()
	cfg.Provider.Default = "openai"
	cfg.Provider.OpenAI = []config.OpenAICompatibleConfig{
		{Name: "openai", BaseURL: "https://api.openai.com/v1", APIKeySource: "env"},
	}

	_, err := provider.NewProvider(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewProviderUnknown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.Default = "unknown-provider"

	_, err := provider.NewProvider(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
