package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "anthropic", cfg.Provider.Default)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Provider.Model)
	assert.Equal(t, "doxai", cfg.Docs.Command)
	assert.Equal(t, "docs", cfg.Docs.Root)
	assert.Equal(t, ".adoc", cfg.Docs.Extension)
	assert.Equal(t, "ko", cfg.Docs.Language)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	tomlContent := `
[provider]
default = "openai"
model = "gpt-4o"
max_tokens = 2048
requests_per_minute = 5

[github]
requests_per_second = 2.5

[docs]
command = "docbot"
language = "en"

[ledger]
path = "/tmp/doxai.db"
`
	tmpFile := filepath.Join(t.TempDir(), "doxai.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider.Default)
	assert.Equal(t, "gpt-4o", cfg.Provider.Model)
	assert.Equal(t, 2048, cfg.Provider.MaxTokens)
	assert.Equal(t, 5, cfg.Provider.RequestsPerMinute)
	assert.InDelta(t, 2.5, cfg.GitHub.RequestsPerSecond, 0.001)
	assert.Equal(t, "docbot", cfg.Docs.Command)
	assert.Equal(t, "en", cfg.Docs.Language)
	assert.Equal(t, ".adoc", cfg.Docs.Extension, "unset keys keep defaults")
	assert.Equal(t, "/tmp/doxai.db", cfg.Ledger.Path)
}

func TestLoadOpenAICompatibleProviders(t *testing.T) {
	tomlContent := `
[provider]
default = "openrouter"
model = "anthropic/claude-sonnet-4-5"

[[provider.openai_compatible]]
name = "openrouter"
base_url = "https://openrouter.ai/api/v1"
api_key_source = "env"
extra_headers = { HTTP-Referer = "https://github.com/doxai/doxai" }
`
	tmpFile := filepath.Join(t.TempDir(), "doxai.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	require.Len(t, cfg.Provider.OpenAI, 1)
	assert.Equal(t, "openrouter", cfg.Provider.OpenAI[0].Name)
	assert.Equal(t, "https://github.com/doxai/doxai", cfg.Provider.OpenAI[0].ExtraHeaders["HTTP-Referer"])
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/doxai.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "doxai", cfg.Docs.Command)
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "doxai.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[provider\nbroken"), 0644))

	_, err := Load(tmpFile)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad extension", "[docs]\nextension = \"adoc\"\n"},
		{"bad language", "[docs]\nlanguage = \"fr\"\n"},
		{"empty command", "[docs]\ncommand = \"\"\n"},
		{"zero tokens", "[provider]\nmax_tokens = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := filepath.Join(t.TempDir(), "doxai.toml")
			require.NoError(t, os.WriteFile(tmpFile, []byte(tt.content), 0644))
			_, err := Load(tmpFile)
			assert.Error(t, err)
		})
	}
}
