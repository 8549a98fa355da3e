package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectConfig(t *testing.T) {
	data := []byte(`
extensions: [".proto", "sql", " .Vue "]
exclude:
  - generated/
  - .pb.go
language: en
min_version: "1.2.0"
`)
	pc, err := ParseProjectConfig(data)
	require.NoError(t, err)
	require.NotNil(t, pc)
	assert.Equal(t, []string{".proto", ".sql", ".vue"}, pc.Extensions)
	assert.Equal(t, []string{"generated/", ".pb.go"}, pc.Exclude)
	assert.Equal(t, "en", pc.Language)
}

func TestParseProjectConfigEmpty(t *testing.T) {
	pc, err := ParseProjectConfig([]byte("  \n"))
	require.NoError(t, err)
	assert.Nil(t, pc)
}

func TestParseProjectConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"yaml":        "extensions: [",
		"language":    "language: fr",
		"extension":   "extensions: ['']",
		"min_version": "min_version: not-a-version!!",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseProjectConfig([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	pc := &ProjectConfig{MinVersion: "1.2.0"}
	assert.NoError(t, pc.CheckVersion("v1.3.0"))
	assert.NoError(t, pc.CheckVersion("1.2.0"))
	assert.Error(t, pc.CheckVersion("v1.1.9"))
	assert.NoError(t, pc.CheckVersion("dev"), "unparseable versions pass")

	ranged := &ProjectConfig{MinVersion: ">= 1.0, < 2.0"}
	assert.NoError(t, ranged.CheckVersion("1.5.0"))
	assert.Error(t, ranged.CheckVersion("2.1.0"))

	var none *ProjectConfig
	assert.NoError(t, none.CheckVersion("0.0.1"))
}
