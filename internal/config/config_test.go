package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvGeminiKey, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Chat.Provider)
	assert.Equal(t, DefaultModel["gemini"], cfg.Chat.Model)
	assert.Equal(t, DefaultDBPath(), cfg.Data.DBPath)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadParsesAndExpands(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv("TEST_CLAUDE_KEY", "sk-ant-123")

	path := writeConfig(t, `
[data]
db_path = "/tmp/companion-test.db"

[chat]
provider = "claude"
api_key = "${TEST_CLAUDE_KEY}"

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/companion-test.db", cfg.Data.DBPath)
	assert.Equal(t, "claude", cfg.Chat.Provider)
	assert.Equal(t, "sk-ant-123", cfg.Chat.APIKey)
	assert.Equal(t, DefaultModel["claude"], cfg.Chat.Model, "model defaults per provider")
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvDB, "/tmp/from-env.db")
	t.Setenv(EnvGeminiKey, "AIza-test-key")

	path := writeConfig(t, "[data]\ndb_path = \"/tmp/from-file.db\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.Data.DBPath)
	assert.Equal(t, "AIza-test-key", cfg.Chat.APIKey)
}

func TestGeminiKeyOnlyFillsGemini(t *testing.T) {
	t.Setenv(EnvGeminiKey, "AIza-test-key")

	path := writeConfig(t, "[chat]\nprovider = \"openai\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Chat.APIKey)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"provider", "[chat]\nprovider = \"palm\"\n"},
		{"level", "[logging]\nlevel = \"loud\"\n"},
		{"format", "[logging]\nformat = \"xml\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadBadTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[chat\nprovider="))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestExpandEnvVarsUnset(t *testing.T) {
	t.Setenv("SET_VAR", "x")
	assert.Equal(t, "x-", expandEnvVars("${SET_VAR}-${COMPANION_SURELY_UNSET}"))
}
