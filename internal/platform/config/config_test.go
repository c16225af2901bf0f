package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("AI_TIMEOUT", "12s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "g-key", cfg.AI.APIKey())
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.PrimaryModel)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.FallbackModel)
	assert.Equal(t, 12*time.Second, cfg.AI.Timeout)
	assert.InDelta(t, 0.2, cfg.AI.Temperature, 1e-9)
}

func TestLoad_OpenAIProviderSwitchesDefaultModels(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "o-key", cfg.AI.APIKey())
	assert.Equal(t, "gpt-4o-mini", cfg.AI.PrimaryModel)
	assert.Equal(t, "gpt-4o", cfg.AI.FallbackModel)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  driver: sqlite
  dsn: file:diet.db
ai:
  primary_model: gemini-custom
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "file:diet.db", cfg.DB.DSN)
	assert.Equal(t, "gemini-custom", cfg.AI.PrimaryModel)
}

func TestValidate_Rejects(t *testing.T) {
	base := Config{
		Server: ServerConfig{Port: 8080},
		DB:     DBConfig{Driver: "memory"},
		AI:     AIConfig{Provider: ProviderGemini, Temperature: 0.2},
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.DB = DBConfig{Driver: "postgres"}
	assert.Error(t, bad.Validate(), "postgres without dsn")

	bad = base
	bad.AI.Provider = "llama"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Server.Port = 0
	assert.Error(t, bad.Validate())
}
