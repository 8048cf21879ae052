package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/config"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, int64(20), cfg.Server.MaxUploadSizeMB)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 60000, cfg.Extract.MaxDocumentChars)

	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.DefaultModel)
	assert.Equal(t, 2, cfg.OpenAI.MaxRetries)
	assert.Equal(t, 60, cfg.OpenAI.TimeoutSecs)

	assert.Empty(t, cfg.Claude.APIKey)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Claude.DefaultModel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VOUCHER_SERVER_PORT", ":9090")
	t.Setenv("VOUCHER_SERVER_ENVIRONMENT", "production")
	t.Setenv("VOUCHER_PROVIDER_OPENAI_API_KEY", "sk-test")
	t.Setenv("VOUCHER_PROVIDER_CLAUDE_MAX_RETRIES", "5")
	t.Setenv("VOUCHER_EXTRACT_MAX_DOCUMENT_CHARS", "1000")
	t.Setenv("VOUCHER_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, 5, cfg.Claude.MaxRetries)
	assert.Equal(t, 1000, cfg.Extract.MaxDocumentChars)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestConfig_ProviderLookup(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Provider(domain.ProviderOpenAI))
	assert.Equal(t, "gpt-4o", cfg.Provider(domain.ProviderOpenAI).DefaultModel)
	require.NotNil(t, cfg.Provider(domain.ProviderClaude))
	assert.Nil(t, cfg.Provider(domain.ProviderType("gemini")))
}
