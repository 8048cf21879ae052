package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	Extract ExtractConfig
	OpenAI  ProviderConfig
	Claude  ProviderConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	Environment     string        `mapstructure:"environment"`
	MaxUploadSizeMB int64         `mapstructure:"max_upload_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExtractConfig holds field-extraction settings.
type ExtractConfig struct {
	// MaxDocumentChars bounds the document excerpt embedded in the prompt.
	// Trailing whole pages beyond the budget are dropped, never partial ones.
	MaxDocumentChars int `mapstructure:"max_document_chars"`
}

// ProviderConfig holds settings for a single AI provider backend.
type ProviderConfig struct {
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// Provider returns the config for the given provider type.
func (c *Config) Provider(p domain.ProviderType) *ProviderConfig {
	switch p {
	case domain.ProviderOpenAI:
		return &c.OpenAI
	case domain.ProviderClaude:
		return &c.Claude
	}
	return nil
}

// Load reads configuration from environment variables with the VOUCHER_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VOUCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_size_mb", 20)

	// Log defaults
	v.SetDefault("log.level", "info")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Extraction defaults
	v.SetDefault("extract.max_document_chars", 60000)

	// Provider defaults. API keys have no default: an empty key means the
	// provider is not configured and selecting it fails with an auth error.
	v.SetDefault("provider.openai.api_key", "")
	v.SetDefault("provider.openai.default_model", "gpt-4o")
	v.SetDefault("provider.openai.max_retries", 2)
	v.SetDefault("provider.openai.timeout_secs", 60)
	v.SetDefault("provider.claude.api_key", "")
	v.SetDefault("provider.claude.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("provider.claude.max_retries", 2)
	v.SetDefault("provider.claude.timeout_secs", 60)

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:            v.GetString("server.port"),
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		Environment:     v.GetString("server.environment"),
		MaxUploadSizeMB: v.GetInt64("server.max_upload_size_mb"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}
	cfg.Extract = ExtractConfig{
		MaxDocumentChars: v.GetInt("extract.max_document_chars"),
	}
	cfg.OpenAI = ProviderConfig{
		APIKey:       v.GetString("provider.openai.api_key"),
		DefaultModel: v.GetString("provider.openai.default_model"),
		MaxRetries:   v.GetInt("provider.openai.max_retries"),
		TimeoutSecs:  v.GetInt("provider.openai.timeout_secs"),
	}
	cfg.Claude = ProviderConfig{
		APIKey:       v.GetString("provider.claude.api_key"),
		DefaultModel: v.GetString("provider.claude.default_model"),
		MaxRetries:   v.GetInt("provider.claude.max_retries"),
		TimeoutSecs:  v.GetInt("provider.claude.timeout_secs"),
	}
	return cfg, nil
}
