package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.SummaryHost)
	assert.Equal(t, "all-minilm", cfg.EmbeddingModel)
	assert.Empty(t, cfg.SummaryModel)
	assert.False(t, cfg.SummariesEnabled())
	assert.Equal(t, 500, cfg.SummaryMaxTokens)
	assert.InDelta(t, 0.3, cfg.SummaryTemperature, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.SummaryTimeout)
}

func TestNewConfig(t *testing.T) {
	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.SummaryHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithSummaryHost("https://api.openai.com/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "https://api.openai.com/v1", cfg.SummaryHost)
	})

	t.Run("with summary model enables summaries", func(t *testing.T) {
		cfg := NewConfig(
			WithSummaryModel("gpt-3.5-turbo"),
			WithToken("sk-test"),
			WithSummaryTimeout(5*time.Second),
		)

		assert.True(t, cfg.SummariesEnabled())
		assert.Equal(t, "sk-test", cfg.Token)
		assert.Equal(t, 5*time.Second, cfg.SummaryTimeout)
	})

	t.Run("with retries", func(t *testing.T) {
		cfg := NewConfig(WithRetries(5, time.Second))

		assert.Equal(t, 5, cfg.MaxRetries)
		assert.Equal(t, time.Second, cfg.RetryDelay)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"already has /v1", "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"missing /v1", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host, SummaryHost: tt.host}
			cfg.Normalize()

			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.SummaryHost)
			assert.Equal(t, "none", cfg.Token)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("normalizes before validating", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("summary settings checked only when enabled", func(t *testing.T) {
		cfg := NewConfig(WithSummaryTimeout(0))
		require.NoError(t, cfg.Validate())

		cfg = NewConfig(WithSummaryModel("gpt-3.5-turbo"), WithSummaryTimeout(0))
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero retries", func(t *testing.T) {
		cfg := NewConfig(WithRetries(0, time.Millisecond))
		assert.Error(t, cfg.Validate())
	})
}
