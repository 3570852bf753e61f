package vars

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing api key is fatal", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "")

		cfg, err := Load()

		assert.Nil(t, cfg)
		assert.True(t, errors.Is(err, ErrMissingCredential))
	})

	t.Run("blank api key counts as missing", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "   ")

		_, err := Load()

		assert.ErrorIs(t, err, ErrMissingCredential)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "gsk_test")
		t.Setenv("GROQ_BASE_URL", "")
		t.Setenv("SERVER_ADDR", "")
		t.Setenv("MAX_CONCURRENT_ANALYSES", "")
		t.Setenv("LLM_TIMEOUT", "")
		t.Setenv("ALLOWED_ORIGINS", "")
		t.Setenv("EXTRACT_TIMEOUT", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "gsk_test", cfg.LLM.APIKey)
		assert.Equal(t, GroqBaseURL, cfg.LLM.BaseURL)
		assert.Equal(t, MIXTRAL, cfg.LLM.Model)
		assert.Equal(t, time.Duration(0), cfg.LLM.Timeout)
		assert.Equal(t, ":8081", cfg.Server.Addr)
		assert.Equal(t, 1, cfg.MaxConcurrentAnalyses)
		assert.Empty(t, cfg.Server.AllowedOrigins)
		assert.Equal(t, 30*time.Second, cfg.ExtractTimeout)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "gsk_test")
		t.Setenv("GROQ_BASE_URL", "http://localhost:9999/v1")
		t.Setenv("LLM_TIMEOUT", "45s")
		t.Setenv("MAX_CONCURRENT_ANALYSES", "0")
		t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
		t.Setenv("EXTRACT_TIMEOUT", "5s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:9999/v1", cfg.LLM.BaseURL)
		assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
		assert.Equal(t, 1, cfg.MaxConcurrentAnalyses)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, 5*time.Second, cfg.ExtractTimeout)
	})
}
