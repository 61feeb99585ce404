package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("環境変数から読み込む", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
		t.Setenv("SUPABASE_ANON_KEY", "anon")
		t.Setenv("GEMINI_API_KEY", "key")
		t.Setenv("PORT", "9000")
		t.Setenv("RATE_LIMIT_SEARCH", "10/min")
		t.Setenv("BATCH_TTL_HOURS", "2")
		t.Setenv("SUMMARY_WORKERS", "8")
		t.Setenv("REDIS_HOST", "localhost")
		t.Setenv("SUGGESTION_CACHE_TTL", "15m")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, "https://abc.supabase.co", cfg.Supabase.URL)
		assert.Equal(t, RateLimitConfig{Requests: 10, Interval: time.Minute}, cfg.RateLimitSearch)
		assert.Equal(t, 2*time.Hour, cfg.BatchTTL)
		assert.Equal(t, 8, cfg.SummaryWorkers)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.Equal(t, 15*time.Minute, cfg.SuggestionCacheTTL)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("既定値", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("RATE_LIMIT_SEARCH", "")
		t.Setenv("GEMINI_MODEL", "")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "gemini-3-flash-preview", cfg.GeminiModel)
		assert.Equal(t, 30, cfg.RateLimitSearch.Requests)
		assert.Equal(t, 4, cfg.SummaryWorkers)
		assert.Equal(t, 24*time.Hour, cfg.BatchTTL)
	})

	t.Run("不正なレート制限はエラー", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_SEARCH", "xyz")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("不正な整数はエラー", func(t *testing.T) {
		t.Setenv("SUMMARY_WORKERS", "many")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	cfg = &Config{DatabaseURL: "postgres://x", GeminiAPIKey: "k"}
	assert.NoError(t, cfg.Validate())
}

func TestParseRateLimit(t *testing.T) {
	cfg, err := parseRateLimit("5/sec")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Requests)
	assert.Equal(t, time.Second, cfg.Interval)

	_, err = parseRateLimit("0/min")
	assert.Error(t, err)
	_, err = parseRateLimit("5/day")
	assert.Error(t, err)
}
