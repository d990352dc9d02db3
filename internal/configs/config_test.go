package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("LISTINGS_API_URL", "")
	t.Setenv("SEARCH_PAGE_SIZE", "30")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.ListingsAPI.URL)
	assert.Equal(t, 30, cfg.Search.PageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 60*time.Second, cfg.Search.ReferenceCacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.Search.SessionIdleTTL)
	assert.Equal(t, 200, cfg.Search.LazyLoadMarginPx)
	assert.Equal(t, 15, cfg.Maps.Zoom)
	assert.Equal(t, "400x200", cfg.Maps.ImageSize)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "LISTINGS_API_URL=http://api.local:9000/\n" +
		"SEARCH_DEBOUNCE=500ms\n" +
		"CORS_ALLOWED_ORIGINS=http://a.test, ,http://b.test\n" +
		"REDIS_DB=2\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// godotenv не перезаписывает уже заданные переменные
	for _, key := range []string{"LISTINGS_API_URL", "SEARCH_DEBOUNCE", "CORS_ALLOWED_ORIGINS", "REDIS_DB"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "http://api.local:9000", cfg.ListingsAPI.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Rest.AllowedOrigins)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("SEARCH_PAGE_SIZE", "0")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("SEARCH_PAGE_SIZE", "30")
	t.Setenv("LISTINGS_API_URL", "not a url")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestGetEnvHelpers_FallBackOnParseErrors(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_BOOL", "maybe")

	assert.Equal(t, 7, getEnvAsInt("TEST_INT", 7))
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))
	assert.True(t, getEnvAsBool("TEST_BOOL", true))
}
