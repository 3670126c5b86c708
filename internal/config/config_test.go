package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PORT", "")

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8000", c.Port)
	require.Equal(t, 6, c.LargeGroupThreshold)
	require.Equal(t, "1/2/2006 15:04", c.TimestampLayout)
	require.Equal(t, "openai", c.LLMProvider)
	require.Equal(t, 30*time.Second, c.LLMTimeout)
	require.Equal(t, []string{"http://localhost:3000", "https://rideshareai.vercel.app"}, c.AllowedOrigins)
	require.NoError(t, c.Validate())
}

func TestLoad_EnvAndFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfgFile := filepath.Join(dir, "rideshare.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("data_path: trips.csv\nlarge_group_threshold: 10\nllm_provider: anthropic\n"), 0o644))

	t.Setenv("RIDESHARE_LARGE_GROUP_THRESHOLD", "8")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("PORT", "9090")
	t.Setenv("RIDESHARE_LLM_TIMEOUT", "5s")

	c, err := Load(cfgFile)
	require.NoError(t, err)
	require.Equal(t, "trips.csv", c.DataPath)
	require.Equal(t, 8, c.LargeGroupThreshold)
	require.Equal(t, "anthropic", c.LLMProvider)
	require.Equal(t, "sk-test", c.APIKey())
	require.Equal(t, ":9090", c.Port)
	require.Equal(t, 5*time.Second, c.LLMTimeout)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		DataPath:            "trips.csv",
		LargeGroupThreshold: 6,
		LLMProvider:         "none",
		LLMTimeout:          time.Second,
		RateLimit:           1,
		RateWindow:          time.Minute,
	}
	require.NoError(t, valid.Validate())

	c := valid
	c.LLMProvider = "cohere"
	require.ErrorContains(t, c.Validate(), "unknown llm_provider")

	c = valid
	c.DataPath = ""
	require.ErrorContains(t, c.Validate(), "data_path")
	c.PreferCache, c.CachePath = true, "cache.db"
	require.NoError(t, c.Validate())

	c = valid
	c.LargeGroupThreshold = 0
	c.LLMTimeout = 0
	err := c.Validate()
	require.ErrorContains(t, err, "large_group_threshold")
	require.ErrorContains(t, err, "llm_timeout")
}

func TestValidate_AllowedOrigins(t *testing.T) {
	c := Config{
		DataPath:            "trips.csv",
		LargeGroupThreshold: 6,
		LLMProvider:         "none",
		LLMTimeout:          time.Second,
		RateLimit:           1,
		RateWindow:          time.Minute,
		AllowedOrigins:      []string{"*", "http://localhost:3000", "https://rideshareai.vercel.app"},
	}
	require.NoError(t, c.Validate())

	for _, origin := range []string{
		"localhost:3000",
		"rideshareai.vercel.app",
		"ftp://example.com",
		"https://*.vercel.app",
		"https://example.com/app",
		"http://",
	} {
		c.AllowedOrigins = []string{"http://localhost:3000", origin}
		require.ErrorContains(t, c.Validate(), "allowed_origins", origin)
	}

	c.AllowedOrigins = []string{"localhost:3000"}
	c.LLMProvider = "cohere"
	err := c.Validate()
	require.ErrorContains(t, err, "allowed_origins")
	require.ErrorContains(t, err, "unknown llm_provider")
}
