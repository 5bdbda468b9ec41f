package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/sourcepay/prscore/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_ACCESS_TOKEN", "GITHUB_API_TIMEOUT", "MAX_FILES_TO_ANALYZE",
		"PRSCORE_CACHE_ENABLED", "PRSCORE_CACHE_TTL", "PRSCORE_LANG", "PRSCORE_HOME",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		// Arrange
		clearEnv(t)
		home := t.TempDir()
		t.Setenv("PRSCORE_HOME", home)

		// Act
		cfg, err := Load("")

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cfg.GitHub.Token)
		assert.Equal(t, 10*time.Second, cfg.Timeout())
		assert.Equal(t, 50, cfg.Scoring.MaxFiles)
		assert.True(t, cfg.Cache.Enabled)
		assert.Equal(t, time.Hour, cfg.Cache.TTL)
		assert.Equal(t, LangEN, cfg.Language)
		assert.Equal(t, home, cfg.HomeDir)
		assert.Equal(t, filepath.Join(home, "cache"), cfg.CacheDir())
		assert.Equal(t, filepath.Join(home, "history.json"), cfg.HistoryFile())
		assert.Empty(t, cfg.PathFile)
	})

	t.Run("should read environment variables", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PRSCORE_HOME", t.TempDir())
		t.Setenv("GITHUB_ACCESS_TOKEN", "ghp_test")
		t.Setenv("GITHUB_API_TIMEOUT", "2500")
		t.Setenv("MAX_FILES_TO_ANALYZE", "120")
		t.Setenv("PRSCORE_CACHE_ENABLED", "false")
		t.Setenv("PRSCORE_CACHE_TTL", "15m")
		t.Setenv("PRSCORE_LANG", "es")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "ghp_test", cfg.GitHub.Token)
		assert.Equal(t, 2500*time.Millisecond, cfg.Timeout())
		assert.Equal(t, 120, cfg.Scoring.MaxFiles)
		assert.False(t, cfg.Cache.Enabled)
		assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, LangES, cfg.Language)
	})

	t.Run("should read the default file in the home directory", func(t *testing.T) {
		clearEnv(t)
		home := t.TempDir()
		t.Setenv("PRSCORE_HOME", home)
		content := "github:\n  timeout_ms: 3000\nscoring:\n  max_files: 20\n"
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0644))

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, cfg.Timeout())
		assert.Equal(t, 20, cfg.Scoring.MaxFiles)
		assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.PathFile)
	})

	t.Run("environment should override an explicit file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		t.Setenv("PRSCORE_HOME", dir)
		t.Setenv("MAX_FILES_TO_ANALYZE", "7")
		path := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scoring:\n  max_files: 20\nlanguage: es\n"), 0644))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Scoring.MaxFiles)
		assert.Equal(t, LangES, cfg.Language)
		assert.Equal(t, path, cfg.PathFile)
	})

	t.Run("should fall back to English for unknown languages", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PRSCORE_HOME", t.TempDir())
		t.Setenv("PRSCORE_LANG", "tlh")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, LangEN, cfg.Language)
	})

	t.Run("should fail on a missing explicit file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PRSCORE_HOME", t.TempDir())

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.ErrorIs(t, err, domainErrors.ErrConfigLoad)
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"zero max files", "MAX_FILES_TO_ANALYZE", "0"},
		{"negative timeout", "GITHUB_API_TIMEOUT", "-1"},
		{"negative ttl", "PRSCORE_CACHE_TTL", "-5m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PRSCORE_HOME", t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load("")

			require.Error(t, err)
			assert.ErrorIs(t, err, domainErrors.ErrConfigInvalid)
		})
	}
}

func TestUsage(t *testing.T) {
	usage := Usage()

	assert.Contains(t, usage, "GITHUB_ACCESS_TOKEN")
	assert.Contains(t, usage, "MAX_FILES_TO_ANALYZE")
}
