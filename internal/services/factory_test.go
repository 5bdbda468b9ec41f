package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcepay/prscore/internal/config"
)

func TestNewContributionServiceFromConfig(t *testing.T) {
	newConfig := func(t *testing.T, cacheEnabled bool) *config.Config {
		return &config.Config{
			HomeDir: t.TempDir(),
			GitHub:  config.GitHubConfig{TimeoutMs: 2000},
			Scoring: config.ScoringConfig{MaxFiles: 10},
			Cache:   config.CacheConfig{Enabled: cacheEnabled, TTL: time.Hour},
		}
	}

	t.Run("should wire cache and history", func(t *testing.T) {
		// Arrange
		cfg := newConfig(t, true)

		// Act
		svc := NewContributionServiceFromConfig(context.Background(), cfg)

		// Assert
		assert.NotNil(t, svc.fetcher)
		assert.NotNil(t, svc.cache)
		assert.NotNil(t, svc.history)
		assert.DirExists(t, cfg.CacheDir())
	})

	t.Run("should skip the cache when disabled", func(t *testing.T) {
		cfg := newConfig(t, false)

		svc := NewContributionServiceFromConfig(context.Background(), cfg)

		assert.Nil(t, svc.cache)
		assert.NotNil(t, svc.history)
	})

	t.Run("should run without cache and history when the home is unusable", func(t *testing.T) {
		cfg := newConfig(t, true)
		blocker := filepath.Join(cfg.HomeDir, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		cfg.HomeDir = blocker

		svc := NewContributionServiceFromConfig(context.Background(), cfg)

		assert.NotNil(t, svc.fetcher)
		assert.Nil(t, svc.cache)
		assert.Nil(t, svc.history)
	})
}
