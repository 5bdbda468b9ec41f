package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/sourcepay/prscore/internal/cache"
	"github.com/sourcepay/prscore/internal/config"
	"github.com/sourcepay/prscore/internal/i18n"
	"github.com/sourcepay/prscore/internal/models"
)

func TestCacheCleanCommand(t *testing.T) {
	// Arrange
	color.NoColor = true
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	cfg := &config.Config{HomeDir: t.TempDir(), Cache: config.CacheConfig{Enabled: true, TTL: time.Hour}}

	store, err := cache.NewCache(cfg.CacheDir(), cfg.Cache.TTL)
	require.NoError(t, err)
	ref := models.PullRequestRef{Owner: "acme", Repo: "widgets", Number: 42}
	require.NoError(t, store.Set(ref, "abc123", models.ScoreResult{Score: 80}))

	var buf bytes.Buffer
	root := &cli.Command{
		Name:     "prscore",
		Writer:   &buf,
		Commands: []*cli.Command{NewCacheCommand().CreateCommand(trans, cfg)},
	}

	// Act
	err = root.Run(context.Background(), []string{"prscore", "cache", "clean"})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Cache cleaned")
	assert.NoDirExists(t, cfg.CacheDir())
}
