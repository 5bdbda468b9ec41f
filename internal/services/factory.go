package services

import (
	"context"

	"github.com/sourcepay/prscore/internal/cache"
	"github.com/sourcepay/prscore/internal/config"
	"github.com/sourcepay/prscore/internal/history"
	"github.com/sourcepay/prscore/internal/logger"
	"github.com/sourcepay/prscore/internal/vcs/github"
)

// NewContributionServiceFromConfig wires the GitHub fetcher, the result cache
// and the history log described by cfg. Cache and history are optional: when
// they cannot be opened the service runs without them.
func NewContributionServiceFromConfig(ctx context.Context, cfg *config.Config) *ContributionService {
	opts := []ContributionOption{
		WithFetcher(github.NewGitHubClient(ctx, cfg.GitHub.Token, cfg.Timeout(), cfg.Scoring.MaxFiles)),
	}

	if cfg.Cache.Enabled {
		c, err := cache.NewCache(cfg.CacheDir(), cfg.Cache.TTL)
		if err != nil {
			logger.Warn(ctx, "result cache disabled", "dir", cfg.CacheDir(), "error", err)
		} else {
			opts = append(opts, WithResultCache(c))
		}
	}

	store, err := history.NewStore(cfg.HistoryFile())
	if err != nil {
		logger.Warn(ctx, "history disabled", "path", cfg.HistoryFile(), "error", err)
	} else {
		opts = append(opts, WithHistory(store))
	}

	return NewContributionService(opts...)
}
