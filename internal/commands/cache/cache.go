package cache

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/sourcepay/prscore/internal/cache"
	"github.com/sourcepay/prscore/internal/config"
	"github.com/sourcepay/prscore/internal/i18n"
	"github.com/sourcepay/prscore/internal/logger"
	"github.com/urfave/cli/v3"
)

type CacheCommand struct{}

func NewCacheCommand() *CacheCommand {
	return &CacheCommand{}
}

func (c *CacheCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: t.GetMessage("cache.usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:  "clean",
				Usage: t.GetMessage("cache.clean_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cacheService, err := cache.NewCache(cfg.CacheDir(), cfg.Cache.TTL)
					if err != nil {
						return err
					}

					if err := cacheService.Clean(); err != nil {
						return err
					}

					logger.Info(ctx, "cache cleaned", "dir", cacheService.Dir())

					green := color.New(color.FgGreen, color.Bold)
					_, _ = fmt.Fprintln(cmd.Root().Writer, green.Sprintf("✓ %s", t.GetMessage("cache.cleaned", 0, nil)))
					return nil
				},
			},
		},
	}
}
