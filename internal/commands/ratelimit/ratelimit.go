package ratelimit

import (
	"context"

	"github.com/sourcepay/prscore/internal/config"
	"github.com/sourcepay/prscore/internal/i18n"
	"github.com/sourcepay/prscore/internal/logger"
	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/ui"
	"github.com/urfave/cli/v3"
)

type QuotaReader interface {
	RateLimit(ctx context.Context) (models.RateLimit, error)
}

type QuotaReaderProvider func(ctx context.Context) (QuotaReader, error)

type RateLimitCommand struct {
	provider QuotaReaderProvider
}

func NewRateLimitCommand(provider QuotaReaderProvider) *RateLimitCommand {
	return &RateLimitCommand{provider: provider}
}

func (c *RateLimitCommand) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "rate-limit",
		Aliases: []string{"quota"},
		Usage:   t.GetMessage("rate_limit.usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer

			reader, err := c.provider(ctx)
			if err != nil {
				return err
			}

			// A failed query still yields placeholder values, shown with a warning.
			quota, err := reader.RateLimit(ctx)
			if err != nil {
				logger.Warn(ctx, "rate limit query failed", "error", err)
				ui.PrintWarning(w, t.GetMessage("rate_limit.unavailable", 0, nil))
			}

			ui.PrintInfo(w, t.GetMessage("rate_limit.title", 0, nil))
			ui.PrintRateLimit(w, quota, t)
			return nil
		},
	}
}
