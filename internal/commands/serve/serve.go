package serve

import (
	"context"

	"github.com/sourcepay/prscore/internal/config"
	"github.com/sourcepay/prscore/internal/i18n"
	"github.com/sourcepay/prscore/internal/logger"
	"github.com/sourcepay/prscore/internal/mcp"
	"github.com/urfave/cli/v3"
)

// ServerStarter runs the MCP server until the client goes away.
type ServerStarter func(ctx context.Context, cfg *config.Config) error

type ServeCommand struct {
	start ServerStarter
}

func NewServeCommand(start ServerStarter) *ServeCommand {
	return &ServeCommand{start: start}
}

// StdioServer builds the contribution service from cfg and serves it over stdio.
func StdioServer(svcProvider func(ctx context.Context, cfg *config.Config) mcp.ContributionScorer) ServerStarter {
	return func(ctx context.Context, cfg *config.Config) error {
		return mcp.StartMCPServer(ctx, svcProvider(ctx, cfg))
	}
}

func (c *ServeCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: t.GetMessage("mcp.usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger.Info(ctx, "starting MCP server on stdio")
			return c.start(ctx, cfg)
		},
	}
}
