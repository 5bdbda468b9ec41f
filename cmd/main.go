package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sourcepay/prscore/internal/commands/cache"
	configcmd "github.com/sourcepay/prscore/internal/commands/config"
	"github.com/sourcepay/prscore/internal/commands/payout"
	"github.com/sourcepay/prscore/internal/commands/ratelimit"
	"github.com/sourcepay/prscore/internal/commands/registry"
	"github.com/sourcepay/prscore/internal/commands/score"
	"github.com/sourcepay/prscore/internal/commands/serve"
	"github.com/sourcepay/prscore/internal/commands/stats"
	"github.com/sourcepay/prscore/internal/commands/validate"
	cfg "github.com/sourcepay/prscore/internal/config"
	"github.com/sourcepay/prscore/internal/i18n"
	"github.com/sourcepay/prscore/internal/logger"
	"github.com/sourcepay/prscore/internal/mcp"
	"github.com/sourcepay/prscore/internal/services"
	"github.com/sourcepay/prscore/internal/ui"
	"github.com/sourcepay/prscore/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to start prscore: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	cfgApp, err := cfg.Load(os.Getenv("PRSCORE_CONFIG"))
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load translations: %w", err)
	}

	newService := func(ctx context.Context) *services.ContributionService {
		return services.NewContributionServiceFromConfig(ctx, cfgApp)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	factories := []struct {
		name    string
		factory registry.CommandFactory
	}{
		{"score", score.NewScoreCommand(func(ctx context.Context) (score.Scorer, error) {
			return newService(ctx), nil
		})},
		{"validate", validate.NewValidateCommand(func(ctx context.Context) (validate.Validator, error) {
			return newService(ctx), nil
		})},
		{"payout", payout.NewPayoutCommand()},
		{"rate-limit", ratelimit.NewRateLimitCommand(func(ctx context.Context) (ratelimit.QuotaReader, error) {
			return newService(ctx), nil
		})},
		{"history", stats.NewStatsCommand(stats.DefaultHistoryReader)},
		{"cache", cache.NewCacheCommand()},
		{"config", configcmd.NewConfigCommandFactory()},
		{"mcp", serve.NewServeCommand(serve.StdioServer(func(ctx context.Context, c *cfg.Config) mcp.ContributionScorer {
			return services.NewContributionServiceFromConfig(ctx, c)
		}))},
	}

	for _, f := range factories {
		if err := registerCommand.Register(f.name, f.factory); err != nil {
			return nil, nil, fmt.Errorf("failed to register command '%s': %w", f.name, err)
		}
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:        "prscore",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Commands:    commands,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag.debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("flag.verbose", 0, nil),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   translations.GetMessage("flag.config", 0, nil),
				Sources: cli.EnvVars("PRSCORE_CONFIG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))

			// Commands hold cfgApp, so a --config file is loaded in place.
			if path := cmd.String("config"); path != "" && path != cfgApp.PathFile {
				loaded, err := cfg.Load(path)
				if err != nil {
					return ctx, err
				}
				*cfgApp = *loaded
				if err := translations.SetLanguage(cfgApp.Language); err != nil {
					logger.Warn(ctx, "could not switch language", "language", cfgApp.Language, "error", err)
				}
			}

			return ctx, nil
		},
		EnableShellCompletion: true,
	}, translations, nil
}
