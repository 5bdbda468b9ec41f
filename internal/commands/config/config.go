package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcepay/prscore/internal/config"
	"github.com/sourcepay/prscore/internal/i18n"
	"github.com/sourcepay/prscore/internal/ui"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config.usage", 0, nil),
		Commands: []*cli.Command{
			c.newShowCommand(t, cfg),
			c.newEnvCommand(t),
		},
	}
}

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer

			source := cfg.PathFile
			if source == "" {
				source = t.GetMessage("config.no_file", 0, nil)
			}
			ui.PrintKeyValue(w, t.GetMessage("config.source", 0, nil), source)
			_, _ = fmt.Fprintln(w)

			masked := *cfg
			masked.GitHub.Token = maskToken(cfg.GitHub.Token)

			data, err := yaml.Marshal(masked)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		},
	}
}

func (c *ConfigCommandFactory) newEnvCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "env",
		Usage: t.GetMessage("config.env_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintln(cmd.Root().Writer, config.Usage())
			return err
		},
	}
}

// maskToken keeps the last four characters of long tokens.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return strings.Repeat("*", 4) + token[len(token)-4:]
}
