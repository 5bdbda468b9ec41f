package payout

import (
	"context"
	"fmt"

	"github.com/sourcepay/prscore/internal/config"
	"github.com/sourcepay/prscore/internal/i18n"
	policy "github.com/sourcepay/prscore/internal/payout"
	"github.com/sourcepay/prscore/internal/ui"
	"github.com/urfave/cli/v3"
)

type PayoutCommand struct{}

func NewPayoutCommand() *PayoutCommand {
	return &PayoutCommand{}
}

func (c *PayoutCommand) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "payout",
		Usage: t.GetMessage("payout.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:     "bounty",
				Aliases:  []string{"b"},
				Usage:    t.GetMessage("payout.bounty_flag", 0, nil),
				Required: true,
			},
			&cli.IntFlag{
				Name:     "score",
				Aliases:  []string{"s"},
				Usage:    t.GetMessage("payout.score_flag", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   t.GetMessage("score.output_flag", 0, nil),
				Value:   string(ui.FormatText),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer

			format, ok := ui.ParseFormat(cmd.String("output"))
			if !ok {
				return fmt.Errorf("%s", t.GetMessage("score.invalid_output", 0, struct{ Format string }{cmd.String("output")}))
			}

			decision, err := policy.Evaluate(cmd.Float("bounty"), cmd.Int("score"))
			if err != nil {
				return err
			}

			if format != ui.FormatText {
				return ui.WriteStructured(w, format, decision)
			}
			ui.PrintDecision(w, decision, t)
			return nil
		},
	}
}
