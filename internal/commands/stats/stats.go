package stats

import (
	"context"
	"fmt"

	"github.com/sourcepay/prscore/internal/config"
	"github.com/sourcepay/prscore/internal/history"
	"github.com/sourcepay/prscore/internal/i18n"
	"github.com/sourcepay/prscore/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultLimit = 10

type HistoryReader interface {
	Recent(n int) ([]history.Record, error)
	Summary() (history.Summary, error)
}

type HistoryReaderProvider func(cfg *config.Config) (HistoryReader, error)

// DefaultHistoryReader opens the history file named by cfg.
func DefaultHistoryReader(cfg *config.Config) (HistoryReader, error) {
	store, err := history.NewStore(cfg.HistoryFile())
	if err != nil {
		return nil, err
	}
	return store, nil
}

type StatsCommand struct {
	provider HistoryReaderProvider
}

func NewStatsCommand(provider HistoryReaderProvider) *StatsCommand {
	return &StatsCommand{provider: provider}
}

type report struct {
	Summary history.Summary  `json:"summary" yaml:"summary"`
	Records []history.Record `json:"records" yaml:"records"`
}

func (c *StatsCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "history",
		Aliases: []string{"stats"},
		Usage:   t.GetMessage("history.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   t.GetMessage("history.limit_flag", 0, nil),
				Value:   defaultLimit,
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

			reader, err := c.provider(cfg)
			if err != nil {
				return err
			}

			records, err := reader.Recent(cmd.Int("limit"))
			if err != nil {
				return err
			}
			summary, err := reader.Summary()
			if err != nil {
				return err
			}

			if format != ui.FormatText {
				return ui.WriteStructured(w, format, report{Summary: summary, Records: records})
			}

			ui.PrintSectionBanner(w, t.GetMessage("history.title", 0, nil))
			if len(records) == 0 {
				ui.PrintInfo(w, t.GetMessage("history.empty", 0, nil))
				return nil
			}

			if err := ui.PrintHistoryTable(w, records, t); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w)
			ui.PrintHistorySummary(w, summary, t)
			return nil
		},
	}
}
