package score

import (
	"context"
	"fmt"
	"io"

	"github.com/sourcepay/prscore/internal/config"
	domainErrors "github.com/sourcepay/prscore/internal/errors"
	"github.com/sourcepay/prscore/internal/i18n"
	"github.com/sourcepay/prscore/internal/logger"
	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/payout"
	"github.com/sourcepay/prscore/internal/services"
	"github.com/sourcepay/prscore/internal/ui"
	"github.com/urfave/cli/v3"
)

// Scorer is the part of the contribution service this command needs.
type Scorer interface {
	ScorePullRequest(ctx context.Context, rawURL string, opts services.ScoreOptions) (*services.ScoreOutcome, error)
}

// ScorerProvider returns a Scorer on demand.
type ScorerProvider func(ctx context.Context) (Scorer, error)

type ScoreCommand struct {
	provider ScorerProvider
}

func NewScoreCommand(provider ScorerProvider) *ScoreCommand {
	return &ScoreCommand{provider: provider}
}

// Output is the structured form of a score run.
type Output struct {
	RunID      string             `json:"runId" yaml:"run_id"`
	PR         string             `json:"pr" yaml:"pr"`
	Result     models.ScoreResult `json:"result" yaml:"result"`
	CacheHit   bool               `json:"cacheHit" yaml:"cache_hit"`
	DurationMs int64              `json:"durationMs" yaml:"duration_ms"`
	Decision   *payout.Decision   `json:"decision,omitempty" yaml:"decision,omitempty"`
}

func (c *ScoreCommand) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "score",
		Aliases:   []string{"s"},
		Usage:     t.GetMessage("score.usage", 0, nil),
		ArgsUsage: t.GetMessage("score.args_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:    "bounty",
				Aliases: []string{"b"},
				Usage:   t.GetMessage("score.bounty_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   t.GetMessage("score.output_flag", 0, nil),
				Value:   string(ui.FormatText),
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: t.GetMessage("score.no_cache_flag", 0, nil),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			w := cmd.Root().Writer

			rawURL := cmd.Args().First()
			if rawURL == "" {
				return domainErrors.ErrInvalidReference.
					WithContext("detail", t.GetMessage("score.missing_url", 0, nil))
			}

			format, ok := ui.ParseFormat(cmd.String("output"))
			if !ok {
				return fmt.Errorf("%s", t.GetMessage("score.invalid_output", 0, struct{ Format string }{cmd.String("output")}))
			}

			var decision *payout.Decision
			bounty := cmd.Float("bounty")
			if cmd.IsSet("bounty") {
				// The bounty is checked before any API call.
				if _, err := payout.Evaluate(bounty, 0); err != nil {
					return err
				}
			}

			log.Info("executing score command",
				"url", rawURL,
				"output", string(format),
				"no_cache", cmd.Bool("no-cache"))

			scorer, err := c.provider(ctx)
			if err != nil {
				return err
			}

			var outcome *services.ScoreOutcome
			err = ui.WithSpinner(t.GetMessage("score.fetching", 0, struct{ PR string }{rawURL}), format != ui.FormatText, func() error {
				var scoreErr error
				outcome, scoreErr = scorer.ScorePullRequest(ctx, rawURL, services.ScoreOptions{SkipCache: cmd.Bool("no-cache")})
				return scoreErr
			})
			if err != nil {
				return err
			}

			if cmd.IsSet("bounty") {
				d, err := payout.Evaluate(bounty, outcome.Result.Score)
				if err != nil {
					return err
				}
				decision = &d
			}

			if format != ui.FormatText {
				return ui.WriteStructured(w, format, Output{
					RunID:      outcome.RunID,
					PR:         outcome.Ref.String(),
					Result:     outcome.Result,
					CacheHit:   outcome.CacheHit,
					DurationMs: outcome.Duration.Milliseconds(),
					Decision:   decision,
				})
			}

			return printText(w, outcome, decision, t)
		},
	}
}

func printText(w io.Writer, outcome *services.ScoreOutcome, decision *payout.Decision, t *i18n.Translations) error {
	ui.PrintSectionBanner(w, t.GetMessage("score.title", 0, struct {
		PR    string
		Score int
	}{outcome.Ref.String(), outcome.Result.Score}))

	if err := ui.PrintBreakdownTable(w, outcome.Result.Breakdown, t); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "\n%s\n\n", outcome.Result.Feedback)
	ui.PrintRunStats(w, outcome.RunID, outcome.CacheHit, outcome.Result.Fallback, outcome.Duration, t)

	if decision != nil {
		ui.PrintSectionBanner(w, t.GetMessage("score.payout_title", 0, nil))
		ui.PrintDecision(w, *decision, t)
	}
	return nil
}
