package validate

import (
	"context"

	"github.com/sourcepay/prscore/internal/config"
	domainErrors "github.com/sourcepay/prscore/internal/errors"
	"github.com/sourcepay/prscore/internal/i18n"
	"github.com/sourcepay/prscore/internal/logger"
	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/ui"
	"github.com/urfave/cli/v3"
)

type Validator interface {
	ValidatePullRequest(ctx context.Context, rawURL string) (*models.PRDetails, error)
}

type ValidatorProvider func(ctx context.Context) (Validator, error)

type ValidateCommand struct {
	provider ValidatorProvider
}

func NewValidateCommand(provider ValidatorProvider) *ValidateCommand {
	return &ValidateCommand{provider: provider}
}

func (c *ValidateCommand) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     t.GetMessage("validate.usage", 0, nil),
		ArgsUsage: t.GetMessage("score.args_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			rawURL := cmd.Args().First()
			if rawURL == "" {
				return domainErrors.ErrInvalidReference.
					WithContext("detail", t.GetMessage("score.missing_url", 0, nil))
			}

			logger.Info(ctx, "executing validate command", "url", rawURL)

			validator, err := c.provider(ctx)
			if err != nil {
				return err
			}

			var details *models.PRDetails
			err = ui.WithSpinner(t.GetMessage("validate.checking", 0, struct{ PR string }{rawURL}), false, func() error {
				var validateErr error
				details, validateErr = validator.ValidatePullRequest(ctx, rawURL)
				return validateErr
			})
			if err != nil {
				return err
			}

			ui.PrintSuccess(w, t.GetMessage("validate.valid", 0, nil))
			ui.PrintPRDetails(w, *details, t)
			return nil
		},
	}
}
