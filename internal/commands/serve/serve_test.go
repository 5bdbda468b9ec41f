package serve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/sourcepay/prscore/internal/config"
	"github.com/sourcepay/prscore/internal/i18n"
)

func TestServeCommand(t *testing.T) {
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	cfg := &config.Config{Language: "en"}

	t.Run("should start the server with the shared config", func(t *testing.T) {
		// Arrange
		var got *config.Config
		start := func(_ context.Context, c *config.Config) error {
			got = c
			return nil
		}
		root := &cli.Command{
			Name:     "prscore",
			Commands: []*cli.Command{NewServeCommand(start).CreateCommand(trans, cfg)},
		}

		// Act
		err := root.Run(context.Background(), []string{"prscore", "mcp"})

		// Assert
		require.NoError(t, err)
		assert.Same(t, cfg, got)
	})

	t.Run("should return server errors", func(t *testing.T) {
		boom := errors.New("stdio closed")
		root := &cli.Command{
			Name: "prscore",
			Commands: []*cli.Command{NewServeCommand(func(context.Context, *config.Config) error {
				return boom
			}).CreateCommand(trans, cfg)},
		}

		err := root.Run(context.Background(), []string{"prscore", "mcp"})

		assert.ErrorIs(t, err, boom)
	})
}
