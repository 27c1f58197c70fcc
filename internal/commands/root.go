package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/phanxgames/emojiart/internal/config"
	"github.com/phanxgames/emojiart/internal/logutils"
)

// NewRootCmd builds the emojiart command tree.
func NewRootCmd(version string) *cli.Command {
	var logCloser func()
	flags := &Flags{}

	app := &cli.Command{
		Name:      "emojiart",
		Usage:     "Arrange emoji stickers on a zoomable canvas",
		UsageText: "emojiart [global options] command [command options]",
		Description: `EmojiArt edits documents made of a background image and emoji stickers.

Run 'emojiart edit doc.json' to open the editor window. Drag emoji down from
the palette strip, pinch or scroll to zoom, double-click to fit the background.
Run 'emojiart info' or 'emojiart apply' to work with documents headlessly.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("EMOJIART_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("EMOJIART_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("EMOJIART_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = NewEditCmd(flags).Register(app)
	app = NewApplyCmd(flags).Register(app)
	app = NewInfoCmd(flags).Register(app)
	app = NewPaletteCmd(flags).Register(app)

	return app
}
