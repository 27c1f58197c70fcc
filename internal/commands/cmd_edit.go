package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/emojiart"
	"github.com/phanxgames/emojiart/ecs"
	"github.com/phanxgames/emojiart/internal/config"
)

type EditCmd struct {
	flags *Flags

	// flags
	background       string
	scriptPath       string
	exitOnScriptDone bool
	screenshotDir    string
	hud              bool
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Open a document in the editor window",
		UsageText: "emojiart edit [options] [document.json]",
		Description: `Opens the editor. The document is created if it does not exist and is
saved on exit, on Ctrl+S and, when autosave is configured, periodically.

Without a document path nothing is written to disk.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "background",
				Aliases:     []string{"b"},
				Usage:       "replace the background with this URL or image path",
				Destination: &cmd.background,
			},
			&cli.StringFlag{
				Name:        "script",
				Usage:       "gesture script (YAML or JSON) to play back",
				Destination: &cmd.scriptPath,
			},
			&cli.BoolFlag{
				Name:        "exit",
				Usage:       "quit when the script finishes",
				Destination: &cmd.exitOnScriptDone,
			},
			&cli.StringFlag{
				Name:        "screenshot-dir",
				Usage:       "directory for screenshots (overrides config)",
				Sources:     cli.EnvVars("EMOJIART_SCREENSHOT_DIR"),
				Destination: &cmd.screenshotDir,
			},
			&cli.BoolFlag{
				Name:        "hud",
				Usage:       "show the debug overlay",
				Destination: &cmd.hud,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	path := c.Args().First()

	doc := emojiart.NewDocument()
	if path != "" {
		var err error
		doc, err = loadDocument(path)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loader := emojiart.NewAsyncLoader(ctx, emojiart.NewURLFetcher(cfg.FetchTimeout), cfg.FetchTimeout,
		log.With().Str("component", "loader").Logger())
	doc.SetBackgroundLoader(loader)
	if cmd.background != "" {
		doc.SetBackgroundURL(cmd.background)
	} else if url := doc.BackgroundURL(); url != "" {
		loader.Load(url)
	}

	world := donburi.NewWorld()
	doc.SetChangeStore(ecs.NewDonburiStore(world))
	mirror := ecs.NewMirror(world)
	mirror.Sync(doc.Items())
	changeLog := log.With().Str("component", "changes").Logger()
	ecs.ChangeEventType.Subscribe(world, func(w donburi.World, ev emojiart.ChangeEvent) {
		changeLog.Debug().Stringer("type", ev.Type).Int("id", ev.Item.ID).Msg("document changed")
	})

	ecfg, err := cmd.editorConfig(cfg)
	if err != nil {
		return err
	}
	ecfg.Loader = loader
	ecfg.UpdateFunc = func() error {
		events.ProcessAllEvents(world)
		return nil
	}
	if path != "" {
		ecfg.Autosave = func(d *emojiart.Document) error { return saveDocument(path, d) }
	}

	editor, err := emojiart.NewEditor(doc, ecfg)
	if err != nil {
		return err
	}

	log.Info().Str("document", path).Int("items", doc.Len()).Msg("opening editor")
	runErr := emojiart.Run(editor, emojiart.RunConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: cfg.Window.Resizable,
	})
	editor.Save()
	events.ProcessAllEvents(world)
	log.Info().Int("items", mirror.Len()).Msg("editor closed")
	return runErr
}

// editorConfig translates the loaded configuration and command flags into
// editor options.
func (cmd *EditCmd) editorConfig(cfg *config.Config) (emojiart.EditorConfig, error) {
	ecfg := emojiart.EditorConfig{
		Palette:          cfg.EditorPalette(),
		DefaultEmojiSize: cfg.DefaultEmojiSize,
		EmojiOnly:        cfg.EmojiOnly,
		ScreenshotDir:    cfg.ScreenshotDir,
		ShowHUD:          cfg.ShowHUD || cmd.hud,
		FitDuration:      float32(cfg.FitDuration.Seconds()),
		AutosaveInterval: cfg.Autosave,
		ExitOnScriptDone: cmd.exitOnScriptDone,
		Logger:           log.With().Str("component", "editor").Logger(),
	}
	if cmd.screenshotDir != "" {
		ecfg.ScreenshotDir = cmd.screenshotDir
	}
	if cfg.FontPath != "" {
		data, err := os.ReadFile(cfg.FontPath)
		if err != nil {
			return ecfg, fmt.Errorf("read font: %w", err)
		}
		ecfg.FontData = data
	}
	if cmd.scriptPath != "" {
		script, err := readScript(cmd.scriptPath)
		if err != nil {
			return ecfg, err
		}
		ecfg.Script = script
	}
	return ecfg, nil
}

func readScript(path string) (*emojiart.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return emojiart.LoadScript(data)
}
