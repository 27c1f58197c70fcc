package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/phanxgames/emojiart"
)

type ApplyCmd struct {
	flags *Flags

	// flags
	scriptPath string
	viewport   string
	out        string
}

// NewApplyCmd creates a new apply command
func NewApplyCmd(flags *Flags) *ApplyCmd {
	return &ApplyCmd{flags: flags}
}

// Register adds the apply command to the application
func (cmd *ApplyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "apply",
		Usage:     "Apply a gesture script to a document without opening a window",
		UsageText: "emojiart apply --script gestures.yaml [--viewport 800x600] [--out result.json] document.json",
		Description: `Replays pinch, pan, tap, drop, delete and fit steps against the document
and writes the result. Pointer, screenshot and wait steps need the editor
window and are rejected.

Backgrounds are fetched synchronously so fits see their size.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "script",
				Aliases:     []string{"s"},
				Usage:       "gesture script (YAML or JSON)",
				Required:    true,
				Destination: &cmd.scriptPath,
			},
			&cli.StringFlag{
				Name:        "viewport",
				Usage:       "canvas size as WIDTHxHEIGHT",
				Value:       "800x600",
				Destination: &cmd.viewport,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "write the result here instead of stdout",
				Destination: &cmd.out,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ApplyCmd) run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("document path required")
	}
	viewport, err := parseViewport(cmd.viewport)
	if err != nil {
		return err
	}
	script, err := readScript(cmd.scriptPath)
	if err != nil {
		return err
	}
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	loader := &syncLoader{
		ctx:     ctx,
		doc:     doc,
		fetcher: emojiart.NewURLFetcher(cmd.flags.Config.FetchTimeout),
	}
	doc.SetBackgroundLoader(loader)
	if url := doc.BackgroundURL(); url != "" {
		loader.Load(url)
	}

	r := emojiart.NewReducer(doc, emojiart.NewSelection(), viewport)
	if cmd.flags.Config.DefaultEmojiSize > 0 {
		r.DefaultSize = cmd.flags.Config.DefaultEmojiSize
	}
	if cmd.flags.Config.EmojiOnly {
		r.Accept = emojiart.IsEmoji
	}
	r.SetLogger(log.With().Str("component", "reducer").Logger())
	if err := script.Apply(r); err != nil {
		return err
	}

	log.Debug().
		Int("steps", len(script.Steps)).
		Int("items", doc.Len()).
		Float64("zoom", doc.SteadyStateZoomScale()).
		Msg("script applied")

	if cmd.out != "" {
		return saveDocument(cmd.out, doc)
	}
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.Root().Writer, string(data))
	return err
}

// parseViewport parses a "WIDTHxHEIGHT" string.
func parseViewport(s string) (emojiart.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return emojiart.Size{}, fmt.Errorf("invalid viewport %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil || width < 0 {
		return emojiart.Size{}, fmt.Errorf("invalid viewport width %q", w)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil || height < 0 {
		return emojiart.Size{}, fmt.Errorf("invalid viewport height %q", h)
	}
	return emojiart.Size{Width: width, Height: height}, nil
}

// syncLoader fetches backgrounds on the calling goroutine. Headless commands
// have no game loop to deliver results on.
type syncLoader struct {
	ctx     context.Context
	doc     *emojiart.Document
	fetcher emojiart.Fetcher
}

func (l *syncLoader) Load(url string) {
	img, err := l.fetcher.Fetch(l.ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("background fetch failed")
	}
	l.doc.ResolveBackground(url, img, err)
}

var _ emojiart.BackgroundLoader = (*syncLoader)(nil)
