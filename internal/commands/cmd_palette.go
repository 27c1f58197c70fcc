package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/phanxgames/emojiart"
)

type PaletteCmd struct {
	flags *Flags
}

// NewPaletteCmd creates a new palette command
func NewPaletteCmd(flags *Flags) *PaletteCmd {
	return &PaletteCmd{flags: flags}
}

// Register adds the palette command to the application
func (cmd *PaletteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "palette",
		Usage:     "Show the configured palette",
		UsageText: "emojiart palette [glyphs]",
		Description: `Lists each palette glyph and whether it is a single emoji. Pass a string
to check it instead of the configured palette.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *PaletteCmd) run(ctx context.Context, c *cli.Command) error {
	palette := cmd.flags.Config.EditorPalette()
	if c.Args().Present() {
		palette = emojiart.ParsePalette(c.Args().First())
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tGLYPH\tSTATUS")
	for i, g := range palette {
		status := "ok"
		if err := emojiart.ValidateGlyph(g); err != nil {
			status = err.Error()
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", i, g, status)
	}
	return w.Flush()
}
