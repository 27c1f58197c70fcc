package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/phanxgames/emojiart"
)

const thumbnailSize = 128

type InfoCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	thumbDir   string
}

// NewInfoCmd creates a new info command
func NewInfoCmd(flags *Flags) *InfoCmd {
	return &InfoCmd{flags: flags}
}

// Register adds the info command to the application
func (cmd *InfoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "info",
		Usage:     "Summarize documents",
		UsageText: "emojiart info [--json] [--thumbs DIR] PATTERN...",
		Description: `Lists each matching document with its item count, glyph histogram and
background. Patterns support ** globs, e.g. 'art/**/*.json'.

With --thumbs, each document's background is fetched and written to DIR as a
128px PNG thumbnail.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "thumbs",
				Usage:       "write background thumbnails to this directory",
				Destination: &cmd.thumbDir,
			},
		},
		Action: cmd.run,
	})

	return app
}

// docInfo is the summary printed for one document.
type docInfo struct {
	Path       string         `json:"path"`
	Items      int            `json:"items"`
	Glyphs     map[string]int `json:"glyphs"`
	Background string         `json:"background,omitempty"`
	Thumbnail  string         `json:"thumbnail,omitempty"`
}

func (cmd *InfoCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one document pattern required")
	}
	paths, err := expandPatterns(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents match %s", strings.Join(c.Args().Slice(), " "))
	}

	infos := make([]docInfo, 0, len(paths))
	for _, p := range paths {
		info, err := cmd.inspect(ctx, p)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		enc := json.NewEncoder(out)
		for _, info := range infos {
			if err := enc.Encode(info); err != nil {
				return err
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tITEMS\tGLYPHS\tBACKGROUND")
	for _, info := range infos {
		bg := info.Background
		if bg == "" {
			bg = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", info.Path, info.Items, formatGlyphs(info.Glyphs), bg)
	}
	return w.Flush()
}

func (cmd *InfoCmd) inspect(ctx context.Context, path string) (docInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return docInfo{}, fmt.Errorf("read document: %w", err)
	}
	doc, err := emojiart.Decode(data)
	if err != nil {
		return docInfo{}, fmt.Errorf("%s: %w", path, err)
	}

	info := docInfo{
		Path:       path,
		Items:      doc.Len(),
		Glyphs:     make(map[string]int),
		Background: doc.BackgroundURL(),
	}
	for _, it := range doc.Items() {
		info.Glyphs[it.Text]++
	}

	if cmd.thumbDir != "" && info.Background != "" {
		thumb, err := cmd.writeThumbnail(ctx, path, info.Background)
		if err != nil {
			// A missing background should not hide the rest of the listing.
			log.Warn().Err(err).Str("document", path).Msg("thumbnail failed")
		}
		info.Thumbnail = thumb
	}
	return info, nil
}

func (cmd *InfoCmd) writeThumbnail(ctx context.Context, docPath, url string) (string, error) {
	img, err := emojiart.NewURLFetcher(cmd.flags.Config.FetchTimeout).Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cmd.thumbDir, 0o755); err != nil {
		return "", fmt.Errorf("create thumbnail dir: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath)) + ".png"
	out := filepath.Join(cmd.thumbDir, name)
	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	if err := imaging.Save(thumb, out); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}
	return out, nil
}

// expandPatterns resolves glob patterns to a de-duplicated list of files in
// argument order. A pattern without glob characters is passed through so a missing
// file reports a read error rather than silently matching nothing.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			add(pattern)
			continue
		}
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}

// formatGlyphs renders a histogram like "🍎×2 ⭐️×1", most frequent first.
func formatGlyphs(glyphs map[string]int) string {
	if len(glyphs) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(glyphs))
	for g := range glyphs {
		keys = append(keys, g)
	}
	sort.Slice(keys, func(i, j int) bool {
		if glyphs[keys[i]] != glyphs[keys[j]] {
			return glyphs[keys[i]] > glyphs[keys[j]]
		}
		return keys[i] < keys[j]
	})
	parts := make([]string, len(keys))
	for i, g := range keys {
		parts[i] = fmt.Sprintf("%s×%d", g, glyphs[g])
	}
	return strings.Join(parts, " ")
}
