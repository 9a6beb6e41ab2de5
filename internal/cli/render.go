package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/errors"
	pkgio "github.com/matzehuels/balancecoach/pkg/io"
	"github.com/matzehuels/balancecoach/pkg/render"
)

const (
	formatSVG     = "svg"     // picture of the board
	formatJSON    = "json"    // composition file, loadable by play and add
	formatDrawing = "drawing" // resolved drawing data for external renderers
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatSVG: true, formatJSON: true, formatDrawing: true}

// renderOpts holds the drawing flags shared by the commands that write
// pictures.
type renderOpts struct {
	guides string // guide override: none, thirds, columns
	noBeam bool   // omit the balance beam and status label
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		format string
		opts   renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [composition.json]",
		Short: "Draw a composition as SVG or JSON",
		Long: `Draw a composition as SVG or JSON.

The SVG shows the board with its guides, fulcrum and floor, every shape in
its shade, and the balance beam tilted toward the heavy side. The drawing
format exports the same picture as data: guide positions, shape sides and
the beam angle.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if format == "" {
				format = formatFromPath(output, formatSVG)
			}
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + extension(format)
			}
			return c.runRender(cmd.Context(), input, output, format, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg (default), drawing, json")
	cmd.Flags().StringVar(&opts.guides, "guides", "", "guide override: none, thirds, columns")
	cmd.Flags().BoolVar(&opts.noBeam, "no-beam", false, "omit the balance beam")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output, format string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Rendering %s", input)

	e, err := pkgio.LoadEngine(input)
	if err != nil {
		return err
	}
	snap := e.Snapshot()
	logger.Debugf("Loaded composition: %d shapes, %s", len(snap.Shapes), snap.Balance.Status)

	return writeSnapshot(ctx, snap, output, format, opts)
}

// writeSnapshot renders snap in format and writes it to path ("" for stdout).
func writeSnapshot(ctx context.Context, snap composition.Snapshot, path, format string, opts renderOpts) error {
	prog := newProgress(loggerFromContext(ctx))

	data, err := renderSnapshot(snap, format, opts)
	if err != nil {
		return err
	}

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}

	if path != "" {
		prog.done(fmt.Sprintf("Wrote %s", path))
		printFile(path)
	}
	return nil
}

func renderSnapshot(snap composition.Snapshot, format string, opts renderOpts) ([]byte, error) {
	if !validFormats[format] {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'svg', 'drawing' or 'json')", format)
	}

	var guides *composition.GuideMode
	if opts.guides != "" {
		g, err := parseGuides(opts.guides)
		if err != nil {
			return nil, err
		}
		guides = &g
	}

	switch format {
	case formatSVG:
		var svgOpts []render.SVGOption
		if guides != nil {
			svgOpts = append(svgOpts, render.WithGuides(*guides))
		}
		if opts.noBeam {
			svgOpts = append(svgOpts, render.WithoutBeam())
		}
		return render.RenderSVG(snap, svgOpts...), nil
	case formatDrawing:
		var jsonOpts []render.JSONOption
		if guides != nil {
			jsonOpts = append(jsonOpts, render.WithJSONGuides(*guides))
		}
		return render.RenderJSON(snap, jsonOpts...)
	default:
		var buf bytes.Buffer
		if err := pkgio.WriteJSON(snap, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func parseGuides(s string) (composition.GuideMode, error) {
	switch g := composition.GuideMode(strings.ToLower(s)); g {
	case composition.GuidesNone, composition.GuidesThirds, composition.GuidesColumns:
		return g, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid guides: %s (must be 'none', 'thirds' or 'columns')", s)
}

// formatFromPath infers the output format from a file extension.
func formatFromPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return formatSVG
	case ".json":
		return formatJSON
	}
	return fallback
}

func extension(format string) string {
	if format == formatDrawing {
		return "drawing.json"
	}
	return format
}
