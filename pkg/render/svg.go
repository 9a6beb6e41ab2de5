package render

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"

	"github.com/matzehuels/balancecoach/pkg/composition"
)

// Palette.
const (
	colorBackground = "#0f172a"
	colorFloor      = "#1e293b"
	colorGuide      = "#475569"
	colorFulcrum    = "#64748b"
	colorBeam       = "#cbd5e1"
	colorPivot      = "#475569"
	colorBalanced   = "#4ade80"
	colorTipped     = "#f87171"
)

// Beam geometry relative to the floor band.
const (
	beamInset     = 0.1 // fraction of the board width left free on each side
	beamThickness = 16.0
	beamOffset    = 30.0 // beam centerline below the floor line
	pivotWidth    = 60.0
	pivotHeight   = 50.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	guides    composition.GuideMode
	override  bool
	beam      bool
	selection bool
}

// WithGuides draws g instead of the guide mode stored in the snapshot.
func WithGuides(g composition.GuideMode) SVGOption {
	return func(r *svgRenderer) { r.guides, r.override = g, true }
}

// WithoutBeam omits the balance beam and status label.
func WithoutBeam() SVGOption { return func(r *svgRenderer) { r.beam = false } }

// WithoutSelection draws the selected shape like any other.
func WithoutSelection() SVGOption { return func(r *svgRenderer) { r.selection = false } }

// RenderSVG renders snap as an SVG document sized to the board.
func RenderSVG(snap composition.Snapshot, opts ...SVGOption) []byte {
	r := svgRenderer{beam: true, selection: true}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.override {
		r.guides = snap.Guides
	}

	b := snap.Board
	if b == (composition.Board{}) {
		b = composition.DefaultBoard()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		b.Width, b.Height, b.Width, b.Height)

	renderDefs(&buf, snap.Shapes)
	fmt.Fprintf(&buf, `  <rect class="board" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		b.Width, b.Height, colorBackground)
	renderGuides(&buf, b, r.guides)
	renderFulcrum(&buf, b)
	renderFloor(&buf, b)
	renderShapes(&buf, snap, r.selection)
	if r.beam {
		renderBeam(&buf, b, snap.Balance)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderDefs writes one saturate filter per shade in use.
func renderDefs(buf *bytes.Buffer, shapes []composition.Shape) {
	var shades []int
	for _, s := range shapes {
		if !slices.Contains(shades, s.Shade) {
			shades = append(shades, s.Shade)
		}
	}
	if len(shades) == 0 {
		return
	}
	slices.Sort(shades)

	buf.WriteString("  <defs>\n")
	for _, shade := range shades {
		fmt.Fprintf(buf, `    <filter id="%s"><feColorMatrix type="saturate" values="%.3f"/></filter>`+"\n",
			filterID(shade), composition.Saturation(shade))
	}
	buf.WriteString("  </defs>\n")
}

func filterID(shade int) string { return fmt.Sprintf("shade-%d", shade) }

func renderGuides(buf *bytes.Buffer, b composition.Board, g composition.GuideMode) {
	xs, ys := g.Lines(b.Width, b.FloorY())
	for _, x := range xs {
		fmt.Fprintf(buf, `  <line class="guide" x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="6 6"/>`+"\n",
			x, x, b.FloorY(), colorGuide)
	}
	for _, y := range ys {
		fmt.Fprintf(buf, `  <line class="guide" x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="6 6"/>`+"\n",
			y, b.Width, y, colorGuide)
	}
}

func renderFulcrum(buf *bytes.Buffer, b composition.Board) {
	fmt.Fprintf(buf, `  <line class="fulcrum" x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2" stroke-dasharray="2 8"/>`+"\n",
		b.Fulcrum(), b.Fulcrum(), b.FloorY(), colorFulcrum)
}

func renderFloor(buf *bytes.Buffer, b composition.Board) {
	fmt.Fprintf(buf, `  <rect class="floor" x="0" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		b.FloorY(), b.Width, b.Floor, colorFloor)
}

// renderShapes draws shapes in stacking order with the selection on top.
func renderShapes(buf *bytes.Buffer, snap composition.Snapshot, withSelection bool) {
	shapes := slices.Clone(snap.Shapes)
	selected := ""
	if withSelection {
		selected = snap.Selected
	}
	slices.SortStableFunc(shapes, func(a, b composition.Shape) int {
		return cmp.Compare(boolInt(a.ID == selected), boolInt(b.ID == selected))
	})

	for _, s := range shapes {
		stroke := ""
		switch {
		case s.Challenge:
			stroke = ` stroke="rgba(255,255,255,0.4)" stroke-width="2" stroke-dasharray="6 4"`
		case s.ID == selected:
			stroke = ` stroke="#ffffff" stroke-width="2"`
		}
		fmt.Fprintf(buf, `  <rect class="shape %s" id="shape-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" filter="url(#%s)"%s/>`+"\n",
			s.Kind, html.EscapeString(s.ID), s.X, s.Y, s.Width, s.Height,
			html.EscapeString(s.Color), filterID(s.Shade), stroke)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func renderBeam(buf *bytes.Buffer, b composition.Board, bal composition.Balance) {
	cx := b.Fulcrum()
	cy := b.FloorY() + beamOffset
	left := b.Width * beamInset
	length := b.Width - 2*left

	fmt.Fprintf(buf, `  <polygon class="pivot" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s"/>`+"\n",
		cx, cy, cx-pivotWidth/2, cy+pivotHeight, cx+pivotWidth/2, cy+pivotHeight, colorPivot)
	fmt.Fprintf(buf, `  <rect class="beam" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" transform="rotate(%.1f %.1f %.1f)"/>`+"\n",
		left, cy-beamThickness/2, length, beamThickness, beamThickness/2, colorBeam, bal.VisualTilt, cx, cy)
	fmt.Fprintf(buf, `  <circle class="pivot" cx="%.1f" cy="%.1f" r="10" fill="%s"/>`+"\n", cx, cy, colorFulcrum)

	status := bal.Status
	if status == "" {
		status = composition.StatusOf(bal.Tilt)
	}
	color := colorTipped
	if status == composition.StatusBalanced {
		color = colorBalanced
	}
	fmt.Fprintf(buf, `  <text class="status" x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="20" font-weight="bold" fill="%s">%s</text>`+"\n",
		cx, b.Height-16, color, status)
}
