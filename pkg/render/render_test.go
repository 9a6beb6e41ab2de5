package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/balancecoach/pkg/composition"
)

func snapshotOf(t *testing.T, guides composition.GuideMode, shapes ...composition.Shape) composition.Snapshot {
	t.Helper()
	e, err := composition.Restore(composition.Snapshot{
		Board:  composition.DefaultBoard(),
		Shapes: shapes,
		Guides: guides,
	})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	return e.Snapshot()
}

func TestRenderSVG(t *testing.T) {
	light := composition.NewShape("a", composition.KindSquare, 0, 0, 100, 1)
	heavy := composition.NewShape("b", composition.KindSquare, 600, 0, 200, 5)
	challenge := composition.NewShape("c", composition.KindRectangle, 200, 200, 80, 3)
	challenge.Challenge = true

	tests := []struct {
		name    string
		snap    composition.Snapshot
		opts    []SVGOption
		want    []string
		notWant []string
	}{
		{
			name: "empty board",
			snap: snapshotOf(t, composition.GuidesNone),
			want: []string{
				`viewBox="0 0 800.0 600.0"`,
				`class="floor" x="0" y="460.0" width="800.0" height="140.0"`,
				`class="fulcrum" x1="400.0"`,
				`rotate(0.0 400.0 490.0)`,
				`>Balanced</text>`,
			},
			notWant: []string{"<defs>", `class="guide"`, `class="shape`},
		},
		{
			name: "left tilt",
			snap: snapshotOf(t, composition.GuidesNone, light),
			want: []string{
				`id="shape-a" x="0.0" y="0.0" width="100.0" height="100.0"`,
				`<filter id="shade-1"><feColorMatrix type="saturate" values="0.300"/></filter>`,
				`rotate(-4.4 400.0 490.0)`,
				`>Tipped Left</text>`,
			},
		},
		{
			name: "clamped tilt",
			snap: snapshotOf(t, composition.GuidesNone, heavy),
			want: []string{`rotate(25.0 400.0 490.0)`, `>Tipped Right</text>`, `fill="#f87171"`},
		},
		{
			name: "thirds from snapshot",
			snap: snapshotOf(t, composition.GuidesThirds),
			want: []string{`class="guide" x1="266.7"`, `class="guide" x1="0" y1="153.3"`},
		},
		{
			name:    "guides override",
			snap:    snapshotOf(t, composition.GuidesThirds),
			opts:    []SVGOption{WithGuides(composition.GuidesNone)},
			notWant: []string{`class="guide"`},
		},
		{
			name: "challenge outline",
			snap: snapshotOf(t, composition.GuidesNone, challenge),
			want: []string{`id="shape-c"`, `stroke-dasharray="6 4"`, `filter="url(#shade-3)"`},
		},
		{
			name:    "no beam",
			snap:    snapshotOf(t, composition.GuidesNone, light),
			opts:    []SVGOption{WithoutBeam()},
			notWant: []string{`class="beam"`, `class="status"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(tt.snap, tt.opts...))
			if !strings.HasSuffix(svg, "</svg>\n") {
				t.Error("document not closed")
			}
			for _, w := range tt.want {
				if !strings.Contains(svg, w) {
					t.Errorf("missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(svg, w) {
					t.Errorf("unexpected %q", w)
				}
			}
		})
	}
}

func TestRenderSVGColumns(t *testing.T) {
	svg := string(RenderSVG(snapshotOf(t, composition.GuidesColumns)))
	if got := strings.Count(svg, `class="guide"`); got != composition.GuideColumns-1 {
		t.Errorf("guide lines = %d, want %d", got, composition.GuideColumns-1)
	}
}

func TestRenderSVGSelectionOnTop(t *testing.T) {
	a := composition.NewShape("a", composition.KindSquare, 0, 0, 100, 1)
	b := composition.NewShape("b", composition.KindSquare, 200, 0, 100, 1)
	snap := snapshotOf(t, composition.GuidesNone, a, b)
	snap.Selected = "a"

	svg := string(RenderSVG(snap))
	ia, ib := strings.Index(svg, `id="shape-a"`), strings.Index(svg, `id="shape-b"`)
	if ia < ib {
		t.Error("selected shape should be drawn last")
	}
	if !strings.Contains(svg, `stroke="#ffffff"`) {
		t.Error("selected shape not outlined")
	}

	svg = string(RenderSVG(snap, WithoutSelection()))
	if strings.Contains(svg, `stroke="#ffffff"`) {
		t.Error("selection drawn despite WithoutSelection")
	}
}

func TestRenderSVGEscapesIDs(t *testing.T) {
	s := composition.NewShape(`x"><script>`, composition.KindSquare, 0, 0, 100, 1)
	svg := string(RenderSVG(snapshotOf(t, composition.GuidesNone, s)))
	if strings.Contains(svg, "<script>") {
		t.Error("shape id not escaped")
	}
}

func TestRenderJSON(t *testing.T) {
	left := composition.NewShape("a", composition.KindSquare, 0, 0, 100, 1)
	centered := composition.NewShape("b", composition.KindSquare, 360, 0, 80, 2)
	snap := snapshotOf(t, composition.GuidesThirds, left)
	// Straddling shapes cannot be restored, so add the centered one directly.
	snap.Shapes = append(snap.Shapes, centered)
	snap.Selected = "a"

	data, err := RenderJSON(snap)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Fulcrum != 400 || out.FloorY != 460 {
		t.Errorf("fulcrum/floor = %v/%v", out.Fulcrum, out.FloorY)
	}
	if out.Guides == nil || len(out.Guides.X) != 2 || len(out.Guides.Y) != 2 {
		t.Errorf("guides = %+v", out.Guides)
	}
	if len(out.Shapes) != 2 {
		t.Fatalf("shapes = %d", len(out.Shapes))
	}
	if out.Shapes[0].Side != "left" || !out.Shapes[0].Selected {
		t.Errorf("shape a = %+v", out.Shapes[0])
	}
	if out.Shapes[1].Side != "right" {
		t.Errorf("centered shape side = %q, want right", out.Shapes[1].Side)
	}
	if out.Beam.Status != composition.StatusTippedLeft || out.Beam.Left != 35000 {
		t.Errorf("beam = %+v", out.Beam)
	}

	data, _ = RenderJSON(snap, WithJSONGuides(composition.GuidesNone))
	if strings.Contains(string(data), `"guides"`) {
		t.Error("guides present after override to none")
	}
}
