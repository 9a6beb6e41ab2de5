package composition

import (
	"testing"

	"github.com/matzehuels/balancecoach/pkg/errors"
)

func TestSnapshotRestore(t *testing.T) {
	e := New(DefaultBoard(), WithSeed(21), WithMode(ModeSymmetrical))
	if _, err := e.AddShape(KindRectangle, 120, 3); err != nil {
		t.Fatalf("AddShape: %v", err)
	}
	e.CycleGuides()
	snap := e.Snapshot()

	got, err := Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got.Mode() != ModeSymmetrical || got.Guides() != GuidesThirds {
		t.Errorf("mode = %s, guides = %s", got.Mode(), got.Guides())
	}
	if got.Len() != 2 {
		t.Errorf("len = %d, want 2", got.Len())
	}
	if sel, ok := got.Selected(); !ok || sel.ID != snap.Selected {
		t.Errorf("selection = %q, want %q", sel.ID, snap.Selected)
	}
	if got.Balance() != snap.Balance {
		t.Errorf("balance = %+v, want %+v", got.Balance(), snap.Balance)
	}
}

func TestRestoreRecomputesDerived(t *testing.T) {
	snap := Snapshot{Shapes: []Shape{{ID: "a", Kind: KindSquare, X: 0, Y: 0, Width: 100, Height: 100, Shade: 5}}}
	e, err := Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	s, _ := e.Shape("a")
	if s.Weight != 200 || s.Saturation != 1.0 || s.Color != "#3b82f6" {
		t.Errorf("derived = %v/%v/%s", s.Weight, s.Saturation, s.Color)
	}
	if e.Board() != DefaultBoard() {
		t.Errorf("board = %+v", e.Board())
	}
}

func TestRestoreGuides(t *testing.T) {
	tests := []struct {
		in   GuideMode
		want GuideMode
	}{
		{"", GuidesNone},
		{GuidesNone, GuidesNone},
		{GuidesThirds, GuidesThirds},
		{GuidesColumns, GuidesColumns},
		{"bogus", GuidesNone},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			e, err := Restore(Snapshot{Guides: tt.in})
			if err != nil {
				t.Fatalf("Restore: %v", err)
			}
			if e.Guides() != tt.want {
				t.Errorf("guides = %q, want %q", e.Guides(), tt.want)
			}
			if tt.want == GuidesNone && e.CycleGuides() != GuidesThirds {
				t.Error("cycling from restored none should reach thirds")
			}
		})
	}
}

func TestRestoreRejectsInvalid(t *testing.T) {
	sq := func(id string, x, y float64) Shape {
		return Shape{ID: id, Kind: KindSquare, X: x, Y: y, Width: 100, Height: 100, Shade: 1}
	}
	tests := []struct {
		name   string
		shapes []Shape
		code   errors.Code
	}{
		{"overlap", []Shape{sq("a", 0, 0), sq("b", 50, 50)}, errors.ErrCodeInvalidBoard},
		{"duplicate id", []Shape{sq("a", 0, 0), sq("a", 200, 0)}, errors.ErrCodeInvalidBoard},
		{"straddles", []Shape{sq("a", 360, 0)}, errors.ErrCodeInvalidBoard},
		{"below floor", []Shape{sq("a", 0, 400)}, errors.ErrCodeInvalidBoard},
		{"bad shade", []Shape{{ID: "a", Kind: KindSquare, Width: 100, Height: 100, Shade: 9}}, errors.ErrCodeInvalidShade},
		{"bad kind", []Shape{{ID: "a", Kind: "blob", Width: 100, Height: 100, Shade: 1}}, errors.ErrCodeInvalidKind},
		{"one-way mirror", []Shape{
			func() Shape { s := sq("a", 0, 0); s.MirrorID = "b"; return s }(),
			sq("b", 700, 0),
		}, errors.ErrCodeInvalidBoard},
		{"mirror not reflected", []Shape{
			func() Shape { s := sq("a", 0, 0); s.MirrorID = "b"; return s }(),
			func() Shape { s := sq("b", 600, 0); s.MirrorID = "a"; return s }(),
		}, errors.ErrCodeInvalidBoard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Restore(Snapshot{Shapes: tt.shapes})
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestMirrorPairs(t *testing.T) {
	a, b := pair("a", KindSquare, 0, 0, 100, 1)
	c := NewShape("c", KindSquare, 200, 0, 80, 1)
	pairs := MirrorPairs([]Shape{a, c, b})
	if len(pairs) != 1 || pairs[0][0].ID != "a" || pairs[0][1].ID != "a-mirror" {
		t.Errorf("pairs = %v", pairs)
	}
}
