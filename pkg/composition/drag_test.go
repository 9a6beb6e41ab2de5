package composition

import "testing"

func TestDragFollowsPointer(t *testing.T) {
	e := restore(t, ModeAsymmetrical, NewShape("s", KindSquare, 100, 100, 100, 1))
	d := e.PointerDown(150, 130)
	if d == nil {
		t.Fatal("PointerDown on shape returned nil")
	}
	if id, ok := e.Dragging(); !ok || id != "s" {
		t.Errorf("Dragging = %q, %v", id, ok)
	}
	// Grab offset is (50, 30); pointer at (250, 230) puts the corner at (200, 200).
	if !d.Move(250, 230) {
		t.Fatal("Move returned false")
	}
	if got := mustShape(t, e, "s"); got.X != 200 || got.Y != 200 {
		t.Errorf("position = (%v,%v), want (200,200)", got.X, got.Y)
	}
	d.End()
	if d.Active() {
		t.Error("drag still active after End")
	}
	if d.Move(400, 400) {
		t.Error("Move after End succeeded")
	}
	if _, ok := e.Dragging(); ok {
		t.Error("engine still dragging")
	}
}

func TestPointerDownOnBoardClearsSelection(t *testing.T) {
	e := restore(t, ModeAsymmetrical, NewShape("s", KindSquare, 100, 100, 100, 1))
	e.Select("s")
	if d := e.PointerDown(700, 20); d != nil {
		t.Error("PointerDown on empty board returned a drag")
	}
	if _, ok := e.Selected(); ok {
		t.Error("selection not cleared")
	}
}

func TestDragEndsWhenShapeDeleted(t *testing.T) {
	e := restore(t, ModeAsymmetrical, NewShape("s", KindSquare, 100, 100, 100, 1))
	d := e.BeginDrag("s", 0, 0)
	e.Delete("s")
	if d.Active() {
		t.Error("drag survived deletion")
	}
}

func TestNewDragEndsPrevious(t *testing.T) {
	e := restore(t, ModeAsymmetrical,
		NewShape("a", KindSquare, 0, 0, 80, 1),
		NewShape("b", KindSquare, 600, 0, 80, 1),
	)
	first := e.BeginDrag("a", 0, 0)
	second := e.BeginDrag("b", 0, 0)
	if first.Active() || !second.Active() {
		t.Errorf("first active = %v, second active = %v", first.Active(), second.Active())
	}
}

func TestShapeAtPrefersTopmost(t *testing.T) {
	e := restore(t, ModeAsymmetrical, NewShape("a", KindSquare, 0, 0, 80, 1))
	if s, ok := e.ShapeAt(40, 40); !ok || s.ID != "a" {
		t.Errorf("ShapeAt = %v, %v", s.ID, ok)
	}
	if _, ok := e.ShapeAt(80, 40); ok {
		t.Error("right edge should be outside the shape")
	}
}
