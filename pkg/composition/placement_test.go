package composition

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}
}

func TestPlannerPlaceOnEmptyBoard(t *testing.T) {
	board := DefaultBoard()
	for seed := range uint64(20) {
		p := NewPlanner(seeded(seed), sequentialIDs())
		got, err := p.Place(board, nil, KindSquare, 100, 3, false)
		if err != nil {
			t.Fatalf("seed %d: Place: %v", seed, err)
		}
		if len(got.Shapes) != 1 {
			t.Fatalf("seed %d: got %d shapes, want 1", seed, len(got.Shapes))
		}
		s := got.Shapes[0]
		if s.Width != 100 || s.Height != 100 {
			t.Errorf("seed %d: size %vx%v, want 100x100", seed, s.Width, s.Height)
		}
		if s.Weight != 150 {
			t.Errorf("seed %d: weight %v, want 150", seed, s.Weight)
		}
		if Snap(s.X) != s.X || Snap(s.Y) != s.Y {
			t.Errorf("seed %d: position (%v,%v) not on grid", seed, s.X, s.Y)
		}
		if s.X < 0 || s.X > 700 || s.Y < 0 || s.Y > 360 {
			t.Errorf("seed %d: position (%v,%v) out of range", seed, s.X, s.Y)
		}
		if s.Rect().Straddles(board.Fulcrum()) {
			t.Errorf("seed %d: shape straddles fulcrum", seed)
		}
	}
}

func TestPlannerPlaceMirrored(t *testing.T) {
	board := DefaultBoard()
	p := NewPlanner(seeded(7), func() string { return "a" })
	got, err := p.Place(board, nil, KindRectangle, 120, 2, true)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(got.Shapes) != 2 {
		t.Fatalf("got %d shapes, want 2", len(got.Shapes))
	}
	a, b := got.Shapes[0], got.Shapes[1]
	if a.ID != "a" || b.ID != "a-mirror" {
		t.Errorf("ids = %q, %q", a.ID, b.ID)
	}
	if a.MirrorID != b.ID || b.MirrorID != a.ID {
		t.Errorf("mirror links not mutual: %q <-> %q", a.MirrorID, b.MirrorID)
	}
	if a.X+b.X+a.Width != board.Width {
		t.Errorf("twin not reflected: %v + %v + %v != %v", a.X, b.X, a.Width, board.Width)
	}
	if a.Y != b.Y || a.Weight != b.Weight {
		t.Errorf("twin differs: %+v vs %+v", a, b)
	}
	if err := Validate(board, got.Shapes); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestPlannerNoSpace(t *testing.T) {
	board := DefaultBoard()
	// Two shapes covering everything above the floor on both sides.
	full := []Shape{
		{ID: "l", X: 0, Y: 0, Width: 400, Height: 460},
		{ID: "r", X: 400, Y: 0, Width: 400, Height: 460},
	}
	p := NewPlanner(seeded(1), nil)
	got, err := p.Place(board, full, KindSquare, 80, 1, false)
	if !errors.Is(err, ErrNoSpace) {
		t.Fatalf("err = %v, want ErrNoSpace", err)
	}
	if got.Attempts != MaxPlacementAttempts {
		t.Errorf("attempts = %d, want %d", got.Attempts, MaxPlacementAttempts)
	}
}

func TestPlannerDefaultIDs(t *testing.T) {
	p := NewPlanner(seeded(3), nil)
	got, err := p.Place(DefaultBoard(), nil, KindSquare, 80, 1, false)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if id := got.Shapes[0].ID; len(id) <= len("shape-") || id[:6] != "shape-" {
		t.Errorf("id = %q, want shape-<uuid>", id)
	}
}

func TestAttemptPlacementSkipsOccupied(t *testing.T) {
	board := DefaultBoard()
	left := []Shape{{ID: "l", X: 0, Y: 0, Width: 400, Height: 460}}
	rng := seeded(11)
	for range 200 {
		r, ok := AttemptPlacement(rng, board, left, 100, 100, false)
		if ok && r.X < 400 {
			t.Fatalf("placed on occupied half at %+v", r)
		}
	}
	// A mirrored placement needs both halves free.
	for range 200 {
		if _, ok := AttemptPlacement(rng, board, left, 100, 100, true); ok {
			t.Fatal("mirrored placement succeeded with left half full")
		}
	}
}
