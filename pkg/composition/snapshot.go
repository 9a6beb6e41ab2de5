package composition

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/balancecoach/pkg/errors"
)

// Snapshot is a serializable view of an engine: the board, the shapes and
// the surrounding editor state, plus the balance reading at the time it was
// taken.
type Snapshot struct {
	Board     Board          `json:"board"`
	Mode      Mode           `json:"mode"`
	Shapes    []Shape        `json:"shapes"`
	Selected  string         `json:"selected,omitempty"`
	Guides    GuideMode      `json:"guides,omitempty"`
	Challenge *ChallengeInfo `json:"challenge,omitempty"`
	Balance   Balance        `json:"balance"`
}

// Snapshot captures the engine state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Board:    e.board,
		Mode:     e.mode,
		Shapes:   e.Shapes(),
		Selected: e.selected,
		Guides:   e.guides,
		Balance:  e.Balance(),
	}
	if e.challenge != nil {
		c := *e.challenge
		s.Challenge = &c
	}
	if s.Shapes == nil {
		s.Shapes = []Shape{}
	}
	return s
}

// Restore rebuilds an engine from a snapshot. Derived attributes (weight,
// saturation, color) are recomputed from the stored geometry and shade, and
// the result is checked with [Validate]. A zero board means [DefaultBoard].
func Restore(snap Snapshot, opts ...Option) (*Engine, error) {
	board := snap.Board
	if board == (Board{}) {
		board = DefaultBoard()
	}
	if err := errors.ValidateBoard(board.Width, board.Height, board.Floor, GridUnit); err != nil {
		return nil, err
	}
	mode := snap.Mode
	if mode == "" {
		mode = ModeAsymmetrical
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	shapes := make([]Shape, len(snap.Shapes))
	for i, s := range snap.Shapes {
		if _, err := ParseKind(string(s.Kind)); err != nil {
			return nil, fmt.Errorf("shape %s: %w", s.ID, err)
		}
		if err := errors.ValidateShade(s.Shade); err != nil {
			return nil, fmt.Errorf("shape %s: %w", s.ID, err)
		}
		s = s.withShade(s.Shade)
		s.Color = s.Kind.Color()
		shapes[i] = s
	}
	if err := Validate(board, shapes); err != nil {
		return nil, err
	}

	e := New(board, append([]Option{WithMode(mode)}, opts...)...)
	e.shapes = shapes
	switch snap.Guides {
	case GuidesThirds, GuidesColumns:
		e.guides = snap.Guides
	default:
		e.guides = GuidesNone
	}
	if snap.Challenge != nil {
		c := *snap.Challenge
		e.challenge = &c
	}
	if snap.Selected != "" {
		e.Select(snap.Selected)
	}
	return e, nil
}

// Validate checks the board invariants for a shape set: unique IDs, every
// footprint inside the board and off the fulcrum, no overlaps, derived
// attributes consistent with geometry and shade, and mirror links that are
// mutual, reflected and equal in size and shade.
func Validate(board Board, shapes []Shape) error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidBoard, format, args...)
	}

	byID := make(map[string]Shape, len(shapes))
	for i, s := range shapes {
		if s.ID == "" {
			return invalid("shape %d has no id", i)
		}
		if _, dup := byID[s.ID]; dup {
			return invalid("duplicate shape id %q", s.ID)
		}
		byID[s.ID] = s

		r := s.Rect()
		if r.W <= 0 || r.H <= 0 {
			return invalid("shape %s has empty footprint", s.ID)
		}
		if !board.Contains(r) {
			return invalid("shape %s is outside the board", s.ID)
		}
		if r.Straddles(board.Fulcrum()) {
			return invalid("shape %s straddles the fulcrum", s.ID)
		}
		if !approx(s.Weight, Weight(s.Width, s.Height, s.Shade)) || !approx(s.Saturation, Saturation(s.Shade)) {
			return invalid("shape %s has stale weight or saturation", s.ID)
		}
		if s.Challenge && s.MirrorID != "" {
			return invalid("challenge shape %s has a mirror", s.ID)
		}
		for _, o := range shapes[:i] {
			if Overlaps(r, o.Rect()) {
				return invalid("shapes %s and %s overlap", o.ID, s.ID)
			}
		}
	}

	for _, s := range shapes {
		if s.MirrorID == "" {
			continue
		}
		t, ok := byID[s.MirrorID]
		if !ok || t.MirrorID != s.ID {
			return invalid("shape %s has a broken mirror link", s.ID)
		}
		if t.Width != s.Width || t.Height != s.Height || t.Shade != s.Shade || t.Y != s.Y {
			return invalid("shape %s differs from its mirror", s.ID)
		}
		if !approx(t.X, board.Mirror(s.Rect()).X) {
			return invalid("shape %s is not reflected by its mirror", s.ID)
		}
	}
	return nil
}

// MirrorPairs returns the mirror-linked pairs in shapes, primary first.
func MirrorPairs(shapes []Shape) [][2]Shape {
	var pairs [][2]Shape
	seen := make(map[string]bool)
	for _, s := range shapes {
		if s.MirrorID == "" || seen[s.ID] {
			continue
		}
		i := slices.IndexFunc(shapes, func(o Shape) bool { return o.ID == s.MirrorID })
		if i < 0 {
			continue
		}
		seen[s.ID], seen[s.MirrorID] = true, true
		pairs = append(pairs, [2]Shape{s, shapes[i]})
	}
	return pairs
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
