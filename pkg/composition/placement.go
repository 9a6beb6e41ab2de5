package composition

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/matzehuels/balancecoach/pkg/errors"
)

// MaxPlacementAttempts bounds the randomized search for a free spot.
const MaxPlacementAttempts = 50

// ErrNoSpace is returned when no legal position was found within
// [MaxPlacementAttempts]. The board is left untouched.
var ErrNoSpace = errors.New(errors.ErrCodeNoSpace, "no space available")

// IDFunc generates identities for newly placed shapes.
type IDFunc func() string

// NewShapeID returns a random "shape-<uuid>" identity.
func NewShapeID() string { return "shape-" + uuid.NewString() }

// MirrorID derives the identity of the mirror twin of the shape with the given ID.
func MirrorID(id string) string { return id + "-mirror" }

// AttemptPlacement performs one randomized placement attempt for a w x h
// footprint. The top-left corner is drawn uniformly from the area that keeps
// the shape above the floor, then snapped to the grid. The result is usable
// only when ok is true: the snapped footprint is inside the board, does not
// straddle the fulcrum, collides with nothing, and, when mirror is set, its
// reflection satisfies the same constraints.
func AttemptPlacement(rng *rand.Rand, board Board, shapes []Shape, w, h float64, mirror bool) (r Rect, ok bool) {
	r = Rect{
		X: Snap(rng.Float64() * (board.Width - w)),
		Y: Snap(rng.Float64() * (board.FloorY() - h)),
		W: w,
		H: h,
	}
	if !fits(board, shapes, r) {
		return r, false
	}
	if mirror && !fits(board, shapes, board.Mirror(r)) {
		return r, false
	}
	return r, true
}

// Placement is the outcome of a successful search. Shapes holds the new
// shape, followed by its mirror twin when one was requested.
type Placement struct {
	Shapes   []Shape
	Attempts int
}

// Planner searches for free positions for new shapes.
type Planner struct {
	rng   *rand.Rand
	newID IDFunc
}

// NewPlanner returns a Planner drawing from rng. A nil newID falls back to
// [NewShapeID].
func NewPlanner(rng *rand.Rand, newID IDFunc) *Planner {
	if newID == nil {
		newID = NewShapeID
	}
	return &Planner{rng: rng, newID: newID}
}

// Place finds a position for a new shape of the given kind, size and shade.
// With mirror set, the shape and its reflection are placed together and
// linked through MirrorID. Place does not modify shapes; callers commit the
// returned placement themselves.
func (p *Planner) Place(board Board, shapes []Shape, kind Kind, size float64, shade int, mirror bool) (Placement, error) {
	w, h := kind.Dimensions(size)
	for attempt := 1; attempt <= MaxPlacementAttempts; attempt++ {
		r, ok := AttemptPlacement(p.rng, board, shapes, w, h, mirror)
		if !ok {
			continue
		}

		shape := NewShape(p.newID(), kind, r.X, r.Y, size, shade)
		if !mirror {
			return Placement{Shapes: []Shape{shape}, Attempts: attempt}, nil
		}

		twin := shape
		twin.ID = MirrorID(shape.ID)
		twin.X = board.Mirror(r).X
		twin.MirrorID = shape.ID
		shape.MirrorID = twin.ID
		return Placement{Shapes: []Shape{shape, twin}, Attempts: attempt}, nil
	}
	return Placement{Attempts: MaxPlacementAttempts}, ErrNoSpace
}
