package composition

import (
	"fmt"
	"math/rand/v2"
)

// Pattern names a structural layout used to arrange challenge shapes.
type Pattern string

const (
	PatternGrid      Pattern = "stacked-grid"
	PatternPyramid   Pattern = "dynamic-pyramid"
	PatternTowers    Pattern = "asym-towers"
	PatternStaircase Pattern = "ascending-steps"
)

// Patterns lists every challenge layout in selection order.
var Patterns = []Pattern{PatternGrid, PatternPyramid, PatternTowers, PatternStaircase}

// ChallengeSizes is the pool challenge sizes are drawn from without
// replacement, so no two shapes in a challenge share a size.
var ChallengeSizes = []float64{60, 70, 80, 90, 100, 110, 120, 130, 140, 150}

// fallbackSize stands in for the next blueprint size once the blueprints are
// used up, so layout math keeps working.
const fallbackSize = 60.0

// Blueprint is the size and shade of one challenge shape before it is laid out.
type Blueprint struct {
	Size  float64
	Shade int
}

// Blueprints draws count blueprints with distinct sizes. Shades cycle
// through 1..5 and the result is shuffled. count is capped at the size of
// [ChallengeSizes].
func Blueprints(rng *rand.Rand, count int) []Blueprint {
	sizes := append([]float64(nil), ChallengeSizes...)
	rng.Shuffle(len(sizes), func(i, j int) { sizes[i], sizes[j] = sizes[j], sizes[i] })

	count = min(count, len(sizes))
	bps := make([]Blueprint, count)
	for i := range bps {
		bps[i] = Blueprint{Size: sizes[i], Shade: i%5 + 1}
	}
	rng.Shuffle(len(bps), func(i, j int) { bps[i], bps[j] = bps[j], bps[i] })
	return bps
}

// Challenge is a generated puzzle: shapes confined to the left half of the
// board that the student must counterbalance.
type Challenge struct {
	Pattern Pattern `json:"pattern"`
	Target  int     `json:"target"`
	Shapes  []Shape `json:"shapes"`
}

// GenerateChallenge builds a random challenge: 6 or 8 shapes laid out with a
// randomly chosen pattern. Proposals that do not fit are dropped, so the
// result may hold fewer shapes than Target.
func GenerateChallenge(rng *rand.Rand, board Board) Challenge {
	count := 8
	if rng.Float64() > 0.5 {
		count = 6
	}
	bps := Blueprints(rng, count)
	pattern := Patterns[rng.IntN(len(Patterns))]
	return layoutChallenge(rng, board, pattern, bps)
}

// GenerateChallengeWith builds a challenge with a fixed target count and
// pattern.
func GenerateChallengeWith(rng *rand.Rand, board Board, count int, pattern Pattern) Challenge {
	return layoutChallenge(rng, board, pattern, Blueprints(rng, count))
}

func layoutChallenge(rng *rand.Rand, board Board, pattern Pattern, bps []Blueprint) Challenge {
	b := &challengeBuilder{board: board, rng: rng, blueprints: bps}
	switch pattern {
	case PatternGrid:
		b.grid()
	case PatternPyramid:
		b.pyramid()
	case PatternTowers:
		b.towers()
	default:
		pattern = PatternStaircase
		b.staircase()
	}
	return Challenge{Pattern: pattern, Target: len(bps), Shapes: b.shapes}
}

// =============================================================================
// Layout Patterns
// =============================================================================

type challengeBuilder struct {
	board      Board
	rng        *rand.Rand
	blueprints []Blueprint
	next       int
	shapes     []Shape
}

func (b *challengeBuilder) remaining() bool { return b.next < len(b.blueprints) }

// nextSize peeks at the size of the blueprint the next proposal will use.
func (b *challengeBuilder) nextSize() float64 {
	if !b.remaining() {
		return fallbackSize
	}
	return b.blueprints[b.next].Size
}

// propose consumes the next blueprint and keeps the resulting shape at
// (x, y) if it fits. The blueprint is consumed either way.
func (b *challengeBuilder) propose(x, y float64) bool {
	if !b.remaining() {
		return false
	}
	bp := b.blueprints[b.next]
	b.next++

	kind := KindSquare
	if b.rng.Float64() <= 0.5 {
		kind = KindRectangle
	}
	s := NewShape(fmt.Sprintf("challenge-%d", len(b.shapes)), kind, Snap(x), Snap(y), bp.Size, bp.Shade)
	s.Challenge = true

	r := s.Rect()
	if !b.board.Contains(r) || r.Right() > b.board.Fulcrum() || HasCollision(b.shapes, r) {
		return false
	}
	b.shapes = append(b.shapes, s)
	return true
}

// grid stacks two columns of 80x100 cells resting on the floor.
func (b *challengeBuilder) grid() {
	const (
		cols   = 2
		cellW  = 80.0
		cellH  = 100.0
		startX = 40.0
	)
	rows := len(b.blueprints) / cols
	startY := b.board.FloorY() - float64(rows)*cellH
	for r := range rows {
		for c := range cols {
			b.propose(startX+float64(c)*cellW, startY+float64(r)*cellH)
		}
	}
}

// pyramid places a base of three, a layer of two, and stacks the remainder
// at the apex.
func (b *challengeBuilder) pyramid() {
	const (
		size   = 80.0
		startX = 20.0
	)
	floorY := b.board.FloorY()
	for i := range 3 {
		b.propose(startX+float64(i)*size, floorY-size)
	}
	for i := range 2 {
		b.propose(startX+size/2+float64(i)*size, floorY-size*2)
	}
	for b.remaining() {
		b.propose(startX+size, floorY-size*float64(3+(b.next-5)))
	}
}

// towers builds two side-by-side stacks from the floor up.
func (b *challengeBuilder) towers() {
	const (
		startX   = 40.0
		spacing  = 120.0
		numTower = 2
	)
	perTower := len(b.blueprints) / numTower
	for t := range numTower {
		y := b.board.FloorY()
		for range perTower {
			y -= b.nextSize()
			b.propose(startX+float64(t)*spacing, y)
		}
	}
}

// staircase offsets each shape right and up from the previous one.
func (b *challengeBuilder) staircase() {
	const (
		startX    = 20.0
		stepWidth = 45.0
		stepRise  = 20.0
	)
	floorY := b.board.FloorY()
	for i := range len(b.blueprints) {
		b.propose(startX+float64(i)*stepWidth, floorY-b.nextSize()-float64(i)*stepRise)
	}
}
