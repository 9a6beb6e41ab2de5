package composition

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/balancecoach/pkg/errors"
	"github.com/matzehuels/balancecoach/pkg/observability"
)

// Control panel defaults and limits for manually added shapes.
const (
	DefaultSize  = 100.0
	DefaultShade = 1
	MinSize      = 80.0
	MaxSize      = 200.0
)

// ErrChallengeActive is returned when the mode is changed during a challenge.
var ErrChallengeActive = errors.New(errors.ErrCodeChallengeMode, "mode cannot change during a challenge")

// ChallengeInfo describes the challenge currently on the board.
type ChallengeInfo struct {
	Pattern Pattern `json:"pattern"`
	Target  int     `json:"target"`
}

// ShapeUpdate is a partial set of shape attributes. Nil fields are left
// unchanged.
type ShapeUpdate struct {
	X, Y          *float64
	Width, Height *float64
	Shade         *int
	Weight        *float64
	Saturation    *float64
}

// mirrored returns the subset of u that a mirror twin must share: size and
// shade-derived attributes, never position.
func (u ShapeUpdate) mirrored() ShapeUpdate {
	return ShapeUpdate{
		Width:      u.Width,
		Height:     u.Height,
		Shade:      u.Shade,
		Weight:     u.Weight,
		Saturation: u.Saturation,
	}
}

func (u ShapeUpdate) applyTo(s Shape) Shape {
	if u.X != nil {
		s.X = *u.X
	}
	if u.Y != nil {
		s.Y = *u.Y
	}
	if u.Width != nil {
		s.Width = *u.Width
	}
	if u.Height != nil {
		s.Height = *u.Height
	}
	if u.Shade != nil {
		s.Shade = *u.Shade
	}
	if u.Weight != nil {
		s.Weight = *u.Weight
	}
	if u.Saturation != nil {
		s.Saturation = *u.Saturation
	}
	return s
}

func ptr[T any](v T) *T { return &v }

// =============================================================================
// Engine
// =============================================================================

// Engine owns a board and the shapes on it. Every change to the shape set
// goes through its methods, which keep the board invariants intact.
type Engine struct {
	board     Board
	mode      Mode
	shapes    []Shape
	rng       *rand.Rand
	planner   *Planner
	selected  string
	size      float64
	shade     int
	guides    GuideMode
	challenge *ChallengeInfo
	drag      *Drag
}

type engineOptions struct {
	rng   *rand.Rand
	newID IDFunc
	mode  Mode
}

// Option configures an Engine.
type Option func(*engineOptions)

// WithSeed seeds the engine's random source so placement and challenge
// generation are reproducible.
func WithSeed(seed uint64) Option {
	return func(o *engineOptions) { o.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef)) }
}

// WithRand sets the engine's random source.
func WithRand(rng *rand.Rand) Option { return func(o *engineOptions) { o.rng = rng } }

// WithIDFunc sets the identity generator for new shapes.
func WithIDFunc(fn IDFunc) Option { return func(o *engineOptions) { o.newID = fn } }

// WithMode sets the initial mode (asymmetrical by default).
func WithMode(m Mode) Option { return func(o *engineOptions) { o.mode = m } }

// New returns an empty engine for board.
func New(board Board, opts ...Option) *Engine {
	o := engineOptions{mode: ModeAsymmetrical}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{
		board:   board,
		mode:    o.mode,
		rng:     o.rng,
		planner: NewPlanner(o.rng, o.newID),
		size:    DefaultSize,
		shade:   DefaultShade,
		guides:  GuidesNone,
	}
}

// =============================================================================
// Queries
// =============================================================================

// Board returns the board geometry.
func (e *Engine) Board() Board { return e.board }

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// Shapes returns a copy of the shape set in placement order.
func (e *Engine) Shapes() []Shape { return slices.Clone(e.shapes) }

// Len returns the number of shapes on the board.
func (e *Engine) Len() int { return len(e.shapes) }

// Shape looks up a shape by ID.
func (e *Engine) Shape(id string) (Shape, bool) {
	if i := e.index(id); i >= 0 {
		return e.shapes[i], true
	}
	return Shape{}, false
}

// ShapeAt returns the topmost shape containing the point (x, y). Shapes are
// drawn in placement order, so later shapes are on top.
func (e *Engine) ShapeAt(x, y float64) (Shape, bool) {
	for i := len(e.shapes) - 1; i >= 0; i-- {
		r := e.shapes[i].Rect()
		if x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom() {
			return e.shapes[i], true
		}
	}
	return Shape{}, false
}

// Balance returns the current balance reading.
func (e *Engine) Balance() Balance {
	return Measure(e.shapes, e.board.Fulcrum())
}

// Guides returns the active guide overlay.
func (e *Engine) Guides() GuideMode { return e.guides }

// CycleGuides advances the guide overlay and returns the new mode.
func (e *Engine) CycleGuides() GuideMode {
	e.guides = e.guides.Next()
	return e.guides
}

// Challenge returns the active challenge, if any.
func (e *Engine) Challenge() (ChallengeInfo, bool) {
	if e.challenge == nil {
		return ChallengeInfo{}, false
	}
	return *e.challenge, true
}

// InChallenge reports whether a challenge is on the board.
func (e *Engine) InChallenge() bool { return e.challenge != nil }

func (e *Engine) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(e.shapes, func(s Shape) bool { return s.ID == id })
}

// twin returns the mirror partner of s, if it is still on the board.
func (e *Engine) twin(s Shape) (Shape, bool) {
	if s.MirrorID == "" {
		return Shape{}, false
	}
	return e.Shape(s.MirrorID)
}

// =============================================================================
// Selection & Control Panel
// =============================================================================

// Selected returns the selected shape, if any.
func (e *Engine) Selected() (Shape, bool) { return e.Shape(e.selected) }

// Select marks the shape as selected and loads its size and shade into the
// control panel. An unknown id clears the selection and returns false.
func (e *Engine) Select(id string) bool {
	s, ok := e.Shape(id)
	if !ok {
		e.selected = ""
		return false
	}
	e.selected = id
	e.size = s.Size()
	e.shade = s.Shade
	return true
}

// ClearSelection deselects any shape.
func (e *Engine) ClearSelection() { e.selected = "" }

// ControlSize returns the size used for new shapes.
func (e *Engine) ControlSize() float64 { return e.size }

// ControlShade returns the shade used for new shapes.
func (e *Engine) ControlShade() int { return e.shade }

// SetControlSize sets the size used for new shapes and, when an editable
// shape is selected and size is on the grid, resizes it. It reports whether
// a shape was resized.
func (e *Engine) SetControlSize(size float64) bool {
	e.size = size
	s, ok := e.Selected()
	if !ok || s.Challenge {
		return false
	}
	return e.Resize(s.ID, size)
}

// SetControlShade sets the shade used for new shapes and applies it to the
// selected shape. It reports whether a shape was changed.
func (e *Engine) SetControlShade(shade int) bool {
	if errors.ValidateShade(shade) != nil {
		return false
	}
	e.shade = shade
	s, ok := e.Selected()
	if !ok || s.Challenge {
		return false
	}
	return e.SetShade(s.ID, shade)
}

// =============================================================================
// Board Lifecycle
// =============================================================================

// Reset clears the board, ends any challenge and returns to asymmetrical mode.
func (e *Engine) Reset() {
	e.EndDrag()
	e.shapes = nil
	e.selected = ""
	e.challenge = nil
	e.mode = ModeAsymmetrical
}

// SetMode switches between asymmetrical and symmetrical mode. Switching
// clears the board. The mode cannot change during a challenge.
func (e *Engine) SetMode(m Mode) error {
	m, err := ParseMode(string(m))
	if err != nil {
		return err
	}
	if e.challenge != nil {
		return ErrChallengeActive
	}
	e.Reset()
	e.mode = m
	return nil
}

// StartChallenge replaces the board with a freshly generated challenge. It
// doubles as "next challenge" when one is already active. The mode is
// forced to asymmetrical.
func (e *Engine) StartChallenge() Challenge {
	e.Reset()
	c := GenerateChallenge(e.rng, e.board)
	e.shapes = slices.Clone(c.Shapes)
	e.challenge = &ChallengeInfo{Pattern: c.Pattern, Target: c.Target}
	observability.Engine().OnChallenge(string(c.Pattern), c.Target, len(c.Shapes))
	return c
}

// =============================================================================
// Placement
// =============================================================================

// Add places a shape of the given kind using the control panel size and shade.
func (e *Engine) Add(kind Kind) (Shape, error) {
	return e.AddShape(kind, e.size, e.shade)
}

// AddShape places a new shape at a random free position. In symmetrical
// mode (outside challenges) its mirror twin is placed as well. The new shape
// becomes the selection. [ErrNoSpace] is returned when no position is found.
func (e *Engine) AddShape(kind Kind, size float64, shade int) (Shape, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Shape{}, err
	}
	if err := errors.ValidateShade(shade); err != nil {
		return Shape{}, err
	}
	if err := errors.ValidateGridSize(size, GridUnit, 0, 0); err != nil {
		return Shape{}, err
	}

	mirror := e.mode == ModeSymmetrical && e.challenge == nil
	p, err := e.planner.Place(e.board, e.shapes, kind, size, shade, mirror)
	if err != nil {
		observability.Engine().OnPlacementFailed(string(kind), p.Attempts)
		return Shape{}, err
	}

	e.shapes = append(e.shapes, p.Shapes...)
	e.selected = p.Shapes[0].ID
	observability.Engine().OnPlace(string(kind), len(p.Shapes), p.Attempts)
	return p.Shapes[0], nil
}

// =============================================================================
// Mutation
// =============================================================================

// Update applies a partial update to a shape. If the shape has a mirror
// twin, the twin receives the size and shade attributes of the update but
// never its position. Update does not validate geometry; the dedicated
// flows ([Engine.Move], [Engine.Rotate], [Engine.Resize]) do. Unknown and
// challenge shapes are left alone and false is returned.
func (e *Engine) Update(id string, u ShapeUpdate) bool {
	s, ok := e.Shape(id)
	if !ok || s.Challenge {
		return false
	}
	e.apply(s, u)
	return true
}

// apply writes u to the stored copy of s and the mirrored subset to its twin.
func (e *Engine) apply(s Shape, u ShapeUpdate) {
	i := e.index(s.ID)
	e.shapes[i] = u.applyTo(e.shapes[i])
	if t, ok := e.twin(s); ok {
		j := e.index(t.ID)
		e.shapes[j] = u.mirrored().applyTo(e.shapes[j])
	}
}

// Delete removes a shape together with its mirror twin. Challenge and
// unknown shapes are not removed.
func (e *Engine) Delete(id string) bool {
	s, ok := e.Shape(id)
	if !ok || s.Challenge {
		return false
	}
	ids := []string{s.ID}
	if s.MirrorID != "" {
		ids = append(ids, s.MirrorID)
	}
	e.shapes = slices.DeleteFunc(e.shapes, func(x Shape) bool { return slices.Contains(ids, x.ID) })
	if slices.Contains(ids, e.selected) {
		e.selected = ""
	}
	if e.drag != nil && slices.Contains(ids, e.drag.id) {
		e.EndDrag()
	}
	return true
}

// SetShade changes the shade of a shape and its twin, recomputing weight
// and saturation.
func (e *Engine) SetShade(id string, shade int) bool {
	s, ok := e.Shape(id)
	if !ok || s.Challenge || errors.ValidateShade(shade) != nil {
		return false
	}
	e.apply(s, ShapeUpdate{
		Shade:      ptr(shade),
		Weight:     ptr(Weight(s.Width, s.Height, shade)),
		Saturation: ptr(Saturation(shade)),
	})
	return true
}

// Rotate turns a rectangle by 90 degrees about its center. The new footprint
// is snapped to the grid and must satisfy every placement constraint, as
// must the twin's reflected footprint; otherwise nothing changes and false
// is returned.
func (e *Engine) Rotate(id string) bool {
	s, ok := e.Shape(id)
	if !ok || s.Challenge || s.Kind != KindRectangle {
		return false
	}
	return e.reshape("rotate", s, recenter(s.Rect(), s.Height, s.Width))
}

// Resize sets the long side of a shape to size, keeping its center and
// orientation. size must be a positive multiple of [GridUnit]. An invalid
// result leaves the shape unchanged and returns false.
func (e *Engine) Resize(id string, size float64) bool {
	s, ok := e.Shape(id)
	if !ok || s.Challenge || errors.ValidateGridSize(size, GridUnit, 0, 0) != nil {
		return false
	}
	w, h := s.Kind.Dimensions(size)
	if s.Rotated() {
		w, h = h, w
	}
	if w == s.Width && h == s.Height {
		return false
	}
	return e.reshape("resize", s, recenter(s.Rect(), w, h))
}

// Move drags a shape so its top-left corner is as close to (x, y) as the
// board allows: the target is clamped to the board, snapped, and pushed off
// the fulcrum toward the side its center is on. The move is committed only
// if the new footprint (and the twin's reflection) is free.
func (e *Engine) Move(id string, x, y float64) bool {
	s, ok := e.Shape(id)
	if !ok || s.Challenge {
		return false
	}

	maxX := e.board.Width - s.Width
	maxY := e.board.FloorY() - s.Height
	r := Rect{
		X: snapWithin(clamp(x, 0, maxX), maxX),
		Y: snapWithin(clamp(y, 0, maxY), maxY),
		W: s.Width,
		H: s.Height,
	}
	if f := e.board.Fulcrum(); r.Straddles(f) {
		if r.CenterX() < f {
			r.X = f - r.W
		} else {
			r.X = f
		}
	}
	if r.X == s.X && r.Y == s.Y {
		return false
	}
	return e.reshape("move", s, r)
}

// reshape validates r as the new footprint of s, and its reflection as the
// footprint of s's twin, then commits both. Weight follows the new area.
func (e *Engine) reshape(op string, s Shape, r Rect) bool {
	exclude := []string{s.ID}
	t, hasTwin := e.twin(s)
	if hasTwin {
		exclude = append(exclude, t.ID)
	}

	if !fits(e.board, e.shapes, r, exclude...) {
		observability.Engine().OnRejected(op, s.ID)
		return false
	}
	tr := e.board.Mirror(r)
	if hasTwin && !fits(e.board, e.shapes, tr, exclude...) {
		observability.Engine().OnRejected(op, s.ID)
		return false
	}

	e.apply(s, ShapeUpdate{
		X:      ptr(r.X),
		Y:      ptr(r.Y),
		Width:  ptr(r.W),
		Height: ptr(r.H),
		Weight: ptr(Weight(r.W, r.H, s.Shade)),
	})
	if hasTwin {
		e.apply(t, ShapeUpdate{X: ptr(tr.X), Y: ptr(tr.Y)})
	}
	return true
}

// recenter returns a w x h rectangle centered on r's center, snapped to the grid.
func recenter(r Rect, w, h float64) Rect {
	return Rect{
		X: Snap(r.CenterX() - w/2),
		Y: Snap(r.CenterY() - h/2),
		W: w,
		H: h,
	}
}

// snapWithin snaps v to the grid without exceeding hi.
func snapWithin(v, hi float64) float64 {
	if s := Snap(v); s <= hi {
		return s
	}
	return max(0, Snap(v)-GridUnit)
}
