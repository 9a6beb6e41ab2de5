package composition

import (
	"fmt"
	"strings"

	"github.com/matzehuels/balancecoach/pkg/errors"
)

// Kind is the silhouette of a shape.
type Kind string

const (
	// KindSquare has equal width and height.
	KindSquare Kind = "square"
	// KindRectangle is half as wide as it is tall until rotated.
	KindRectangle Kind = "rectangle"
)

// Kinds lists the supported shape kinds.
var Kinds = []Kind{KindSquare, KindRectangle}

// ParseKind converts a user-supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindSquare:
		return KindSquare, nil
	case KindRectangle:
		return KindRectangle, nil
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "unknown shape kind %q (want square or rectangle)", s)
}

// Dimensions returns the upright width and height for a shape of this kind
// whose long side is size.
func (k Kind) Dimensions(size float64) (width, height float64) {
	if k == KindRectangle {
		return size / 2, size
	}
	return size, size
}

// Color returns the fixed display color of the kind.
func (k Kind) Color() string {
	if k == KindRectangle {
		return "#dc2626"
	}
	return "#3b82f6"
}

// Mode selects whether new shapes are mirrored about the fulcrum.
type Mode string

const (
	ModeAsymmetrical Mode = "asymmetrical"
	ModeSymmetrical  Mode = "symmetrical"
)

// ParseMode converts a user-supplied string into a Mode. The short forms
// "asym" and "sym" are accepted.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asymmetrical", "asym":
		return ModeAsymmetrical, nil
	case "symmetrical", "sym":
		return ModeSymmetrical, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "unknown mode %q (want asymmetrical or symmetrical)", s)
}

// =============================================================================
// Shade Tables
// =============================================================================

var (
	shadeWeightMultipliers = [...]float64{1.0, 1.25, 1.5, 1.75, 2.0}
	shadeSaturations       = [...]float64{0.3, 0.475, 0.65, 0.825, 1.0}
	shadeNames             = [...]string{"Lightest", "Light", "Medium", "Dark", "Darkest"}
)

// shadeIndex maps a shade level onto the lookup tables, clamping stray
// values to the nearest valid level.
func shadeIndex(shade int) int {
	return max(0, min(shade-1, len(shadeWeightMultipliers)-1))
}

// Weight returns the visual weight of a width x height shape at the given shade.
func Weight(width, height float64, shade int) float64 {
	return (height * width / 100) * shadeWeightMultipliers[shadeIndex(shade)]
}

// Saturation returns the display saturation for a shade level.
func Saturation(shade int) float64 {
	return shadeSaturations[shadeIndex(shade)]
}

// ShadeName returns the human-readable label of a shade level.
func ShadeName(shade int) string {
	return shadeNames[shadeIndex(shade)]
}

// =============================================================================
// Shape
// =============================================================================

// Shape is a single placed rectangle on the board.
type Shape struct {
	ID         string  `json:"id"`
	Kind       Kind    `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Shade      int     `json:"shade"`
	Weight     float64 `json:"weight"`
	Saturation float64 `json:"saturation"`
	Color      string  `json:"color"`
	MirrorID   string  `json:"mirror_id,omitempty"`
	Challenge  bool    `json:"challenge,omitempty"`
}

// NewShape builds an upright shape of the given kind with its derived
// weight, saturation and color filled in.
func NewShape(id string, kind Kind, x, y, size float64, shade int) Shape {
	w, h := kind.Dimensions(size)
	return Shape{
		ID:         id,
		Kind:       kind,
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		Shade:      shade,
		Weight:     Weight(w, h, shade),
		Saturation: Saturation(shade),
		Color:      kind.Color(),
	}
}

// Rect returns the footprint of the shape.
func (s Shape) Rect() Rect {
	return Rect{X: s.X, Y: s.Y, W: s.Width, H: s.Height}
}

// Size returns the long side of the shape, which is what the size control
// adjusts.
func (s Shape) Size() float64 {
	return max(s.Width, s.Height)
}

// Rotated reports whether a rectangle lies on its long side.
func (s Shape) Rotated() bool {
	return s.Kind == KindRectangle && s.Width > s.Height
}

// Mirrored reports whether the shape has a mirror twin.
func (s Shape) Mirrored() bool { return s.MirrorID != "" }

// String implements fmt.Stringer.
func (s Shape) String() string {
	return fmt.Sprintf("%s %s %vx%v @ (%v,%v) shade=%d", s.ID, s.Kind, s.Width, s.Height, s.X, s.Y, s.Shade)
}

// withShade returns s with shade-derived attributes recomputed.
func (s Shape) withShade(shade int) Shape {
	s.Shade = shade
	s.Weight = Weight(s.Width, s.Height, shade)
	s.Saturation = Saturation(shade)
	return s
}
