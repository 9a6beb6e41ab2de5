package composition

import "math"

// GridUnit is the snapping step for positions and sizes.
const GridUnit = 20.0

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
// Y grows downward.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Straddles reports whether the vertical line at x passes through the
// interior of r. A rectangle whose edge lies on x does not straddle it.
func (r Rect) Straddles(x float64) bool {
	return r.X < x && r.Right() > x
}

// Mirror reflects r about the vertical centerline of a board of the given width.
func (r Rect) Mirror(boardWidth float64) Rect {
	return Rect{X: boardWidth - r.X - r.W, Y: r.Y, W: r.W, H: r.H}
}

// Snap rounds v to the nearest multiple of [GridUnit]. Halves round up,
// so Snap(-10) is 0 and Snap(10) is 20.
func Snap(v float64) float64 {
	return math.Floor(v/GridUnit+0.5) * GridUnit
}

// Overlaps reports whether a and b share interior area. Rectangles that only
// touch along an edge or at a corner do not overlap.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
