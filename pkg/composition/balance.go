package composition

import "math"

// Balance constants.
const (
	// TiltScale maps a torque difference onto a beam angle in degrees.
	TiltScale = 8000.0

	// MaxVisualTilt clamps the drawn beam angle.
	MaxVisualTilt = 25.0

	// BalancedThreshold is the tilt magnitude below which the board counts
	// as balanced.
	BalancedThreshold = 0.5
)

// Status is the human-readable state of the balance beam.
type Status string

const (
	StatusBalanced    Status = "Balanced"
	StatusTippedLeft  Status = "Tipped Left"
	StatusTippedRight Status = "Tipped Right"
)

// Moments holds the summed torque on each side of the fulcrum.
type Moments struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// ComputeMoments sums weight times horizontal distance from fulcrumX for
// every shape. A shape whose center lies exactly on the fulcrum counts
// toward the right side (with zero torque).
func ComputeMoments(shapes []Shape, fulcrumX float64) Moments {
	var m Moments
	for _, s := range shapes {
		cx := s.Rect().CenterX()
		moment := s.Weight * math.Abs(cx-fulcrumX)
		if cx < fulcrumX {
			m.Left += moment
		} else {
			m.Right += moment
		}
	}
	return m
}

// Tilt returns the beam angle in degrees. Positive values tip right.
func (m Moments) Tilt() float64 {
	return (m.Right - m.Left) / TiltScale
}

// VisualTilt clamps a tilt angle to the range the beam is drawn in.
func VisualTilt(tilt float64) float64 {
	return clamp(tilt, -MaxVisualTilt, MaxVisualTilt)
}

// StatusOf classifies a tilt angle.
func StatusOf(tilt float64) Status {
	switch {
	case math.Abs(tilt) < BalancedThreshold:
		return StatusBalanced
	case tilt > 0:
		return StatusTippedRight
	default:
		return StatusTippedLeft
	}
}

// Balance is the full balance reading of a shape set.
type Balance struct {
	Moments    Moments `json:"moments"`
	Tilt       float64 `json:"tilt"`
	VisualTilt float64 `json:"visual_tilt"`
	Status     Status  `json:"status"`
}

// Balanced reports whether the beam is level.
func (b Balance) Balanced() bool { return b.Status == StatusBalanced }

// Measure computes the balance reading of shapes about fulcrumX.
func Measure(shapes []Shape, fulcrumX float64) Balance {
	m := ComputeMoments(shapes, fulcrumX)
	tilt := m.Tilt()
	return Balance{
		Moments:    m,
		Tilt:       tilt,
		VisualTilt: VisualTilt(tilt),
		Status:     StatusOf(tilt),
	}
}
