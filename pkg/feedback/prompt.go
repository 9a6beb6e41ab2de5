package feedback

import (
	"fmt"
	"strings"

	"github.com/matzehuels/balancecoach/pkg/composition"
)

// SystemPrompt sets the coaching persona.
const SystemPrompt = "You are a helpful and objective art coach for 6th grade students."

// Request is everything the coach needs to know about a board.
type Request struct {
	Shapes  []composition.Shape
	Tilt    float64
	Mode    composition.Mode
	Fulcrum float64
}

// RequestFromSnapshot builds a request from an engine snapshot.
func RequestFromSnapshot(s composition.Snapshot) Request {
	board := s.Board
	if board == (composition.Board{}) {
		board = composition.DefaultBoard()
	}
	return Request{
		Shapes:  s.Shapes,
		Tilt:    s.Balance.Tilt,
		Mode:    s.Mode,
		Fulcrum: board.Fulcrum(),
	}
}

// Side names the half of the board a shape's center lies on.
func Side(s composition.Shape, fulcrum float64) string {
	if s.Rect().CenterX() < fulcrum {
		return "Left side"
	}
	return "Right side"
}

// BuildPrompt renders the user prompt for r.
func BuildPrompt(r Request) string {
	var left, right int
	var shapes strings.Builder
	for _, s := range r.Shapes {
		side := Side(s, r.Fulcrum)
		if side == "Left side" {
			left++
		} else {
			right++
		}
		fmt.Fprintf(&shapes, "- A %s on the %s (Size: %vx%v, Shade Level: %d)\n", s.Kind, side, s.Height, s.Width, s.Shade)
	}

	mode := r.Mode
	if mode == "" {
		mode = composition.ModeAsymmetrical
	}

	var b strings.Builder
	b.WriteString("Analyze the following graphic design composition created by a student in the \"Visual Balance Coach\" app.\n\n")
	b.WriteString("Context:\n")
	b.WriteString("- The goal is to create a visually balanced composition using shapes.\n")
	fmt.Fprintf(&b, "- The current mode is: %s.\n", mode)
	fmt.Fprintf(&b, "- The mechanical balance beam status is: %s (Tilt Angle: %.1f degrees).\n", composition.StatusOf(r.Tilt), r.Tilt)
	fmt.Fprintf(&b, "- Total Shapes: %d (%d on left, %d on right).\n\n", len(r.Shapes), left, right)
	b.WriteString("Shape Details:\n")
	b.WriteString(shapes.String())
	b.WriteString(`
Instructions:
1. Confirm if the composition is balanced mechanically.
2. Discuss the visual weight distribution (size/color darkness).
3. Comment on the use of symmetry vs asymmetry.
4. Provide one clear strength and one specific, constructive tip for improvement.
5. Tone: Friendly and professional, but not overly excited. Avoid excessive exclamation marks. Use a coaching voice, not a cheerleader voice.
6. Keep it under 150 words.
`)
	return b.String()
}
