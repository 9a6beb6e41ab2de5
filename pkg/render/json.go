package render

import (
	"encoding/json"

	"github.com/matzehuels/balancecoach/pkg/composition"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	guides   composition.GuideMode
	override bool
}

// WithJSONGuides resolves guide lines for g instead of the snapshot's mode.
func WithJSONGuides(g composition.GuideMode) JSONOption {
	return func(r *jsonRenderer) { r.guides, r.override = g, true }
}

type jsonOutput struct {
	Width     float64                    `json:"width"`
	Height    float64                    `json:"height"`
	Fulcrum   float64                    `json:"fulcrum"`
	FloorY    float64                    `json:"floor_y"`
	Mode      composition.Mode           `json:"mode"`
	Guides    *jsonGuides                `json:"guides,omitempty"`
	Shapes    []jsonShape                `json:"shapes"`
	Beam      jsonBeam                   `json:"beam"`
	Challenge *composition.ChallengeInfo `json:"challenge,omitempty"`
}

type jsonGuides struct {
	Mode composition.GuideMode `json:"mode"`
	X    []float64             `json:"x,omitempty"`
	Y    []float64             `json:"y,omitempty"`
}

type jsonShape struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Color      string  `json:"color"`
	Saturation float64 `json:"saturation"`
	Weight     float64 `json:"weight"`
	Side       string  `json:"side"`
	Mirror     string  `json:"mirror,omitempty"`
	Challenge  bool    `json:"challenge,omitempty"`
	Selected   bool    `json:"selected,omitempty"`
}

type jsonBeam struct {
	Angle  float64            `json:"angle"`
	Tilt   float64            `json:"tilt"`
	Left   float64            `json:"left_moment"`
	Right  float64            `json:"right_moment"`
	Status composition.Status `json:"status"`
}

// RenderJSON exports the drawing data of snap as a pretty-printed JSON
// document. Shape sides follow the torque rule: a center exactly on the
// fulcrum is reported as "right".
func RenderJSON(snap composition.Snapshot, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.override {
		r.guides = snap.Guides
	}

	b := snap.Board
	if b == (composition.Board{}) {
		b = composition.DefaultBoard()
	}

	out := jsonOutput{
		Width:     b.Width,
		Height:    b.Height,
		Fulcrum:   b.Fulcrum(),
		FloorY:    b.FloorY(),
		Mode:      snap.Mode,
		Shapes:    buildJSONShapes(snap, b.Fulcrum()),
		Challenge: snap.Challenge,
		Beam: jsonBeam{
			Angle:  snap.Balance.VisualTilt,
			Tilt:   snap.Balance.Tilt,
			Left:   snap.Balance.Moments.Left,
			Right:  snap.Balance.Moments.Right,
			Status: snap.Balance.Status,
		},
	}
	if r.guides != "" && r.guides != composition.GuidesNone {
		xs, ys := r.guides.Lines(b.Width, b.FloorY())
		out.Guides = &jsonGuides{Mode: r.guides, X: xs, Y: ys}
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONShapes(snap composition.Snapshot, fulcrum float64) []jsonShape {
	shapes := make([]jsonShape, 0, len(snap.Shapes))
	for _, s := range snap.Shapes {
		side := "right"
		if s.Rect().CenterX() < fulcrum {
			side = "left"
		}
		shapes = append(shapes, jsonShape{
			ID:         s.ID,
			Kind:       string(s.Kind),
			X:          s.X,
			Y:          s.Y,
			Width:      s.Width,
			Height:     s.Height,
			Color:      s.Color,
			Saturation: s.Saturation,
			Weight:     s.Weight,
			Side:       side,
			Mirror:     s.MirrorID,
			Challenge:  s.Challenge,
			Selected:   s.ID == snap.Selected,
		})
	}
	return shapes
}
