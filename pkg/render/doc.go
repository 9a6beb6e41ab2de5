// Package render draws composition snapshots.
//
// # Sinks
//
// A sink turns a [composition.Snapshot] into an output document:
//
//   - [RenderSVG]: the board as a standalone SVG image
//   - [RenderJSON]: resolved drawing data for external renderers
//
// # SVG Output
//
// The SVG shows the artboard with its optional composition guides, the
// fulcrum line, the floor band, every shape, and the balance beam tilted by
// the snapshot's visual tilt together with the status label. Shade is
// expressed as a saturate filter on the shape's fixed kind color, challenge
// shapes get a dashed outline and the selected shape a solid white one.
//
//	svg := render.RenderSVG(engine.Snapshot(), render.WithGuides(composition.GuidesThirds))
//
// # JSON Output
//
// [RenderJSON] differs from the composition file format in pkg/io: it
// carries derived drawing data (guide line positions, beam angle, floor
// line) so consumers do not need to reimplement the balance rules.
package render
