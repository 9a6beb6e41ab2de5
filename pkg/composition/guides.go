package composition

// GuideMode selects the composition guides overlaid on the board. Guides
// are drawn only; they never affect placement or balance.
type GuideMode string

const (
	GuidesNone    GuideMode = "none"
	GuidesThirds  GuideMode = "thirds"
	GuidesColumns GuideMode = "columns"
)

// Next returns the mode that follows g in the none, thirds, columns cycle.
func (g GuideMode) Next() GuideMode {
	switch g {
	case GuidesNone, "":
		return GuidesThirds
	case GuidesThirds:
		return GuidesColumns
	default:
		return GuidesNone
	}
}

// Label returns the toggle button caption for the mode.
func (g GuideMode) Label() string {
	switch g {
	case GuidesThirds:
		return "Rule of Thirds"
	case GuidesColumns:
		return "Columns"
	default:
		return "Show Guides"
	}
}

// GuideColumns is the number of columns drawn in [GuidesColumns] mode.
const GuideColumns = 4

// Lines returns the x-coordinates of the vertical guide lines and the
// y-coordinates of the horizontal ones for an area of the given size.
// Callers pass the board height above the floor band.
func (g GuideMode) Lines(width, height float64) (xs, ys []float64) {
	switch g {
	case GuidesThirds:
		return []float64{width / 3, 2 * width / 3}, []float64{height / 3, 2 * height / 3}
	case GuidesColumns:
		for i := 1; i < GuideColumns; i++ {
			xs = append(xs, width*float64(i)/GuideColumns)
		}
		return xs, nil
	}
	return nil, nil
}
