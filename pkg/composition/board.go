package composition

import "github.com/matzehuels/balancecoach/pkg/errors"

// Default board geometry.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	FloorHeight   = 140.0
)

// Board is the canvas shapes are placed on. The floor band along the bottom
// edge is off limits, and the fulcrum sits at Width/2.
type Board struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Floor  float64 `json:"floor"`
}

// DefaultBoard returns an 800x600 board with the standard floor band.
func DefaultBoard() Board {
	return Board{Width: DefaultWidth, Height: DefaultHeight, Floor: FloorHeight}
}

// NewBoard validates the dimensions and returns a Board.
func NewBoard(width, height, floor float64) (Board, error) {
	if err := errors.ValidateBoard(width, height, floor, GridUnit); err != nil {
		return Board{}, err
	}
	return Board{Width: width, Height: height, Floor: floor}, nil
}

// Fulcrum returns the x-coordinate of the board's vertical centerline.
func (b Board) Fulcrum() float64 { return b.Width / 2 }

// FloorY returns the y-coordinate of the top of the floor band.
func (b Board) FloorY() float64 { return b.Height - b.Floor }

// Contains reports whether r lies fully inside the board and above the floor.
func (b Board) Contains(r Rect) bool {
	return r.X >= 0 && r.Right() <= b.Width &&
		r.Y >= 0 && r.Bottom() <= b.FloorY()
}

// Allows reports whether r is a legal footprint: inside the board, above
// the floor and not straddling the fulcrum.
func (b Board) Allows(r Rect) bool {
	return b.Contains(r) && !r.Straddles(b.Fulcrum())
}

// Mirror reflects r about the fulcrum.
func (b Board) Mirror(r Rect) Rect { return r.Mirror(b.Width) }
