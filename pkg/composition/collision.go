package composition

import "slices"

// HasCollision reports whether candidate overlaps any shape in shapes,
// ignoring shapes whose ID is listed in exclude. A linear scan is plenty
// for boards holding tens of shapes.
func HasCollision(shapes []Shape, candidate Rect, exclude ...string) bool {
	for _, s := range shapes {
		if slices.Contains(exclude, s.ID) {
			continue
		}
		if Overlaps(candidate, s.Rect()) {
			return true
		}
	}
	return false
}

// fits reports whether r is a legal, collision-free footprint on board.
func fits(board Board, shapes []Shape, r Rect, exclude ...string) bool {
	return board.Allows(r) && !HasCollision(shapes, r, exclude...)
}
