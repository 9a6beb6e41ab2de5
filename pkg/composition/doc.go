// Package composition implements the balance board engine: shapes placed on
// a board split by a central fulcrum, and the torque that decides which way
// the board tips.
//
// # Overview
//
// A [Board] is a fixed rectangle with a floor band along its bottom edge.
// Its vertical centerline is the fulcrum. Shapes are axis-aligned rectangles
// that must stay inside the board, above the floor, off each other, and
// entirely on one side of the fulcrum.
//
// Each [Shape] carries a discrete shade level (1..5) from which its weight
// and saturation are derived:
//
//	weight     = (height * width / 100) * [1.0, 1.25, 1.5, 1.75, 2.0][shade-1]
//	saturation = [0.3, 0.475, 0.65, 0.825, 1.0][shade-1]
//
// # Engine
//
// [Engine] owns the live shape set and is the only way to change it:
//
//	e := composition.New(composition.DefaultBoard(), composition.WithSeed(42))
//	s, err := e.AddShape(composition.KindSquare, 100, 3)
//	if errors.Is(err, composition.ErrNoSpace) {
//	    // board is too crowded
//	}
//	e.Rotate(s.ID)
//	fmt.Println(e.Balance().Status)
//
// Edits that would break a board invariant are dropped: [Engine.Rotate],
// [Engine.Resize] and [Engine.Move] return false and leave the shape as it
// was.
//
// # Symmetry
//
// In [ModeSymmetrical] every placed shape gets a mirror twin reflected about
// the fulcrum. The two records reference each other through MirrorID. Size
// and shade edits propagate to the twin; positions are recomputed as the
// reflection so that a.X + b.X + a.Width always equals the board width.
//
// # Challenges
//
// [GenerateChallenge] fills the left half of the board with 6 or 8 shapes of
// distinct sizes arranged in one of four structural patterns. Challenge
// shapes cannot be edited; the student counterbalances them from the right.
//
// # Balance
//
// [ComputeMoments] sums weight times horizontal distance from the fulcrum on
// each side. The tilt angle is (right-left)/8000 degrees; |tilt| < 0.5 is
// "Balanced".
//
// The engine is not safe for concurrent use.
package composition
