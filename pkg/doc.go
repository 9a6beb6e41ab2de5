// Package pkg holds the libraries behind balancecoach, a practice board for
// visual balance in composition.
//
// # Overview
//
// Shapes sit on a board above a floor band. A beam pivots on a fulcrum at
// the board's horizontal center and tips toward the side with the larger
// visual moment (weight times distance from the fulcrum). The packages are
// organized as:
//
//  1. [composition] - the board engine: placement, editing, mirroring,
//     challenges and balance
//  2. [render] - SVG pictures and JSON drawing data of a board
//  3. [feedback] - coaching text from a language model, with caching
//  4. [session] - concurrent board sessions for the HTTP API
//  5. [io], [config], [cache], [errors], [httputil], [observability] and
//     [buildinfo] - supporting infrastructure
//
// # Data Flow
//
//	composition.Engine (edits, drags, challenges)
//	         ↓
//	composition.Snapshot (shapes + balance)
//	         ↓
//	render (SVG/JSON)   feedback (coaching text)   io (composition files)
//
// # Quick Start
//
//	e := composition.New(composition.DefaultBoard())
//	if _, err := e.AddShape(composition.KindSquare, 100, 3); err != nil {
//	    return err
//	}
//	fmt.Println(e.Balance().Status)
//	svg := render.RenderSVG(e.Snapshot())
//
// [composition]: github.com/matzehuels/balancecoach/pkg/composition
// [render]: github.com/matzehuels/balancecoach/pkg/render
// [feedback]: github.com/matzehuels/balancecoach/pkg/feedback
// [session]: github.com/matzehuels/balancecoach/pkg/session
// [io]: github.com/matzehuels/balancecoach/pkg/io
// [config]: github.com/matzehuels/balancecoach/pkg/config
// [cache]: github.com/matzehuels/balancecoach/pkg/cache
// [errors]: github.com/matzehuels/balancecoach/pkg/errors
// [httputil]: github.com/matzehuels/balancecoach/pkg/httputil
// [observability]: github.com/matzehuels/balancecoach/pkg/observability
// [buildinfo]: github.com/matzehuels/balancecoach/pkg/buildinfo
package pkg
