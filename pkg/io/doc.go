// Package io reads and writes board snapshots as JSON.
//
// # JSON Format
//
// A snapshot is the board geometry, the editor state and the shape list:
//
//	{
//	  "board": {"width": 800, "height": 600, "floor": 140},
//	  "mode": "symmetrical",
//	  "shapes": [
//	    {"id": "a", "kind": "square", "x": 100, "y": 360, "width": 100, "height": 100, "shade": 3,
//	     "mirror_id": "a-mirror"},
//	    {"id": "a-mirror", "kind": "square", "x": 600, "y": 360, "width": 100, "height": 100, "shade": 3,
//	     "mirror_id": "a"}
//	  ]
//	}
//
// Only geometry, kind, shade and links are required for each shape. Weight,
// saturation and color are derived and recomputed on import. The exported
// form carries them, along with the balance reading, for consumers that do
// not want to recompute anything.
//
// # Import
//
// [ReadJSON] decodes a snapshot from any io.Reader and [ImportJSON] reads a
// file. [LoadEngine] additionally restores an engine and checks every board
// invariant (bounds, overlaps, fulcrum, mirror links).
//
// # Export
//
// [WriteJSON] and [ExportJSON] write an indented snapshot that re-imports
// to the same board.
package io
