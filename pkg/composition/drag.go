package composition

// Drag tracks one pointer drag of a shape. The grab offset is the pointer
// position relative to the shape's top-left corner when the drag began.
type Drag struct {
	engine       *Engine
	id           string
	grabX, grabY float64
	done         bool
}

// BeginDrag selects the shape and starts dragging it. grabX and grabY are
// the pointer position inside the shape. Challenge shapes can be selected
// but not dragged, in which case BeginDrag returns nil. Any earlier drag
// ends first.
func (e *Engine) BeginDrag(id string, grabX, grabY float64) *Drag {
	e.EndDrag()
	if !e.Select(id) {
		return nil
	}
	if s, _ := e.Shape(id); s.Challenge {
		return nil
	}
	e.drag = &Drag{engine: e, id: id, grabX: grabX, grabY: grabY}
	return e.drag
}

// PointerDown handles a press at board position (x, y): the topmost shape
// under the pointer is selected and, if editable, a drag begins. Pressing
// the empty board clears the selection.
func (e *Engine) PointerDown(x, y float64) *Drag {
	s, ok := e.ShapeAt(x, y)
	if !ok {
		e.EndDrag()
		e.ClearSelection()
		return nil
	}
	return e.BeginDrag(s.ID, x-s.X, y-s.Y)
}

// Dragging returns the ID of the shape being dragged.
func (e *Engine) Dragging() (string, bool) {
	if e.drag == nil {
		return "", false
	}
	return e.drag.id, true
}

// EndDrag ends the active drag, if any.
func (e *Engine) EndDrag() {
	if e.drag != nil {
		e.drag.done = true
		e.drag = nil
	}
}

// ShapeID returns the ID of the dragged shape.
func (d *Drag) ShapeID() string { return d.id }

// Active reports whether the drag is still in progress.
func (d *Drag) Active() bool { return d != nil && !d.done }

// Move follows the pointer to board position (x, y). It reports whether the
// shape moved; pointer positions that would produce an invalid footprint
// leave the shape where it was.
func (d *Drag) Move(x, y float64) bool {
	if !d.Active() {
		return false
	}
	return d.engine.Move(d.id, x-d.grabX, y-d.grabY)
}

// End finishes the drag.
func (d *Drag) End() {
	if !d.Active() {
		return
	}
	d.done = true
	if d.engine.drag == d {
		d.engine.drag = nil
	}
}
