package grid

import "github.com/tsawler/gridocr/model"

// EndpointRef identifies one endpoint of one guide line.
type EndpointRef struct {
	Orientation Orientation
	Index       int
	End         LineEnd
}

// HitEndpoint returns the first endpoint whose hit radius contains p,
// scanning horizontal lines before vertical ones and each line's start
// before its end.
func (g *Grid) HitEndpoint(p model.Point) (EndpointRef, bool) {
	for i, l := range g.Horizontal {
		if l.Start.Contains(p) {
			return EndpointRef{Horizontal, i, StartEnd}, true
		}
		if l.End.Contains(p) {
			return EndpointRef{Horizontal, i, EndEnd}, true
		}
	}
	for i, l := range g.Vertical {
		if l.Start.Contains(p) {
			return EndpointRef{Vertical, i, StartEnd}, true
		}
		if l.End.Contains(p) {
			return EndpointRef{Vertical, i, EndEnd}, true
		}
	}
	return EndpointRef{}, false
}

// HitCell maps a pointer position on a locked grid to the (row, col) of the
// rectangular cell region it falls in. The consumer maps this to cropping
// plus single-cell OCR.
func (g *Grid) HitCell(p model.Point) (row, col int, ok bool) {
	if !g.locked {
		return 0, 0, false
	}
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			box, err := g.CellAt(r, c)
			if err != nil {
				continue
			}
			if box.Contains(p) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Dragger interprets pointer-down/move/up events into endpoint moves.
// A zero Dragger is ready to use.
type Dragger struct {
	grid     *Grid
	ref      EndpointRef
	dragging bool
}

// NewDragger creates a dragger bound to a grid.
func NewDragger(g *Grid) *Dragger {
	return &Dragger{grid: g}
}

// Begin starts a drag if p hits an endpoint on an unlocked grid.
func (d *Dragger) Begin(p model.Point) bool {
	if d.grid.Locked() {
		return false
	}
	ref, ok := d.grid.HitEndpoint(p)
	if !ok {
		return false
	}
	d.ref = ref
	d.dragging = true
	return true
}

// Move updates the dragged endpoint to follow the pointer.
func (d *Dragger) Move(p model.Point) {
	if !d.dragging {
		return
	}
	_ = d.grid.DragEndpoint(d.ref.Orientation, d.ref.Index, d.ref.End, p)
}

// End finishes the drag.
func (d *Dragger) End() {
	d.dragging = false
}

// Dragging reports whether a drag is in progress.
func (d *Dragger) Dragging() bool {
	return d.dragging
}
