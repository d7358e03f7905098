package grid

import (
	"testing"

	"github.com/tsawler/gridocr/model"
)

func TestHitEndpoint(t *testing.T) {
	g := New()
	g.SetRegion(Region{X: 0, Y: 0, Width: 200, Height: 100})
	g.CreateLines(2, 2)

	// Start of the second horizontal line sits at (0, 50).
	ref, ok := g.HitEndpoint(model.Point{X: 2, Y: 52})
	if !ok {
		t.Fatal("HitEndpoint missed an endpoint within its radius")
	}
	if ref.Orientation != Horizontal || ref.Index != 1 || ref.End != StartEnd {
		t.Errorf("HitEndpoint = %+v, want horizontal line 1 start", ref)
	}

	if _, ok := g.HitEndpoint(model.Point{X: 60, Y: 25}); ok {
		t.Error("HitEndpoint reported a hit in open space")
	}
}

func TestHitEndpoint_ScanOrder(t *testing.T) {
	g := New()
	g.SetRegion(Region{X: 0, Y: 0, Width: 100, Height: 100})
	g.CreateLines(1, 1)

	// The region corner (0,0) is covered by both a horizontal and a vertical
	// endpoint; horizontal lines are scanned first.
	ref, ok := g.HitEndpoint(model.Point{X: 0, Y: 0})
	if !ok {
		t.Fatal("HitEndpoint missed the corner endpoint")
	}
	if ref.Orientation != Horizontal {
		t.Errorf("HitEndpoint preferred %v, want horizontal", ref.Orientation)
	}
}

func TestHitCell(t *testing.T) {
	g := New()
	g.SetRegion(Region{X: 0, Y: 0, Width: 200, Height: 100})
	g.CreateLines(2, 2)

	// Not locked yet: no selection events.
	if _, _, ok := g.HitCell(model.Point{X: 150, Y: 75}); ok {
		t.Error("HitCell reported a hit on an unlocked grid")
	}

	g.Lock()
	row, col, ok := g.HitCell(model.Point{X: 150, Y: 75})
	if !ok {
		t.Fatal("HitCell missed a point inside the grid")
	}
	if row != 1 || col != 1 {
		t.Errorf("HitCell = (%d,%d), want (1,1)", row, col)
	}

	if _, _, ok := g.HitCell(model.Point{X: 500, Y: 500}); ok {
		t.Error("HitCell reported a hit outside the grid")
	}
}

func TestDragger(t *testing.T) {
	g := New()
	g.SetRegion(Region{X: 0, Y: 0, Width: 200, Height: 100})
	g.CreateLines(2, 2)
	d := NewDragger(g)

	if d.Begin(model.Point{X: 60, Y: 25}) {
		t.Error("Begin succeeded away from any endpoint")
	}

	if !d.Begin(model.Point{X: 0, Y: 50}) {
		t.Fatal("Begin failed on an endpoint")
	}
	d.Move(model.Point{X: 40, Y: 62})
	d.End()

	if g.Horizontal[1].Start.Y != 62 {
		t.Errorf("dragged endpoint y = %v, want 62", g.Horizontal[1].Start.Y)
	}
	if g.Horizontal[1].Start.X != 0 {
		t.Errorf("dragged endpoint x = %v, must stay 0", g.Horizontal[1].Start.X)
	}

	// Moves after End are ignored.
	d.Move(model.Point{X: 0, Y: 90})
	if g.Horizontal[1].Start.Y != 62 {
		t.Error("Move after End still mutated the grid")
	}

	// Locked grid refuses to start a drag.
	g.Lock()
	if d.Begin(model.Point{X: 0, Y: 0}) {
		t.Error("Begin succeeded on a locked grid")
	}
}
