package grid

import (
	"errors"
	"math"
	"sort"

	"github.com/tsawler/gridocr/model"
)

// ErrOutOfRange is returned when a cell, row, or column lookup falls outside
// the current grid dimensions.
var ErrOutOfRange = errors.New("grid: cell index out of range")

// ErrLocked is returned by mutating operations on a locked grid.
var ErrLocked = errors.New("grid: grid is locked")

// ErrNotLocked is returned when cells are requested before the grid is locked.
var ErrNotLocked = errors.New("grid: grid is not locked")

// Orientation distinguishes horizontal from vertical guide lines.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns a string representation of the orientation.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// LineEnd identifies which end of a guide line is being addressed.
type LineEnd int

const (
	StartEnd LineEnd = iota
	EndEnd
)

// GuideLine is a user-positioned construction line. Each line owns its two
// endpoints exclusively; all mutation goes through Grid methods.
type GuideLine struct {
	Start, End  model.Endpoint
	Orientation Orientation
}

// Segment returns the line as a finite segment for intersection math.
func (l GuideLine) Segment() model.Segment {
	return model.Segment{Start: l.Start.Point, End: l.End.Point}
}

// Cell is one grid cell bounded by four intersection points. Row and Col
// are the cell's matrix position: rows pair horizontal lines by sequence
// index, columns follow the upper line's intersection order. They stay
// correct even when a row derives fewer cells than the widest one.
type Cell struct {
	TopLeft, TopRight, BottomLeft, BottomRight model.Point

	Row, Col int
}

// Quad returns the cell corners in fixed TL, TR, BR, BL order.
func (c Cell) Quad() model.Quad {
	return model.Quad{TL: c.TopLeft, TR: c.TopRight, BR: c.BottomRight, BL: c.BottomLeft}
}

// Region is the rectangular target area (the displayed image placement) that
// CreateLines spans.
type Region struct {
	X, Y, Width, Height float64
}

// Size is a display-surface size used by Rescale.
type Size struct {
	Width, Height float64
}

// Grid is the interactive guide-line model.
type Grid struct {
	Horizontal []GuideLine
	Vertical   []GuideLine

	region    Region
	hasRegion bool
	locked    bool

	// Computed on Lock, cleared on Unlock.
	intersections [][]model.Point // per horizontal line, sorted by x
	cells         []Cell
	cellCols      int
}

// New creates an empty, unlocked grid.
func New() *Grid {
	return &Grid{}
}

// SetRegion sets the target region that CreateLines spans.
func (g *Grid) SetRegion(r Region) {
	g.region = r
	g.hasRegion = true
}

// Region returns the current target region.
func (g *Grid) Region() Region {
	return g.region
}

// Locked reports whether the grid is locked.
func (g *Grid) Locked() bool {
	return g.locked
}

// CreateLines replaces any existing lines with numH+1 evenly spaced
// horizontal lines and numV+1 evenly spaced vertical lines spanning the
// target region. It is a no-op when no region has been set.
func (g *Grid) CreateLines(numH, numV int) {
	if !g.hasRegion || numH < 1 || numV < 1 {
		return
	}

	g.Horizontal = make([]GuideLine, 0, numH+1)
	g.Vertical = make([]GuideLine, 0, numV+1)
	g.intersections = nil
	g.cells = nil
	g.cellCols = 0

	r := g.region
	for i := 0; i <= numH; i++ {
		y := r.Y + math.Floor(float64(i)*r.Height/float64(numH))
		g.Horizontal = append(g.Horizontal, GuideLine{
			Start:       model.NewEndpoint(r.X, y),
			End:         model.NewEndpoint(r.X+r.Width, y),
			Orientation: Horizontal,
		})
	}
	for i := 0; i <= numV; i++ {
		x := r.X + math.Floor(float64(i)*r.Width/float64(numV))
		g.Vertical = append(g.Vertical, GuideLine{
			Start:       model.NewEndpoint(x, r.Y),
			End:         model.NewEndpoint(x, r.Y+r.Height),
			Orientation: Vertical,
		})
	}
}

// DragEndpoint moves one end of a guide line to follow a pointer position.
// Horizontal-line endpoints move only in Y, vertical-line endpoints only in
// X; the other coordinate stays fixed so every line remains axis-aligned.
// Dragging a locked grid returns ErrLocked.
func (g *Grid) DragEndpoint(o Orientation, index int, end LineEnd, pos model.Point) error {
	if g.locked {
		return ErrLocked
	}

	lines := g.lines(o)
	if index < 0 || index >= len(lines) {
		return ErrOutOfRange
	}

	ep := &lines[index].Start
	if end == EndEnd {
		ep = &lines[index].End
	}

	if o == Horizontal {
		ep.Y = math.Trunc(pos.Y)
	} else {
		ep.X = math.Trunc(pos.X)
	}
	return nil
}

// Rescale scales every endpoint to a new display size, preserving the
// relative layout. A zero old dimension is treated as 1.
func (g *Grid) Rescale(old, new Size) {
	ow := old.Width
	if ow <= 0 {
		ow = 1
	}
	oh := old.Height
	if oh <= 0 {
		oh = 1
	}
	rx := new.Width / ow
	ry := new.Height / oh

	scale := func(lines []GuideLine) {
		for i := range lines {
			lines[i].Start.X = math.Trunc(lines[i].Start.X * rx)
			lines[i].Start.Y = math.Trunc(lines[i].Start.Y * ry)
			lines[i].End.X = math.Trunc(lines[i].End.X * rx)
			lines[i].End.Y = math.Trunc(lines[i].End.Y * ry)
		}
	}
	scale(g.Horizontal)
	scale(g.Vertical)

	if g.hasRegion {
		g.region.X *= rx
		g.region.Y *= ry
		g.region.Width *= rx
		g.region.Height *= ry
	}
}

// Lock freezes dragging and computes the grid geometry: per-horizontal-line
// intersections against every vertical line (sorted by x), then the cell
// list derived from index-adjacent horizontal lines. The computation is a
// pure function of the current endpoint positions, so locking an unmodified
// grid again reproduces identical results.
func (g *Grid) Lock() {
	g.locked = true
	g.computeIntersections()
	g.deriveCells()
}

// Unlock clears the lock; cached intersections and cells are discarded and
// recomputed on the next Lock.
func (g *Grid) Unlock() {
	g.locked = false
	g.intersections = nil
	g.cells = nil
	g.cellCols = 0
}

// computeIntersections intersects each horizontal line with every vertical
// line. Parallel or non-crossing pairs record no point.
func (g *Grid) computeIntersections() {
	g.intersections = make([][]model.Point, len(g.Horizontal))
	for i, h := range g.Horizontal {
		pts := make([]model.Point, 0, len(g.Vertical))
		hs := h.Segment()
		for _, v := range g.Vertical {
			if p, ok := hs.Intersection(v.Segment()); ok {
				pts = append(pts, p)
			}
		}
		sort.Slice(pts, func(a, b int) bool { return pts[a].X < pts[b].X })
		g.intersections[i] = pts
	}
}

// deriveCells pairs vertically adjacent horizontal lines by sequence index.
// For each pair of x-adjacent intersections on the upper line, the cell's
// bottom-left corner is the first lower-line intersection at or right of the
// upper-left x, and bottom-right is the next one. A cell is emitted only
// when both lower corners exist.
func (g *Grid) deriveCells() {
	g.cells = nil
	g.cellCols = 0

	for i := 0; i+1 < len(g.intersections); i++ {
		upper := g.intersections[i]
		lower := g.intersections[i+1]

		for k := 0; k+1 < len(upper); k++ {
			topLeft := upper[k]
			topRight := upper[k+1]

			j := sort.Search(len(lower), func(n int) bool {
				return lower[n].X >= topLeft.X
			})
			if j+1 >= len(lower) {
				continue
			}

			g.cells = append(g.cells, Cell{
				TopLeft:     topLeft,
				TopRight:    topRight,
				BottomLeft:  lower[j],
				BottomRight: lower[j+1],
				Row:         i,
				Col:         k,
			})
			if k+1 > g.cellCols {
				g.cellCols = k + 1
			}
		}
	}
}

// Cells returns the derived cell list in row-major order. It returns
// ErrNotLocked before the grid has been locked.
func (g *Grid) Cells() ([]Cell, error) {
	if !g.locked {
		return nil, ErrNotLocked
	}
	return g.cells, nil
}

// Intersections returns the sorted intersection points on horizontal line i.
func (g *Grid) Intersections(i int) ([]model.Point, error) {
	if !g.locked {
		return nil, ErrNotLocked
	}
	if i < 0 || i >= len(g.intersections) {
		return nil, ErrOutOfRange
	}
	return g.intersections[i], nil
}

// Rows returns the number of cell rows the line sequences define.
func (g *Grid) Rows() int {
	if len(g.Horizontal) < 2 {
		return 0
	}
	return len(g.Horizontal) - 1
}

// Cols returns the number of cell columns the line sequences define.
func (g *Grid) Cols() int {
	if len(g.Vertical) < 2 {
		return 0
	}
	return len(g.Vertical) - 1
}

// CellColumns returns the number of columns the derived cells span (the
// highest cell column index plus one). It can differ from Cols after
// aggressive dragging leaves some cells underivable.
func (g *Grid) CellColumns() int {
	return g.cellCols
}

// CellAt returns the rectangular bounds of cell (row, col), looked up from
// the line positions directly rather than the intersection-derived cell
// list. This simplified rectangular test serves click selection; cropping
// uses the true intersection quads from Cells.
func (g *Grid) CellAt(row, col int) (model.BBox, error) {
	if row < 0 || row >= g.Rows() || col < 0 || col >= g.Cols() {
		return model.BBox{}, ErrOutOfRange
	}

	top := g.Horizontal[row].Start.Y
	bottom := g.Horizontal[row+1].Start.Y
	left := g.Vertical[col].Start.X
	right := g.Vertical[col+1].Start.X

	return model.NewBBoxFromPoints(
		model.Point{X: left, Y: top},
		model.Point{X: right, Y: bottom},
	), nil
}

func (g *Grid) lines(o Orientation) []GuideLine {
	if o == Vertical {
		return g.Vertical
	}
	return g.Horizontal
}
