package model

import "math"

// Point represents a 2D point in pixel coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Endpoint is a draggable end of a guide line. Radius is the hit-test
// tolerance in pixels.
type Endpoint struct {
	Point
	Radius float64
}

// NewEndpoint creates an endpoint with the default hit radius.
func NewEndpoint(x, y float64) Endpoint {
	return Endpoint{Point: Point{X: x, Y: y}, Radius: 5}
}

// Contains reports whether p falls within the endpoint's hit radius.
// Compares squared distances to avoid a square root.
func (e Endpoint) Contains(p Point) bool {
	dx := p.X - e.X
	dy := p.Y - e.Y
	return dx*dx+dy*dy <= e.Radius*e.Radius
}

// Segment is a finite line segment between two points.
type Segment struct {
	Start, End Point
}

// parallelEpsilon is the denominator threshold below which two segments are
// treated as parallel or degenerate.
const parallelEpsilon = 1e-10

// Intersection computes the intersection of two finite segments using the
// parametric line form. It returns false when the segments are parallel,
// coincident, or when the infinite-line intersection falls outside either
// segment. The returned point is truncated to integer pixel coordinates.
func (s Segment) Intersection(other Segment) (Point, bool) {
	x1, y1 := s.Start.X, s.Start.Y
	x2, y2 := s.End.X, s.End.Y
	x3, y3 := other.Start.X, other.Start.Y
	x4, y4 := other.End.X, other.End.Y

	d := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(d) < parallelEpsilon {
		return Point{}, false
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / d
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / d

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}

	return Point{
		X: math.Trunc(x1 + t*(x2-x1)),
		Y: math.Trunc(y1 + t*(y2-y1)),
	}, true
}

// Length returns the segment's Euclidean length.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Quad is a quadrilateral with a fixed corner order: top-left, top-right,
// bottom-right, bottom-left. The order must be preserved across operations
// such as a rectify-and-reset cycle.
type Quad struct {
	TL, TR, BR, BL Point
}

// Corners returns the corners in their fixed order.
func (q Quad) Corners() [4]Point {
	return [4]Point{q.TL, q.TR, q.BR, q.BL}
}

// BBox represents an axis-aligned bounding box in top-down image coordinates.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewBBoxFromPoints creates a bounding box spanning two points.
func NewBBoxFromPoints(p1, p2 Point) BBox {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	return BBox{X: x, Y: y, Width: math.Abs(p2.X - p1.X), Height: math.Abs(p2.Y - p1.Y)}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 { return b.X }

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 { return b.X + b.Width }

// Top returns the top edge Y coordinate.
func (b BBox) Top() float64 { return b.Y }

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 { return b.Y + b.Height }

// Center returns the center point.
func (b BBox) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Contains checks if a point is inside the bounding box.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// IsValid returns true if the bounding box has positive dimensions.
func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}
