package rectify

import "github.com/tsawler/gridocr/model"

// Homography is a 3x3 projective transform between two planes.
type Homography struct {
	a11, a12, a13 float64
	a21, a22, a23 float64
	a31, a32, a33 float64
}

// Apply transforms a point through the homography.
func (h *Homography) Apply(p model.Point) model.Point {
	d := h.a13*p.X + h.a23*p.Y + h.a33
	return model.Point{
		X: (h.a11*p.X + h.a21*p.Y + h.a31) / d,
		Y: (h.a12*p.X + h.a22*p.Y + h.a32) / d,
	}
}

// Adjoint returns the transpose of the cofactor matrix, which inverts the
// transform up to a scale factor (irrelevant in homogeneous coordinates).
func (h *Homography) Adjoint() *Homography {
	return &Homography{
		a11: h.a22*h.a33 - h.a23*h.a32,
		a21: h.a23*h.a31 - h.a21*h.a33,
		a31: h.a21*h.a32 - h.a22*h.a31,
		a12: h.a13*h.a32 - h.a12*h.a33,
		a22: h.a11*h.a33 - h.a13*h.a31,
		a32: h.a12*h.a31 - h.a11*h.a32,
		a13: h.a12*h.a23 - h.a13*h.a22,
		a23: h.a13*h.a21 - h.a11*h.a23,
		a33: h.a11*h.a22 - h.a12*h.a21,
	}
}

// Times composes two homographies (this * other).
func (h *Homography) Times(other *Homography) *Homography {
	return &Homography{
		a11: h.a11*other.a11 + h.a21*other.a12 + h.a31*other.a13,
		a21: h.a11*other.a21 + h.a21*other.a22 + h.a31*other.a23,
		a31: h.a11*other.a31 + h.a21*other.a32 + h.a31*other.a33,
		a12: h.a12*other.a11 + h.a22*other.a12 + h.a32*other.a13,
		a22: h.a12*other.a21 + h.a22*other.a22 + h.a32*other.a23,
		a32: h.a12*other.a31 + h.a22*other.a32 + h.a32*other.a33,
		a13: h.a13*other.a11 + h.a23*other.a12 + h.a33*other.a13,
		a23: h.a13*other.a21 + h.a23*other.a22 + h.a33*other.a23,
		a33: h.a13*other.a31 + h.a23*other.a32 + h.a33*other.a33,
	}
}

// squareToQuad maps the unit square onto a quadrilateral given in TL, TR,
// BR, BL order.
func squareToQuad(q model.Quad) (*Homography, bool) {
	x0, y0 := q.TL.X, q.TL.Y
	x1, y1 := q.TR.X, q.TR.Y
	x2, y2 := q.BR.X, q.BR.Y
	x3, y3 := q.BL.X, q.BL.Y

	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3
	if dx3 == 0 && dy3 == 0 {
		// Affine case.
		return &Homography{
			a11: x1 - x0, a21: x2 - x1, a31: x0,
			a12: y1 - y0, a22: y2 - y1, a32: y0,
			a13: 0, a23: 0, a33: 1,
		}, true
	}

	dx1 := x1 - x2
	dx2 := x3 - x2
	dy1 := y1 - y2
	dy2 := y3 - y2
	denominator := dx1*dy2 - dx2*dy1
	if denominator == 0 {
		return nil, false
	}
	a13 := (dx3*dy2 - dx2*dy3) / denominator
	a23 := (dx1*dy3 - dx3*dy1) / denominator
	return &Homography{
		a11: x1 - x0 + a13*x1, a21: x3 - x0 + a23*x3, a31: x0,
		a12: y1 - y0 + a13*y1, a22: y3 - y0 + a23*y3, a32: y0,
		a13: a13, a23: a23, a33: 1,
	}, true
}

// QuadToQuad computes the homography mapping the src quadrilateral onto dst.
// It returns false for degenerate (collinear-corner) quadrilaterals.
func QuadToQuad(src, dst model.Quad) (*Homography, bool) {
	sToQ, ok := squareToQuad(dst)
	if !ok {
		return nil, false
	}
	fwd, ok := squareToQuad(src)
	if !ok {
		return nil, false
	}
	return sToQ.Times(fwd.Adjoint()), true
}
