package model

// Word is a single OCR-recognized token with its bounding quadrilateral in
// absolute pixel coordinates. Words are supplied by the OCR backend and are
// immutable once created.
type Word struct {
	Text     string
	Vertices [4]Point
}

// Centroid returns the mean of the word's four bounding-box vertices.
func (w Word) Centroid() Point {
	var sx, sy float64
	for _, v := range w.Vertices {
		sx += v.X
		sy += v.Y
	}
	return Point{X: sx / 4, Y: sy / 4}
}
