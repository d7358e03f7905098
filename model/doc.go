// Package model defines the shared data model for gridocr: geometric
// primitives (points, segments, quadrilaterals, bounding boxes), OCR words
// with their bounding quadrilaterals, and the reconstructed table matrix.
//
// All coordinates are image/display pixels with the origin at the top-left
// and Y increasing downward.
package model
