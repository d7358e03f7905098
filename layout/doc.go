// Package layout reconstructs tabular structure from unstructured OCR word
// boxes. It is the fallback path when no grid has been placed: words are
// clustered into text lines by centroid y, assigned to a fixed number of
// equal-width column bands by centroid x, and split into a header row plus
// body rows.
//
// The fixed column count is a documented approximation, not general table
// structure inference; the grid-based per-cell extraction path is the
// accurate alternative when a grid is available.
package layout
