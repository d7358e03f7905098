// Package grid implements the interactive guide-line model used to overlay
// an adjustable grid on a photographed table.
//
// A [Grid] holds two ordered sequences of guide lines, horizontal and
// vertical. Each line owns its two endpoints; endpoints are dragged along
// the axis perpendicular to the line's orientation, so every guide line
// stays axis-aligned. Line order is creation order (top-to-bottom,
// left-to-right) and is never re-sorted after drags: cell derivation pairs
// lines by sequence index, so a drag that inverts visual order produces
// inverted cells.
//
// Locking the grid computes the intersection points of every horizontal
// line against every vertical line and derives the quadrilateral cells
// bounded by them. While locked, dragging is frozen and the cell list is
// the source of truth for downstream per-cell extraction.
package grid
