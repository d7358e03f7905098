// Package rectify implements four-point perspective rectification: it maps a
// user-placed quadrilateral region of a photographed page onto an
// axis-aligned rectangle, correcting the skew introduced by the camera
// angle. It is used both for whole-image straightening and for cropping a
// single grid cell with perspective correction before OCR.
package rectify
