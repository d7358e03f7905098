package rectify

import "image"

// Orientation is the EXIF orientation tag value (1-8). Corner coordinates
// are meaningless when the raster is transposed relative to its displayed
// orientation, so the raster must be normalized before any corner math.
type Orientation int

const (
	OrientTopLeft     Orientation = 1 // normal
	OrientTopRight    Orientation = 2 // mirrored horizontally
	OrientBottomRight Orientation = 3 // rotated 180
	OrientBottomLeft  Orientation = 4 // mirrored vertically
	OrientLeftTop     Orientation = 5 // mirrored, rotated 270 CW
	OrientRightTop    Orientation = 6 // rotated 90 CW
	OrientRightBottom Orientation = 7 // mirrored, rotated 90 CW
	OrientLeftBottom  Orientation = 8 // rotated 270 CW
)

// swapsAxes reports whether the orientation exchanges width and height.
func (o Orientation) swapsAxes() bool {
	return o >= OrientLeftTop && o <= OrientLeftBottom
}

// Normalize returns the image re-rasterized into its displayed orientation.
// Each of the eight orientation cases is a composition of mirroring and
// quarter rotations; orientation 1 (and unknown values) return the input
// unchanged.
func Normalize(src image.Image, o Orientation) image.Image {
	if o <= OrientTopLeft || o > OrientLeftBottom {
		return src
	}

	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	outW, outH := w, h
	if o.swapsAxes() {
		outW, outH = h, w
	}
	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dx, dy int
			switch o {
			case OrientTopRight: // mirror horizontal
				dx, dy = w-1-x, y
			case OrientBottomRight: // rotate 180
				dx, dy = w-1-x, h-1-y
			case OrientBottomLeft: // mirror vertical
				dx, dy = x, h-1-y
			case OrientLeftTop: // transpose
				dx, dy = y, x
			case OrientRightTop: // rotate 90 CW
				dx, dy = h-1-y, x
			case OrientRightBottom: // transverse
				dx, dy = h-1-y, w-1-x
			case OrientLeftBottom: // rotate 270 CW
				dx, dy = y, w-1-x
			}
			dst.Set(dx, dy, src.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return dst
}
