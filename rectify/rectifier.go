package rectify

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/tsawler/gridocr/model"
)

// ErrDegenerateQuad is returned when the four corners cannot define a
// perspective transform (collinear or coincident corners).
var ErrDegenerateQuad = errors.New("rectify: degenerate quadrilateral")

// DisplayMap converts display-surface coordinates to original-image pixel
// coordinates: corners are first shifted by the centering offsets, then
// multiplied by the display-to-original scale factors.
type DisplayMap struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// IdentityMap is the display map for corners already in image coordinates.
var IdentityMap = DisplayMap{ScaleX: 1, ScaleY: 1}

// NewDisplayMap builds a map for an image of origW x origH pixels shown
// scaled to dispW x dispH and centered inside a surfW x surfH surface.
func NewDisplayMap(origW, origH, dispW, dispH, surfW, surfH float64) DisplayMap {
	if dispW <= 0 {
		dispW = 1
	}
	if dispH <= 0 {
		dispH = 1
	}
	return DisplayMap{
		ScaleX:  origW / dispW,
		ScaleY:  origH / dispH,
		OffsetX: math.Floor((surfW - dispW) / 2),
		OffsetY: math.Floor((surfH - dispH) / 2),
	}
}

// ToImage converts one display point to original-image coordinates.
func (m DisplayMap) ToImage(p model.Point) model.Point {
	return model.Point{
		X: (p.X - m.OffsetX) * m.ScaleX,
		Y: (p.Y - m.OffsetY) * m.ScaleY,
	}
}

// ToImageQuad converts a display quadrilateral, preserving corner order.
func (m DisplayMap) ToImageQuad(q model.Quad) model.Quad {
	return model.Quad{
		TL: m.ToImage(q.TL),
		TR: m.ToImage(q.TR),
		BR: m.ToImage(q.BR),
		BL: m.ToImage(q.BL),
	}
}

// Transform is the result of ComputeTransform: an inverse mapping from the
// destination rectangle back into the source image, plus the destination
// size in pixels.
type Transform struct {
	inverse *Homography
	Width   int
	Height  int
}

// ComputeTransform builds the perspective transform that maps the (possibly
// skewed) source quadrilateral onto the axis-aligned rectangle
// (0,0),(w,0),(w,h),(0,h). The quad is given in display coordinates and
// converted through the display map first. The destination width is the
// longer of the top and bottom edges, the height the longer of the left and
// right edges.
func ComputeTransform(quad model.Quad, m DisplayMap) (*Transform, error) {
	src := m.ToImageQuad(quad)

	width := math.Max(src.TL.Distance(src.TR), src.BR.Distance(src.BL))
	height := math.Max(src.TL.Distance(src.BL), src.TR.Distance(src.BR))
	if width < 1 || height < 1 {
		return nil, ErrDegenerateQuad
	}

	dst := model.Quad{
		TL: model.Point{X: 0, Y: 0},
		TR: model.Point{X: width, Y: 0},
		BR: model.Point{X: width, Y: height},
		BL: model.Point{X: 0, Y: height},
	}

	// The warp samples the source through the inverse mapping, so build the
	// rectangle-to-quad direction.
	inv, ok := QuadToQuad(dst, src)
	if !ok {
		return nil, ErrDegenerateQuad
	}

	return &Transform{
		inverse: inv,
		Width:   int(width),
		Height:  int(height),
	}, nil
}

// Source maps a destination-rectangle point back into the source image.
func (t *Transform) Source(p model.Point) model.Point {
	return t.inverse.Apply(p)
}

// Rectify applies the transform to the source image as an inverse-mapped
// warp, producing an axis-aligned output of exactly Width x Height pixels.
// Samples outside the source raster come out white, matching the canvas
// background the region is drawn over.
func Rectify(src image.Image, t *Transform) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	bounds := src.Bounds()

	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			sp := t.Source(model.Point{X: float64(x), Y: float64(y)})
			dst.SetRGBA(x, y, sampleBilinear(src, bounds, sp.X, sp.Y))
		}
	}
	return dst
}

// sampleBilinear samples src at a fractional position with bilinear
// interpolation, treating out-of-bounds pixels as white.
func sampleBilinear(src image.Image, bounds image.Rectangle, x, y float64) color.RGBA {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	c00 := pixelAt(src, bounds, x0, y0)
	c10 := pixelAt(src, bounds, x0+1, y0)
	c01 := pixelAt(src, bounds, x0, y0+1)
	c11 := pixelAt(src, bounds, x0+1, y0+1)

	lerp2 := func(a, b, c, d float64) uint8 {
		top := a + (b-a)*fx
		bot := c + (d-c)*fx
		return uint8(math.Round(top + (bot-top)*fy))
	}

	return color.RGBA{
		R: lerp2(float64(c00.R), float64(c10.R), float64(c01.R), float64(c11.R)),
		G: lerp2(float64(c00.G), float64(c10.G), float64(c01.G), float64(c11.G)),
		B: lerp2(float64(c00.B), float64(c10.B), float64(c01.B), float64(c11.B)),
		A: 255,
	}
}

func pixelAt(src image.Image, bounds image.Rectangle, x, y int) color.RGBA {
	px := bounds.Min.X + x
	py := bounds.Min.Y + y
	if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	r, g, b, _ := src.At(px, py).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
}
