// Package reader loads source photographs for grid overlay, rectification,
// and OCR. It decodes PNG, JPEG, GIF, BMP, and TIFF rasters and corrects the
// EXIF orientation on load, so all downstream coordinate math operates on
// the image as it is displayed.
package reader

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/rwcarlsen/goexif/exif"

	// Raster formats accepted by the loader.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/tsawler/gridocr/rectify"
)

// Image is a decoded, orientation-normalized source photograph.
type Image struct {
	Raster image.Image
	Format string // "png", "jpeg", "gif", "bmp", "tiff"

	// Orientation is the EXIF tag the raster was normalized from
	// (1 when absent).
	Orientation rectify.Orientation
}

// Width returns the raster width in pixels.
func (im *Image) Width() int { return im.Raster.Bounds().Dx() }

// Height returns the raster height in pixels.
func (im *Image) Height() int { return im.Raster.Bounds().Dy() }

// Load reads and decodes an image file.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes decodes raw image bytes. The EXIF orientation tag, when present,
// is applied to the raster so corner coordinates match the displayed
// orientation.
func LoadBytes(data []byte) (*Image, error) {
	raster, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	orientation := readOrientation(data)
	raster = rectify.Normalize(raster, orientation)

	return &Image{
		Raster:      raster,
		Format:      format,
		Orientation: orientation,
	}, nil
}

// readOrientation extracts the EXIF orientation tag. Images without EXIF
// metadata (or with an unreadable tag) default to the normal orientation.
func readOrientation(data []byte) rectify.Orientation {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return rectify.OrientTopLeft
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return rectify.OrientTopLeft
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return rectify.OrientTopLeft
	}
	return rectify.Orientation(v)
}

// EncodePNG encodes a raster as PNG bytes for submission to the OCR backend.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
