package reader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/tsawler/gridocr/rectify"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestLoadBytes_PNG(t *testing.T) {
	data := encodeTestPNG(t, 12, 8)

	im, err := LoadBytes(data)
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	if im.Format != "png" {
		t.Errorf("Format = %q, want \"png\"", im.Format)
	}
	if im.Width() != 12 || im.Height() != 8 {
		t.Errorf("size = %dx%d, want 12x8", im.Width(), im.Height())
	}
	if im.Orientation != rectify.OrientTopLeft {
		t.Errorf("Orientation = %d, want 1 (PNG carries no EXIF)", im.Orientation)
	}
}

func TestLoadBytes_Garbage(t *testing.T) {
	if _, err := LoadBytes([]byte("not an image")); err == nil {
		t.Error("LoadBytes accepted garbage input")
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(2, 2, color.RGBA{R: 200, A: 255})

	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	im, err := LoadBytes(data)
	if err != nil {
		t.Fatalf("LoadBytes of encoded PNG failed: %v", err)
	}
	r, _, _, _ := im.Raster.At(2, 2).RGBA()
	if uint8(r>>8) != 200 {
		t.Errorf("pixel (2,2) red = %d, want 200", uint8(r>>8))
	}
}
