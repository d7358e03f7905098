//go:build ocr

// Package ocr provides OCR (Optical Character Recognition) for extracting
// table text from photographed images.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"os"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/gridocr/model"
)

// Client wraps Tesseract for OCR operations. It implements [Backend].
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client. It fails fast with ErrNotConfigured when
// TESSDATA_PREFIX points at a missing directory, before any recognition
// call. The client should be closed when no longer needed.
func New() (*Client, error) {
	if prefix := os.Getenv("TESSDATA_PREFIX"); prefix != "" {
		if _, err := os.Stat(prefix); err != nil {
			return nil, fmt.Errorf("%w: TESSDATA_PREFIX %q: %v", ErrNotConfigured, prefix, err)
		}
	}
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages can
// be specified as a "+" separated string (e.g. "eng+fra"). Default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode, which controls how
// Tesseract analyzes the page layout. Single-cell crops recognize better
// with gosseract.PSM_SINGLE_BLOCK.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}

// Text recognizes all text in the image, NFC-normalized and trimmed.
func (c *Client) Text(image []byte) (string, error) {
	if err := c.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return CleanText(text), nil
}

// Words recognizes individual words with their bounding quadrilaterals.
// It returns ErrNoWords when recognition succeeds but the image contains no
// recognizable text.
func (c *Client) Words(image []byte) ([]model.Word, error) {
	if err := c.client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]model.Word, 0, len(boxes))
	for _, b := range boxes {
		text := CleanText(b.Word)
		if text == "" {
			continue
		}
		minX := float64(b.Box.Min.X)
		minY := float64(b.Box.Min.Y)
		maxX := float64(b.Box.Max.X)
		maxY := float64(b.Box.Max.Y)
		words = append(words, model.Word{
			Text: text,
			Vertices: [4]model.Point{
				{X: minX, Y: minY},
				{X: maxX, Y: minY},
				{X: maxX, Y: maxY},
				{X: minX, Y: maxY},
			},
		})
	}
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}
