package ocr

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/gridocr/model"
)

// Backend is the contract the core holds with an OCR service: submit image
// bytes, receive recognized text or a list of words with bounding
// quadrilaterals, or an error. Implementations perform no retries; a failure
// is surfaced once and the caller decides whether to re-invoke.
type Backend interface {
	// Text recognizes all text in the image, trimmed of surrounding
	// whitespace.
	Text(image []byte) (string, error)

	// Words recognizes individual words with their bounding quadrilaterals
	// in absolute pixel coordinates.
	Words(image []byte) ([]model.Word, error)
}

// ErrNotConfigured is returned when the OCR engine's required configuration
// (language data path) is missing. It is reported before any recognition is
// attempted.
var ErrNotConfigured = errors.New("ocr: engine not configured")

// ErrNoWords is returned when recognition succeeds but yields no words.
// It is distinct from a backend failure: the image simply contains no
// recognizable text.
var ErrNoWords = errors.New("ocr: no words recognized")

// CleanText normalizes recognized text to NFC and trims surrounding
// whitespace. Tesseract output can carry decomposed accents and stray
// newlines around single-cell crops.
func CleanText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
