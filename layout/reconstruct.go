package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/gridocr/model"
)

// Config holds the reconstruction heuristics' tunable constants.
type Config struct {
	// RowTolerance is the y-distance within which a word joins an existing
	// row bucket (pixels).
	RowTolerance float64

	// Columns is the fixed number of equal-width column bands.
	Columns int
}

// DefaultConfig returns the documented defaults: 50 px row tolerance and
// four columns.
func DefaultConfig() Config {
	return Config{
		RowTolerance: 50,
		Columns:      4,
	}
}

// Reconstructor clusters OCR word boxes into a table matrix.
type Reconstructor struct {
	config Config
}

// NewReconstructor creates a reconstructor with default configuration.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{config: DefaultConfig()}
}

// NewReconstructorWithConfig creates a reconstructor with custom
// configuration. Non-positive fields fall back to the defaults.
func NewReconstructorWithConfig(config Config) *Reconstructor {
	def := DefaultConfig()
	if config.RowTolerance <= 0 {
		config.RowTolerance = def.RowTolerance
	}
	if config.Columns <= 0 {
		config.Columns = def.Columns
	}
	return &Reconstructor{config: config}
}

// rowBucket is a growing group of words sharing a representative y. The key
// is the centroid y of the first word assigned and is never re-averaged.
type rowBucket struct {
	key   float64
	words []placedWord
}

type placedWord struct {
	x    float64
	text string
}

// Reconstruct builds a table matrix from a flat set of OCR words.
// pageWidth is the page-level width reported by the OCR backend; the column
// bands span from the leftmost word centroid to the greater of pageWidth
// and the rightmost centroid. When no words are present, the result carries
// the default header and an empty body.
func (r *Reconstructor) Reconstruct(words []model.Word, pageWidth float64) model.TableMatrix {
	cols := r.config.Columns

	buckets := r.clusterRows(words)
	if len(buckets) == 0 {
		return model.TableMatrix{Header: model.DefaultHeader(cols)}
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].key < buckets[j].key })

	boundaries := r.columnBoundaries(buckets, pageWidth)

	var rows [][]string
	for _, b := range buckets {
		sort.Slice(b.words, func(i, j int) bool { return b.words[i].x < b.words[j].x })

		row := make([]string, cols)
		for _, w := range b.words {
			idx := 0
			// A word falls in the last band whose left boundary it exceeds.
			for i := 0; i < cols-1; i++ {
				if w.x > boundaries[i] {
					idx = i + 1
				} else {
					break
				}
			}
			row[idx] = strings.TrimSpace(row[idx] + " " + w.text)
		}

		if rowHasText(row) {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return model.TableMatrix{Header: model.DefaultHeader(cols)}
	}

	// First non-empty row becomes the header, the rest the body.
	m := model.TableMatrix{Header: rows[0], Rows: rows[1:]}
	m.Normalize()
	return m
}

// clusterRows groups words into row buckets in encounter order: a word joins
// the first existing bucket whose key is within the tolerance of the word's
// centroid y, otherwise it starts a new bucket keyed at its own centroid y.
func (r *Reconstructor) clusterRows(words []model.Word) []*rowBucket {
	var buckets []*rowBucket
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		c := w.Centroid()

		var target *rowBucket
		for _, b := range buckets {
			if abs(c.Y-b.key) < r.config.RowTolerance {
				target = b
				break
			}
		}
		if target == nil {
			target = &rowBucket{key: c.Y}
			buckets = append(buckets, target)
		}
		target.words = append(target.words, placedWord{x: c.X, text: w.Text})
	}
	return buckets
}

// columnBoundaries derives the left boundaries of bands 2..n across
// [minX, max(pageWidth, maxX)]. A degenerate span is clamped to 1 to avoid
// dividing by zero.
func (r *Reconstructor) columnBoundaries(buckets []*rowBucket, pageWidth float64) []float64 {
	minX := buckets[0].words[0].x
	maxX := minX
	for _, b := range buckets {
		for _, w := range b.words {
			if w.x < minX {
				minX = w.x
			}
			if w.x > maxX {
				maxX = w.x
			}
		}
	}

	right := pageWidth
	if maxX > right {
		right = maxX
	}
	effectiveWidth := right - minX
	if effectiveWidth <= 0 {
		effectiveWidth = 1
	}

	cols := r.config.Columns
	colWidth := effectiveWidth / float64(cols)
	boundaries := make([]float64, cols-1)
	for i := range boundaries {
		boundaries[i] = minX + float64(i+1)*colWidth
	}
	return boundaries
}

func rowHasText(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
