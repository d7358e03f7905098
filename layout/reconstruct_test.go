package layout

import (
	"testing"

	"github.com/tsawler/gridocr/model"
)

// word builds an OCR word with a 20x10 box centered at (x, y).
func word(text string, x, y float64) model.Word {
	return model.Word{
		Text: text,
		Vertices: [4]model.Point{
			{X: x - 10, Y: y - 5},
			{X: x + 10, Y: y - 5},
			{X: x + 10, Y: y + 5},
			{X: x - 10, Y: y + 5},
		},
	}
}

func TestReconstruct_Empty(t *testing.T) {
	r := NewReconstructor()
	m := r.Reconstruct(nil, 800)

	want := []string{"Column 1", "Column 2", "Column 3", "Column 4"}
	if len(m.Header) != len(want) {
		t.Fatalf("header has %d columns, want %d", len(m.Header), len(want))
	}
	for i := range want {
		if m.Header[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, m.Header[i], want[i])
		}
	}
	if len(m.Rows) != 0 {
		t.Errorf("empty input produced %d body rows", len(m.Rows))
	}
}

func TestReconstruct_RowMergeWithinTolerance(t *testing.T) {
	r := NewReconstructor()
	// |10-60| < 50 px tolerance: both words share one row bucket.
	words := []model.Word{
		word("alpha", 100, 10),
		word("beta", 300, 60),
	}
	m := r.Reconstruct(words, 800)

	// One merged row becomes the header; no body rows remain.
	if len(m.Rows) != 0 {
		t.Errorf("merged words produced %d body rows, want 0", len(m.Rows))
	}
	if m.Header[0] != "alpha" || m.Header[1] != "beta" {
		t.Errorf("header = %v, want alpha and beta in the first two columns", m.Header)
	}
}

func TestReconstruct_RowSplitBeyondTolerance(t *testing.T) {
	r := NewReconstructor()
	words := []model.Word{
		word("alpha", 100, 10),
		word("beta", 100, 200),
	}
	m := r.Reconstruct(words, 800)

	if len(m.Rows) != 1 {
		t.Fatalf("distant words produced %d body rows, want 1 (plus header)", len(m.Rows))
	}
	if m.Header[0] != "alpha" {
		t.Errorf("header[0] = %q, want \"alpha\"", m.Header[0])
	}
	if m.Rows[0][0] != "beta" {
		t.Errorf("body[0][0] = %q, want \"beta\"", m.Rows[0][0])
	}
}

func TestReconstruct_RowOrderByY(t *testing.T) {
	r := NewReconstructor()
	// Encounter order is bottom-up; output must sort by y ascending.
	words := []model.Word{
		word("third", 100, 500),
		word("first", 100, 10),
		word("second", 100, 250),
	}
	m := r.Reconstruct(words, 800)

	if m.Header[0] != "first" {
		t.Errorf("header[0] = %q, want \"first\"", m.Header[0])
	}
	if len(m.Rows) != 2 || m.Rows[0][0] != "second" || m.Rows[1][0] != "third" {
		t.Errorf("body rows out of order: %v", m.Rows)
	}
}

func TestReconstruct_ColumnBands(t *testing.T) {
	r := NewReconstructor()
	// Page width 800, min centroid x = 100: bands split at 275, 450, 625.
	words := []model.Word{
		word("a", 100, 10),
		word("b", 300, 10),
		word("c", 500, 10),
		word("d", 700, 10),
		word("w", 100, 200),
		word("x", 300, 200),
		word("y", 500, 200),
		word("z", 700, 200),
	}
	m := r.Reconstruct(words, 800)

	wantHeader := []string{"a", "b", "c", "d"}
	for i := range wantHeader {
		if m.Header[i] != wantHeader[i] {
			t.Errorf("header[%d] = %q, want %q", i, m.Header[i], wantHeader[i])
		}
	}
	if len(m.Rows) != 1 {
		t.Fatalf("got %d body rows, want 1", len(m.Rows))
	}
	wantRow := []string{"w", "x", "y", "z"}
	for i := range wantRow {
		if m.Rows[0][i] != wantRow[i] {
			t.Errorf("body[0][%d] = %q, want %q", i, m.Rows[0][i], wantRow[i])
		}
	}
}

func TestReconstruct_SameCellConcatenation(t *testing.T) {
	r := NewReconstructor()
	// Two words in the first band on one line, supplied right-to-left:
	// concatenated left-to-right with a single space.
	words := []model.Word{
		word("world", 150, 10),
		word("hello", 100, 10),
	}
	m := r.Reconstruct(words, 800)

	if m.Header[0] != "hello world" {
		t.Errorf("header[0] = %q, want \"hello world\"", m.Header[0])
	}
}

func TestReconstruct_BucketKeyNotReaveraged(t *testing.T) {
	r := NewReconstructor()
	// First word keys the bucket at y=10. A word at y=55 joins (|55-10|<50)
	// but does not move the key, so a word at y=95 starts a new bucket even
	// though it is within 50 of y=55.
	words := []model.Word{
		word("a", 100, 10),
		word("b", 200, 55),
		word("c", 100, 95),
	}
	m := r.Reconstruct(words, 800)

	if len(m.Rows) != 1 {
		t.Fatalf("got %d body rows, want 1: bucket keys must not re-average", len(m.Rows))
	}
	if m.Rows[0][0] != "c" {
		t.Errorf("body[0][0] = %q, want \"c\"", m.Rows[0][0])
	}
}

func TestReconstruct_CustomConfig(t *testing.T) {
	r := NewReconstructorWithConfig(Config{RowTolerance: 5, Columns: 2})
	words := []model.Word{
		word("a", 100, 10),
		word("b", 100, 20),
	}
	m := r.Reconstruct(words, 200)

	if len(m.Header) != 2 {
		t.Errorf("header has %d columns, want 2", len(m.Header))
	}
	// 10 px apart with 5 px tolerance: separate rows.
	if len(m.Rows) != 1 {
		t.Errorf("got %d body rows, want 1", len(m.Rows))
	}
}

func TestReconstruct_PageWidthExtendsBands(t *testing.T) {
	r := NewReconstructor()
	// All words near the left edge; the bands still span the page width, so
	// everything lands in the first column.
	words := []model.Word{
		word("a", 50, 10),
		word("b", 120, 10),
	}
	m := r.Reconstruct(words, 2000)

	if m.Header[0] != "a b" {
		t.Errorf("header[0] = %q, want \"a b\"", m.Header[0])
	}
	for i := 1; i < 4; i++ {
		if m.Header[i] != "" {
			t.Errorf("header[%d] = %q, want empty", i, m.Header[i])
		}
	}
}
