package model

import "testing"

func TestDefaultHeader(t *testing.T) {
	h := DefaultHeader(4)
	want := []string{"Column 1", "Column 2", "Column 3", "Column 4"}
	if len(h) != len(want) {
		t.Fatalf("DefaultHeader(4) has %d entries, want %d", len(h), len(want))
	}
	for i := range want {
		if h[i] != want[i] {
			t.Errorf("DefaultHeader(4)[%d] = %q, want %q", i, h[i], want[i])
		}
	}
}

func TestTableMatrixNormalize(t *testing.T) {
	m := TableMatrix{
		Header: []string{"A", "B", "C"},
		Rows: [][]string{
			{"1"},
			{"1", "2", "3", "4"},
			{"1", "2", "3"},
		},
	}
	m.Normalize()

	for i, row := range m.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d cells after Normalize, want 3", i, len(row))
		}
	}
	if m.Rows[0][1] != "" || m.Rows[0][2] != "" {
		t.Error("short row was not padded with empty strings")
	}
	if m.Rows[1][2] != "3" {
		t.Errorf("long row truncated incorrectly: got %q at (1,2), want \"3\"", m.Rows[1][2])
	}
}

func TestTableMatrixSetCell(t *testing.T) {
	m := NewTableMatrix(2, 2)

	if err := m.SetCell(1, 1, "x"); err != nil {
		t.Fatalf("SetCell(1,1) failed: %v", err)
	}
	got, err := m.Cell(1, 1)
	if err != nil {
		t.Fatalf("Cell(1,1) failed: %v", err)
	}
	if got != "x" {
		t.Errorf("Cell(1,1) = %q, want \"x\"", got)
	}

	if err := m.SetCell(2, 0, "x"); err == nil {
		t.Error("SetCell(2,0) on a 2x2 matrix should fail")
	}
	if _, err := m.Cell(0, -1); err == nil {
		t.Error("Cell(0,-1) should fail")
	}
}

func TestTableMatrixIsEmpty(t *testing.T) {
	m := NewTableMatrix(2, 2)
	if !m.IsEmpty() {
		t.Error("fresh matrix should be empty")
	}
	_ = m.SetCell(0, 1, "  ")
	if !m.IsEmpty() {
		t.Error("whitespace-only matrix should be empty")
	}
	_ = m.SetCell(1, 0, "text")
	if m.IsEmpty() {
		t.Error("matrix with text should not be empty")
	}
}

func TestWordCentroid(t *testing.T) {
	w := Word{
		Text: "hello",
		Vertices: [4]Point{
			{X: 10, Y: 20}, {X: 30, Y: 20}, {X: 30, Y: 40}, {X: 10, Y: 40},
		},
	}
	c := w.Centroid()
	if c.X != 20 || c.Y != 30 {
		t.Errorf("Centroid() = (%v, %v), want (20, 30)", c.X, c.Y)
	}
}
