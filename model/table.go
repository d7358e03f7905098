package model

import (
	"fmt"
	"strings"
)

// TableMatrix is the reconstructed table: a header row plus body rows of
// recognized text. A normalized matrix is rectangular, with every body row
// padded or truncated to the header length.
type TableMatrix struct {
	Header []string
	Rows   [][]string
}

// NewTableMatrix creates an empty matrix with the given dimensions.
func NewTableMatrix(rows, cols int) TableMatrix {
	m := TableMatrix{
		Header: DefaultHeader(cols),
		Rows:   make([][]string, rows),
	}
	for i := range m.Rows {
		m.Rows[i] = make([]string, cols)
	}
	return m
}

// DefaultHeader returns the placeholder header "Column 1".."Column n".
func DefaultHeader(n int) []string {
	header := make([]string, n)
	for i := range header {
		header[i] = fmt.Sprintf("Column %d", i+1)
	}
	return header
}

// RowCount returns the number of body rows.
func (m TableMatrix) RowCount() int { return len(m.Rows) }

// ColCount returns the header length.
func (m TableMatrix) ColCount() int { return len(m.Header) }

// Cell returns the text at (row, col), or an error when the index is outside
// the matrix.
func (m TableMatrix) Cell(row, col int) (string, error) {
	if row < 0 || row >= len(m.Rows) {
		return "", fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(m.Rows[row]) {
		return "", fmt.Errorf("column index %d out of bounds", col)
	}
	return m.Rows[row][col], nil
}

// SetCell sets the text at (row, col).
func (m TableMatrix) SetCell(row, col int, text string) error {
	if row < 0 || row >= len(m.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(m.Rows[row]) {
		return fmt.Errorf("column index %d out of bounds", col)
	}
	m.Rows[row][col] = text
	return nil
}

// Normalize pads or truncates every body row to the header length, making
// the matrix rectangular.
func (m *TableMatrix) Normalize() {
	n := len(m.Header)
	for i, row := range m.Rows {
		switch {
		case len(row) < n:
			padded := make([]string, n)
			copy(padded, row)
			m.Rows[i] = padded
		case len(row) > n:
			m.Rows[i] = row[:n]
		}
	}
}

// IsEmpty reports whether the matrix contains no non-blank body cell.
func (m TableMatrix) IsEmpty() bool {
	for _, row := range m.Rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return false
			}
		}
	}
	return true
}

// String renders the matrix as tab-separated lines, header first.
func (m TableMatrix) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(m.Header, "\t"))
	for _, row := range m.Rows {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(row, "\t"))
	}
	return sb.String()
}
