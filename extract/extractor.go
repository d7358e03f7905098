// Package extract drives per-cell text extraction over a locked grid: each
// cell's quadrilateral is rectified into an axis-aligned crop, submitted to
// the OCR backend, and the recognized text assembled into a table matrix.
package extract

import (
	"image"

	"github.com/tsawler/gridocr/grid"
	"github.com/tsawler/gridocr/model"
	"github.com/tsawler/gridocr/ocr"
	"github.com/tsawler/gridocr/reader"
	"github.com/tsawler/gridocr/rectify"
)

// ProgressFunc is notified after each cell's OCR completes, successfully or
// not. row and col are the cell's matrix position.
type ProgressFunc func(row, col int, text string, err error)

// Extractor crops and recognizes individual grid cells.
type Extractor struct {
	backend    ocr.Backend
	displayMap rectify.DisplayMap
	progress   ProgressFunc
}

// NewExtractor creates an extractor around an OCR backend. Grid coordinates
// are assumed to be image coordinates; use SetDisplayMap when the grid was
// placed on a scaled, centered display surface.
func NewExtractor(backend ocr.Backend) *Extractor {
	return &Extractor{
		backend:    backend,
		displayMap: rectify.IdentityMap,
	}
}

// SetDisplayMap sets the display-to-image coordinate conversion applied to
// cell corners before cropping.
func (e *Extractor) SetDisplayMap(m rectify.DisplayMap) {
	e.displayMap = m
}

// OnCellDone registers a per-cell progress callback.
func (e *Extractor) OnCellDone(fn ProgressFunc) {
	e.progress = fn
}

// ExtractTable crops, rectifies, and recognizes every cell of a locked grid
// in row-major order, assembling the results into a table matrix with the
// default header. A failed cell records an empty string and extraction
// continues: failure is isolated per cell, never aborting the whole table.
// The grid must be locked.
func (e *Extractor) ExtractTable(img image.Image, g *grid.Grid) (model.TableMatrix, error) {
	cells, err := g.Cells()
	if err != nil {
		return model.TableMatrix{}, err
	}

	cols := g.CellColumns()
	if cols == 0 || len(cells) == 0 {
		return model.TableMatrix{Header: model.DefaultHeader(0)}, nil
	}
	// Cells carry their own matrix position; a ragged derivation (some rows
	// narrower than the widest) leaves the missing slots empty.
	rows := cells[len(cells)-1].Row + 1

	m := model.NewTableMatrix(rows, cols)
	for _, cell := range cells {
		text, cellErr := e.ExtractCell(img, cell)
		if cellErr != nil {
			text = ""
		}
		_ = m.SetCell(cell.Row, cell.Col, text)

		if e.progress != nil {
			e.progress(cell.Row, cell.Col, text, cellErr)
		}
	}
	return m, nil
}

// ExtractCell rectifies one cell's quadrilateral into a rectangular crop and
// recognizes its text, trimmed.
func (e *Extractor) ExtractCell(img image.Image, cell grid.Cell) (string, error) {
	tr, err := rectify.ComputeTransform(cell.Quad(), e.displayMap)
	if err != nil {
		return "", err
	}
	crop := rectify.Rectify(img, tr)

	data, err := reader.EncodePNG(crop)
	if err != nil {
		return "", err
	}

	text, err := e.backend.Text(data)
	if err != nil {
		return "", err
	}
	return ocr.CleanText(text), nil
}
