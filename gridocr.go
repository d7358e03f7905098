// Package gridocr digitizes photographed tables: it overlays an adjustable
// grid on an image, rectifies skewed regions into axis-aligned rectangles,
// and reconstructs tabular text from OCR word boxes.
//
// The interactive pieces live in subpackages: [grid] models draggable guide
// lines and derives cells, [rectify] performs four-point perspective
// correction, [layout] reconstructs rows and columns from unstructured word
// boxes, and [extract] assembles a table matrix from per-cell OCR over a
// locked grid.
//
// This package ties them together behind an asynchronous session. OCR is
// the only latent operation in the system; a session dispatches it off the
// caller's goroutine and reports progress and outcomes over an event
// channel:
//
//	session := gridocr.NewSession(backend)
//	for ev := range session.RunTable(ctx, imageBytes, pageWidth) {
//	    switch ev.Kind {
//	    case gridocr.EventCompleted:
//	        fmt.Println(ev.Matrix)
//	    case gridocr.EventFailed:
//	        log.Fatal(ev.Err)
//	    }
//	}
//
// Exactly one terminal event (Completed, NoResults, or Failed) is delivered
// per run, after which the channel is closed.
package gridocr

import (
	"context"
	"errors"
	"image"
	"slices"

	"github.com/tsawler/gridocr/extract"
	"github.com/tsawler/gridocr/grid"
	"github.com/tsawler/gridocr/layout"
	"github.com/tsawler/gridocr/model"
	"github.com/tsawler/gridocr/ocr"
	"github.com/tsawler/gridocr/rectify"
)

// EventKind identifies the outcome or progress notification an Event
// carries.
type EventKind int

const (
	// EventStarted is emitted once, before the first OCR call.
	EventStarted EventKind = iota

	// EventCellDone reports one cell's OCR completion (Row, Col, Text, and
	// Err for a failed cell) during per-cell extraction.
	EventCellDone

	// EventCompleted is terminal: Matrix holds the reconstructed table.
	EventCompleted

	// EventNoResults is terminal: OCR succeeded but recognized nothing.
	EventNoResults

	// EventFailed is terminal: Err holds the failure.
	EventFailed
)

// String returns a string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventCellDone:
		return "cell"
	case EventCompleted:
		return "completed"
	case EventNoResults:
		return "no-results"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is one notification from an OCR run.
type Event struct {
	Kind   EventKind
	Row    int
	Col    int
	Text   string
	Matrix model.TableMatrix
	Err    error
}

// Session runs OCR extractions asynchronously against one backend.
type Session struct {
	backend    ocr.Backend
	layoutCfg  layout.Config
	displayMap rectify.DisplayMap
}

// NewSession creates a session around an OCR backend with default layout
// heuristics.
func NewSession(backend ocr.Backend) *Session {
	return &Session{
		backend:    backend,
		layoutCfg:  layout.DefaultConfig(),
		displayMap: rectify.IdentityMap,
	}
}

// WithLayout overrides the layout reconstruction heuristics.
func (s *Session) WithLayout(cfg layout.Config) *Session {
	s.layoutCfg = cfg
	return s
}

// WithDisplayMap sets the display-to-image conversion applied to grid cell
// corners during per-cell extraction.
func (s *Session) WithDisplayMap(m rectify.DisplayMap) *Session {
	s.displayMap = m
	return s
}

// RunTable dispatches whole-image OCR and heuristic table reconstruction.
// pageWidth is the page-level width the column bands should span (typically
// the image width in pixels). The returned channel delivers EventStarted,
// then exactly one terminal event, then closes.
func (s *Session) RunTable(ctx context.Context, imageBytes []byte, pageWidth float64) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		if !emit(ctx, events, Event{Kind: EventStarted}) {
			return
		}

		words, err := s.backend.Words(imageBytes)
		if err != nil {
			if errors.Is(err, ocr.ErrNoWords) {
				emit(ctx, events, Event{Kind: EventNoResults})
			} else {
				emit(ctx, events, Event{Kind: EventFailed, Err: err})
			}
			return
		}

		m := layout.NewReconstructorWithConfig(s.layoutCfg).Reconstruct(words, pageWidth)
		// Reconstruction signals "nothing recognized" with the default
		// header and an empty body. A recognized header with no body rows
		// is a valid one-line table and completes normally.
		if m.RowCount() == 0 && slices.Equal(m.Header, model.DefaultHeader(len(m.Header))) {
			emit(ctx, events, Event{Kind: EventNoResults})
			return
		}
		emit(ctx, events, Event{Kind: EventCompleted, Matrix: m})
	}()

	return events
}

// RunCells dispatches per-cell OCR over a locked grid. Cells are submitted
// sequentially in row-major order; each completion is reported as an
// EventCellDone, with a per-cell failure recorded as an empty cell rather
// than a terminal failure. Cancelling the context stops submission of
// further cells (an in-flight OCR call runs to completion) and terminates
// the run with EventFailed carrying the context error.
func (s *Session) RunCells(ctx context.Context, img image.Image, g *grid.Grid) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		if !emit(ctx, events, Event{Kind: EventStarted}) {
			return
		}

		cells, err := g.Cells()
		if err != nil {
			emit(ctx, events, Event{Kind: EventFailed, Err: err})
			return
		}
		cols := g.CellColumns()
		if cols == 0 || len(cells) == 0 {
			emit(ctx, events, Event{Kind: EventNoResults})
			return
		}
		rows := cells[len(cells)-1].Row + 1

		e := extract.NewExtractor(s.backend)
		e.SetDisplayMap(s.displayMap)

		m := model.NewTableMatrix(rows, cols)
		for _, cell := range cells {
			if ctx.Err() != nil {
				emit(ctx, events, Event{Kind: EventFailed, Err: ctx.Err()})
				return
			}

			text, cellErr := e.ExtractCell(img, cell)
			if cellErr != nil {
				text = ""
			}
			_ = m.SetCell(cell.Row, cell.Col, text)

			if !emit(ctx, events, Event{Kind: EventCellDone, Row: cell.Row, Col: cell.Col, Text: text, Err: cellErr}) {
				return
			}
		}

		emit(ctx, events, Event{Kind: EventCompleted, Matrix: m})
	}()

	return events
}

// emit sends an event unless the context is already done. It returns false
// when the send was abandoned.
func emit(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
