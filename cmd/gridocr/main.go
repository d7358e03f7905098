// Package main provides the gridocr command line interface: OCR a
// photographed table into tab-separated text, extract it cell-by-cell
// through a grid, or rectify a skewed page region.
package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/gridocr"
	"github.com/tsawler/gridocr/grid"
	"github.com/tsawler/gridocr/internal/config"
	"github.com/tsawler/gridocr/internal/logging"
	"github.com/tsawler/gridocr/layout"
	"github.com/tsawler/gridocr/model"
	"github.com/tsawler/gridocr/ocr"
	"github.com/tsawler/gridocr/reader"
	"github.com/tsawler/gridocr/rectify"
)

var (
	logger = logging.NewLogger("gridocr")

	outputPath string
	columns    int
	rows       int
	cols       int
	corners    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridocr",
		Short: "Digitize photographed tables with OCR",
		Long: `gridocr reconstructs tabular text from a photographed table. It can OCR
the whole image and infer rows and columns heuristically, overlay an evenly
spaced grid and OCR each cell, or rectify a skewed page region into an
axis-aligned image.`,
		SilenceUsage: true,
	}

	tableCmd := &cobra.Command{
		Use:   "table [image]",
		Short: "OCR the whole image and reconstruct the table heuristically",
		Args:  cobra.ExactArgs(1),
		RunE:  runTable,
	}
	tableCmd.Flags().IntVar(&columns, "columns", 4, "Number of column bands to assume")
	tableCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")

	cellsCmd := &cobra.Command{
		Use:   "cells [image]",
		Short: "Overlay an evenly spaced grid and OCR each cell",
		Args:  cobra.ExactArgs(1),
		RunE:  runCells,
	}
	cellsCmd.Flags().IntVar(&rows, "rows", 4, "Number of grid rows")
	cellsCmd.Flags().IntVar(&cols, "cols", 4, "Number of grid columns")
	cellsCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")

	rectifyCmd := &cobra.Command{
		Use:   "rectify [image]",
		Short: "Warp a four-corner region into an axis-aligned image",
		Long: `rectify maps a quadrilateral region of the image onto an axis-aligned
rectangle, correcting camera skew. Corners are given as --corners
"x,y;x,y;x,y;x,y" in top-left, top-right, bottom-right, bottom-left order
(default: the full image).`,
		Args: cobra.ExactArgs(1),
		RunE: runRectify,
	}
	rectifyCmd.Flags().StringVar(&corners, "corners", "", "Region corners as \"x,y;x,y;x,y;x,y\" (TL;TR;BR;BL)")
	rectifyCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output image path (default: <input>_cropped.png)")

	rootCmd.AddCommand(tableCmd, cellsCmd, rectifyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newBackend(cfg *config.Config) (*ocr.Client, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	if cfg.Language != "" {
		if err := client.SetLanguage(cfg.Language); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set language %q: %w", cfg.Language, err)
		}
	}
	return client, nil
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	im, err := reader.Load(args[0])
	if err != nil {
		return err
	}
	data, err := reader.EncodePNG(im.Raster)
	if err != nil {
		return err
	}

	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	logger.Info("starting whole-image OCR", "image", args[0], "columns", columns)

	session := gridocr.NewSession(backend)
	session.WithLayout(layoutConfig())

	for ev := range session.RunTable(context.Background(), data, float64(im.Width())) {
		switch ev.Kind {
		case gridocr.EventCompleted:
			return writeMatrix(cfg, ev.Matrix)
		case gridocr.EventNoResults:
			return fmt.Errorf("no table data could be extracted from %s", args[0])
		case gridocr.EventFailed:
			return ev.Err
		}
	}
	return nil
}

func runCells(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	im, err := reader.Load(args[0])
	if err != nil {
		return err
	}

	g := grid.New()
	g.SetRegion(grid.Region{
		Width:  float64(im.Width()),
		Height: float64(im.Height()),
	})
	g.CreateLines(rows, cols)
	g.Lock()

	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	logger.Info("starting per-cell OCR", "image", args[0], "rows", rows, "cols", cols)

	session := gridocr.NewSession(backend)
	for ev := range session.RunCells(context.Background(), im.Raster, g) {
		switch ev.Kind {
		case gridocr.EventCellDone:
			if ev.Err != nil {
				logger.Warn("cell OCR failed", "row", ev.Row, "col", ev.Col, "error", ev.Err)
			}
		case gridocr.EventCompleted:
			return writeMatrix(cfg, ev.Matrix)
		case gridocr.EventNoResults:
			return fmt.Errorf("grid over %s produced no cells", args[0])
		case gridocr.EventFailed:
			return ev.Err
		}
	}
	return nil
}

func runRectify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	im, err := reader.Load(args[0])
	if err != nil {
		return err
	}

	quad, err := parseCorners(corners, im.Raster.Bounds())
	if err != nil {
		return err
	}

	tr, err := rectify.ComputeTransform(quad, rectify.IdentityMap)
	if err != nil {
		return err
	}
	out := rectify.Rectify(im.Raster, tr)

	path := outputPath
	if path == "" {
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		path = filepath.Join(cfg.OutputDir, base+"_cropped.png")
	}

	data, err := reader.EncodePNG(out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("corrected image saved", "path", path, "width", tr.Width, "height", tr.Height)
	return nil
}

// parseCorners parses "x,y;x,y;x,y;x,y" in TL;TR;BR;BL order, defaulting to
// the full image bounds when unset.
func parseCorners(s string, bounds image.Rectangle) (model.Quad, error) {
	if s == "" {
		w := float64(bounds.Dx())
		h := float64(bounds.Dy())
		return model.Quad{
			TL: model.Point{X: 0, Y: 0},
			TR: model.Point{X: w, Y: 0},
			BR: model.Point{X: w, Y: h},
			BL: model.Point{X: 0, Y: h},
		}, nil
	}

	parts := strings.Split(s, ";")
	if len(parts) != 4 {
		return model.Quad{}, fmt.Errorf("corners must have 4 points, got %d", len(parts))
	}
	var pts [4]model.Point
	for i, part := range parts {
		xy := strings.Split(strings.TrimSpace(part), ",")
		if len(xy) != 2 {
			return model.Quad{}, fmt.Errorf("corner %d: want \"x,y\", got %q", i+1, part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return model.Quad{}, fmt.Errorf("corner %d: %w", i+1, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return model.Quad{}, fmt.Errorf("corner %d: %w", i+1, err)
		}
		pts[i] = model.Point{X: x, Y: y}
	}
	return model.Quad{TL: pts[0], TR: pts[1], BR: pts[2], BL: pts[3]}, nil
}

func layoutConfig() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.Columns = columns
	return cfg
}

func writeMatrix(cfg *config.Config, m model.TableMatrix) error {
	out := m.String() + "\n"
	if outputPath != "" {
		path := outputPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.OutputDir, path)
		}
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("table written", "path", path, "rows", m.RowCount(), "cols", m.ColCount())
		return nil
	}
	fmt.Print(out)
	return nil
}
