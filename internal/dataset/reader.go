// Package dataset loads numeric point sets from CSV and Excel files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Format is the on-disk layout of a point set.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrNoRows is returned when a file holds no data rows.
var ErrNoRows = errors.New("dataset: no data rows")

// Reader loads one point set. Each row is a point and each column a
// coordinate; an optional non-numeric header row is skipped.
type Reader struct {
	path   string
	format Format
	logger *slog.Logger
}

// NewReader picks the format from the file extension: ".xlsx" is read as an
// Excel workbook, anything else as CSV.
func NewReader(path string, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	format := FormatCSV
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		format = FormatXLSX
	}
	return &Reader{path: path, format: format, logger: logger}
}

// Format returns the detected file format.
func (r *Reader) Format() Format { return r.format }

// Read loads the file into a slice of points.
func (r *Reader) Read() ([][]float64, error) {
	start := time.Now()

	var rows [][]string
	var err error
	switch r.format {
	case FormatXLSX:
		rows, err = r.readXLSX()
	default:
		rows, err = r.readCSV()
	}
	if err != nil {
		return nil, err
	}

	points, err := ParseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", r.path, err)
	}

	dims := 0
	if len(points) > 0 {
		dims = len(points[0])
	}
	r.logger.Debug("point set loaded",
		slog.String("path", r.path),
		slog.String("format", string(r.format)),
		slog.Int("rows", len(points)),
		slog.Int("dims", dims),
		slog.Duration("elapsed", time.Since(start)),
	)
	return points, nil
}

func (r *Reader) readCSV() ([][]string, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read CSV file %s: %w", r.path, err)
	}
	return rows, nil
}

// readXLSX reads the first sheet of the workbook.
func (r *Reader) readXLSX() ([][]string, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("dataset: %s: workbook has no sheets: %w", r.path, ErrNoRows)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("dataset: read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// ParseRows converts raw string rows into points. Blank rows are skipped.
// When the first non-blank row has a non-numeric cell it is treated as a
// header. Every remaining row must have the same number of numeric cells.
func ParseRows(rows [][]string) ([][]float64, error) {
	var points [][]float64
	headerChecked := false
	dims := -1

	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		point, col, err := parseRow(row)
		if err != nil {
			if !headerChecked {
				headerChecked = true
				continue
			}
			return nil, fmt.Errorf("row %d, column %d: %w", i+1, col+1, err)
		}
		headerChecked = true

		if dims == -1 {
			dims = len(point)
		} else if len(point) != dims {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i+1, len(point), dims)
		}
		points = append(points, point)
	}

	if len(points) == 0 {
		return nil, ErrNoRows
	}
	return points, nil
}

// parseRow parses every cell of row, returning the index of the first cell
// that fails.
func parseRow(row []string) ([]float64, int, error) {
	point := make([]float64, len(row))
	for j, cell := range row {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, j, fmt.Errorf("parse %q: %w", cell, err)
		}
		point[j] = v
	}
	return point, 0, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
