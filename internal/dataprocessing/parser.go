package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"salesclean/internal/cleaning"
)

// Input column names. Files may carry extra columns; these two must exist.
const (
	ColumnTotal = "Total Sales"
	ColumnDate  = "Date"
)

// ParseError reports a malformed cell or row in an input file. Unlike
// data-quality problems, which the pipeline absorbs, a row that cannot be
// read at all stops the load.
type ParseError struct {
	File  string
	Line  int
	Field string
	Err   error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s line %d: %s: %v", filepath.Base(e.File), e.Line, e.Field, e.Err)
}

// Unwrap exposes the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads observations from a CSV or XLSX file, dispatching on the
// file extension.
func Load(path string) ([]cleaning.Observation, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q: expected .csv or .xlsx", filepath.Ext(path))
	}
}

// LoadCSV reads cumulative sales observations from a CSV file. The first
// row must be a header naming the Total Sales and Date columns; rows
// after it become observations. A row that cannot be parsed is fatal.
func LoadCSV(path string) ([]cleaning.Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV records: %w", err)
	}

	return parseRows(path, records)
}

// parseRows converts raw rows into observations. The first non-empty row
// is the header; remaining non-empty rows are data.
func parseRows(path string, rows [][]string) ([]cleaning.Observation, error) {
	start := 0
	for start < len(rows) && isEmptyRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, fmt.Errorf("%s: empty input file", filepath.Base(path))
	}

	totalIdx, dateIdx, err := locateColumns(path, rows[start])
	if err != nil {
		return nil, err
	}

	var observations []cleaning.Observation
	for i := start + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		obs, err := parseObservationRow(path, row, i+1, totalIdx, dateIdx)
		if err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

// locateColumns finds the required columns in the header row
func locateColumns(path string, header []string) (totalIdx, dateIdx int, err error) {
	totalIdx, dateIdx = -1, -1
	for i, cell := range header {
		switch strings.TrimSpace(stripBOM(cell)) {
		case ColumnTotal:
			totalIdx = i
		case ColumnDate:
			dateIdx = i
		}
	}
	if totalIdx < 0 || dateIdx < 0 {
		return 0, 0, fmt.Errorf("%s: input must contain %q and %q columns", filepath.Base(path), ColumnTotal, ColumnDate)
	}
	return totalIdx, dateIdx, nil
}

// parseObservationRow parses one data row into an observation
func parseObservationRow(path string, row []string, lineNum, totalIdx, dateIdx int) (cleaning.Observation, error) {
	if len(row) <= totalIdx || len(row) <= dateIdx {
		return cleaning.Observation{}, &ParseError{
			File:  path,
			Line:  lineNum,
			Field: "row",
			Err:   fmt.Errorf("expected at least %d columns, got %d", max(totalIdx, dateIdx)+1, len(row)),
		}
	}

	date, err := parseDate(strings.TrimSpace(row[dateIdx]))
	if err != nil {
		return cleaning.Observation{}, &ParseError{File: path, Line: lineNum, Field: "date", Err: err}
	}

	total, err := parseTotal(row[totalIdx])
	if err != nil {
		return cleaning.Observation{}, &ParseError{File: path, Line: lineNum, Field: "total sales", Err: err}
	}

	return cleaning.Observation{Date: date, Total: total}, nil
}

// parseDate accepts the reporting format MM/DD/YYYY and the ISO form the
// exporter writes, so corrected output can be fed back in.
func parseDate(value string) (time.Time, error) {
	formats := []string{
		"1/2/2006",   // US format, padded or not
		"2006-01-02", // ISO format
	}
	for _, format := range formats {
		if date, err := time.Parse(format, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q", value)
}

// parseTotal parses a cumulative total, tolerating thousands separators
func parseTotal(value string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty value")
	}
	total, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse total %q", strings.TrimSpace(value))
	}
	return total, nil
}

// isEmptyRow reports whether every cell is blank
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// stripBOM removes a UTF-8 byte order mark from the first header cell
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
