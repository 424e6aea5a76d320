package exporter

import (
	"fmt"
	"math"

	"salesclean/internal/cleaning"
	"salesclean/internal/config"
)

// SeriesExporter handles cleaned daily series report generation
type SeriesExporter struct {
	csvWriter *CSVWriter
}

// NewSeriesExporter creates a new series report exporter
func NewSeriesExporter(paths config.PathsConfig) *SeriesExporter {
	return &SeriesExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// ExportSeries writes the cleaned daily series to a single CSV file.
// Dates are ISO so the file can be fed back through the loader.
func (e *SeriesExporter) ExportSeries(series []cleaning.DailyRecord, outputPath string) error {
	csvRecords := make([][]string, 0, len(series))
	for _, record := range series {
		csvRecords = append(csvRecords, e.recordToCSVRow(record))
	}

	// No BOM here so the file stays friendly to analysis tools and reloads
	return e.csvWriter.WriteCSV(outputPath, WriteOptions{
		Headers:   e.getHeaders(),
		Records:   csvRecords,
		Append:    false,
		BOMPrefix: false,
	})
}

// ExportSeriesStreaming writes the series row by row for very long runs
func (e *SeriesExporter) ExportSeriesStreaming(series []cleaning.DailyRecord, outputPath string) error {
	stream, err := e.csvWriter.CreateStreamWriter(outputPath, e.getHeaders())
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	for i, record := range series {
		if err := stream.WriteRecord(e.recordToCSVRow(record)); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write day %d: %w", i, err)
		}
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}
	return nil
}

// ExportAnomalies writes the flagged-day report. Deltas here are the
// pre-correction values, so fractional gap-fill amounts survive.
func (e *SeriesExporter) ExportAnomalies(flagged []cleaning.FlaggedDay, outputPath string) error {
	csvRecords := make([][]string, 0, len(flagged))
	for _, day := range flagged {
		csvRecords = append(csvRecords, e.flaggedToCSVRow(day))
	}

	headers := []string{"Date", "Daily_Sales", "Source"}
	return e.csvWriter.WriteSimpleCSV(outputPath, headers, csvRecords)
}

// getHeaders returns the CSV headers for the cleaned series
func (e *SeriesExporter) getHeaders() []string {
	return []string{"Date", "Total Sales", "Daily_Sales", "Notes"}
}

// recordToCSVRow converts one day of the series to a CSV row. Totals keep
// two decimals, deltas are whole numbers.
func (e *SeriesExporter) recordToCSVRow(record cleaning.DailyRecord) []string {
	return []string{
		record.Date.Format("2006-01-02"),
		formatFloat(record.Total),
		formatInt(int64(math.Round(record.Delta))),
		string(record.Note),
	}
}

// flaggedToCSVRow converts a flagged day to a CSV row
func (e *SeriesExporter) flaggedToCSVRow(day cleaning.FlaggedDay) []string {
	return []string{
		day.Date.Format("2006-01-02"),
		formatFloat(day.Delta),
		string(day.Source),
	}
}
