package exporter

import (
	"sort"

	"salesclean/internal/cleaning"
	"salesclean/internal/config"
)

// SummaryExporter handles monthly rollup report generation
type SummaryExporter struct {
	csvWriter *CSVWriter
}

// NewSummaryExporter creates a new summary report exporter
func NewSummaryExporter(paths config.PathsConfig) *SummaryExporter {
	return &SummaryExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// MonthlySummary represents rollup statistics for one calendar month
type MonthlySummary struct {
	Month         string
	Days          int
	ObservedDays  int
	GapFilledDays int
	CorrectedDays int
	TotalSales    float64
	AverageDaily  float64
	PeakDaily     float64
	PeakDate      string
}

// GenerateMonthlySummaries creates rollup statistics from a cleaned series
func (s *SummaryExporter) GenerateMonthlySummaries(series []cleaning.DailyRecord) []MonthlySummary {
	// Group by calendar month
	monthData := make(map[string][]cleaning.DailyRecord)
	for _, record := range series {
		monthKey := record.Date.Format("2006-01")
		monthData[monthKey] = append(monthData[monthKey], record)
	}

	var summaries []MonthlySummary
	for month, monthRecords := range monthData {
		summary := MonthlySummary{Month: month}

		var peakDate string
		peak := 0.0
		for _, record := range monthRecords {
			summary.Days++
			summary.TotalSales += record.Delta
			if record.Observed {
				summary.ObservedDays++
			}
			switch record.Note {
			case cleaning.NoteGapFill:
				summary.GapFilledDays++
			case cleaning.NoteCorrected:
				summary.CorrectedDays++
			}
			if record.Delta > peak || peakDate == "" {
				peak = record.Delta
				peakDate = record.Date.Format("2006-01-02")
			}
		}

		summary.AverageDaily = summary.TotalSales / float64(summary.Days)
		summary.PeakDaily = peak
		summary.PeakDate = peakDate

		summaries = append(summaries, summary)
	}

	return summaries
}

// ExportMonthlySummary exports the monthly rollup CSV sorted by month
func (s *SummaryExporter) ExportMonthlySummary(summaries []MonthlySummary, outputPath string) error {
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Month < summaries[j].Month
	})

	csvRecords := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		csvRecords = append(csvRecords, s.summaryToCSVRow(summary))
	}

	headers := []string{
		"Month", "Days", "ObservedDays", "GapFilledDays", "CorrectedDays",
		"TotalSales", "AverageDaily", "PeakDaily", "PeakDate",
	}

	return s.csvWriter.WriteSimpleCSV(outputPath, headers, csvRecords)
}

// summaryToCSVRow converts a monthly summary to a CSV row
func (s *SummaryExporter) summaryToCSVRow(summary MonthlySummary) []string {
	return []string{
		summary.Month,
		formatInt(int64(summary.Days)),
		formatInt(int64(summary.ObservedDays)),
		formatInt(int64(summary.GapFilledDays)),
		formatInt(int64(summary.CorrectedDays)),
		formatFloat(summary.TotalSales),
		formatFloat(summary.AverageDaily),
		formatFloat(summary.PeakDaily),
		summary.PeakDate,
	}
}
