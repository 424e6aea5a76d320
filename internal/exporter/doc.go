// Package exporter provides CSV export functionality for cleaned sales series.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers, streaming,
// and UTF-8 BOM for Excel compatibility.
//
// SeriesExporter: Writes the cleaned daily series and the flagged-anomaly
// report. Series output uses ISO dates so it can be fed back through the
// loader unchanged.
//
// SummaryExporter: Generates monthly rollup statistics from a cleaned series
// and exports them as a summary CSV.
//
// Example usage:
//
//	seriesExporter := exporter.NewSeriesExporter(cfg.Paths)
//
//	// Export the cleaned series
//	err := seriesExporter.ExportSeries(series, "sales_corrected.csv")
//
//	// Export the flagged days
//	err = seriesExporter.ExportAnomalies(summary.Flagged, "sales_anomalies.csv")
//
//	// Build and export monthly rollups
//	summaryExporter := exporter.NewSummaryExporter(cfg.Paths)
//	rollups := summaryExporter.GenerateMonthlySummaries(series)
//	err = summaryExporter.ExportMonthlySummary(rollups, "sales_monthly.csv")
package exporter
