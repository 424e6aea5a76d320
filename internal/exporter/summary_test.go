package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesclean/internal/cleaning"
	"salesclean/internal/config"
)

// monthSpanFixture crosses a month boundary so grouping is exercised
func monthSpanFixture() []cleaning.DailyRecord {
	return []cleaning.DailyRecord{
		{Date: day(2024, 1, 30), Delta: 100, Observed: true, Note: cleaning.NoteObserved},
		{Date: day(2024, 1, 31), Delta: 300, Note: cleaning.NoteGapFill},
		{Date: day(2024, 2, 1), Delta: 200, Observed: true, Note: cleaning.NoteObserved},
		{Date: day(2024, 2, 2), Delta: 0, Note: cleaning.NoteCorrected},
		{Date: day(2024, 2, 3), Delta: 500, Observed: true, Note: cleaning.NoteObserved},
	}
}

func findMonth(t *testing.T, summaries []MonthlySummary, month string) MonthlySummary {
	t.Helper()
	for _, summary := range summaries {
		if summary.Month == month {
			return summary
		}
	}
	t.Fatalf("no summary for month %s", month)
	return MonthlySummary{}
}

func TestSummaryExporter_GenerateMonthlySummaries(t *testing.T) {
	exporter := NewSummaryExporter(config.PathsConfig{})

	summaries := exporter.GenerateMonthlySummaries(monthSpanFixture())
	require.Len(t, summaries, 2)

	january := findMonth(t, summaries, "2024-01")
	assert.Equal(t, 2, january.Days)
	assert.Equal(t, 1, january.ObservedDays)
	assert.Equal(t, 1, january.GapFilledDays)
	assert.Equal(t, 0, january.CorrectedDays)
	assert.Equal(t, 400.0, january.TotalSales)
	assert.Equal(t, 200.0, january.AverageDaily)
	assert.Equal(t, 300.0, january.PeakDaily)
	assert.Equal(t, "2024-01-31", january.PeakDate)

	february := findMonth(t, summaries, "2024-02")
	assert.Equal(t, 3, february.Days)
	assert.Equal(t, 2, february.ObservedDays)
	assert.Equal(t, 0, february.GapFilledDays)
	assert.Equal(t, 1, february.CorrectedDays)
	assert.Equal(t, 700.0, february.TotalSales)
	assert.InDelta(t, 233.33, february.AverageDaily, 0.01)
	assert.Equal(t, 500.0, february.PeakDaily)
	assert.Equal(t, "2024-02-03", february.PeakDate)
}

func TestSummaryExporter_GenerateMonthlySummaries_Empty(t *testing.T) {
	exporter := NewSummaryExporter(config.PathsConfig{})
	assert.Empty(t, exporter.GenerateMonthlySummaries(nil))
}

func TestSummaryExporter_GenerateMonthlySummaries_ZeroDeltas(t *testing.T) {
	exporter := NewSummaryExporter(config.PathsConfig{})

	series := []cleaning.DailyRecord{
		{Date: day(2024, 3, 1), Delta: 0, Note: cleaning.NoteCorrected},
		{Date: day(2024, 3, 2), Delta: 0, Note: cleaning.NoteCorrected},
	}

	summaries := exporter.GenerateMonthlySummaries(series)
	require.Len(t, summaries, 1)

	march := summaries[0]
	assert.Equal(t, 0.0, march.PeakDaily)
	assert.Equal(t, "2024-03-01", march.PeakDate) // first day wins when all deltas tie
}

func TestSummaryExporter_ExportMonthlySummary(t *testing.T) {
	tempDir := t.TempDir()
	exporter := NewSummaryExporter(config.PathsConfig{OutputDir: tempDir})

	summaries := exporter.GenerateMonthlySummaries(monthSpanFixture())
	require.NoError(t, exporter.ExportMonthlySummary(summaries, "sales_monthly.csv"))

	content, err := os.ReadFile(filepath.Join(tempDir, "sales_monthly.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Month,Days,ObservedDays,GapFilledDays,CorrectedDays,TotalSales,AverageDaily,PeakDaily,PeakDate", lines[0])
	assert.Equal(t, "2024-01,2,1,1,0,400.00,200.00,300.00,2024-01-31", lines[1])
	assert.Equal(t, "2024-02,3,2,0,1,700.00,233.33,500.00,2024-02-03", lines[2])
}

func TestSummaryExporter_ExportMonthlySummary_SortsMonths(t *testing.T) {
	tempDir := t.TempDir()
	exporter := NewSummaryExporter(config.PathsConfig{OutputDir: tempDir})

	// Deliberately out of order
	summaries := []MonthlySummary{
		{Month: "2024-03", Days: 1},
		{Month: "2024-01", Days: 1},
		{Month: "2024-02", Days: 1},
	}

	require.NoError(t, exporter.ExportMonthlySummary(summaries, "sorted.csv"))

	content, err := os.ReadFile(filepath.Join(tempDir, "sorted.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "2024-01,"))
	assert.True(t, strings.HasPrefix(lines[2], "2024-02,"))
	assert.True(t, strings.HasPrefix(lines[3], "2024-03,"))
}
