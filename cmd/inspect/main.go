package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"salesclean/internal/cleaning"
	"salesclean/internal/config"
	"salesclean/internal/dataprocessing"
	"salesclean/internal/infrastructure"
	"salesclean/internal/validation"
)

func main() {
	inPath := flag.String("in", "", "input CSV or XLSX file with Date and Total Sales columns")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureRunID(context.Background())
	logger := infrastructure.WithComponent(infrastructure.LoggerWithContext(ctx), "inspect")

	if *inPath == "" && flag.NArg() > 0 {
		*inPath = flag.Arg(0)
	}
	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -in <sales.csv|sales.xlsx>")
		os.Exit(1)
	}
	*inPath = cfg.Paths.ResolveInput(*inPath)

	logger.Info("Inspecting sales file", slog.String("input", *inPath))

	if err := validation.NewFileValidator(logger).ValidateInputFile(*inPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	observations, err := dataprocessing.Load(*inPath)
	if err != nil {
		infrastructure.WithError(logger, err).Error("Failed to load input file")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := buildReport(observations)
	printReport(os.Stdout, *inPath, report)

	logger.Info("Inspection complete",
		slog.Int("observations", report.Observations),
		slog.Int("duplicate_dates", len(report.Duplicates)),
		slog.Int("gaps", report.Gaps),
		slog.Int("negative_steps", report.NegativeSteps),
	)
}

// fileReport summarizes the raw observations of one input file before any
// cleaning runs. Duplicate dates and negative steps here are warnings about
// the source data, not pipeline output.
type fileReport struct {
	Observations  int
	First         time.Time
	Last          time.Time
	SpanDays      int
	Duplicates    []time.Time
	Gaps          int
	MissingDays   int
	LongestGap    int
	LongestStart  time.Time
	LongestEnd    time.Time
	NegativeSteps int
	LargestDrop   float64
	LargestDate   time.Time
}

// buildReport scans the observations in date order and collects counts of
// duplicate dates, calendar gaps and cumulative totals that move backwards.
func buildReport(observations []cleaning.Observation) fileReport {
	report := fileReport{Observations: len(observations)}
	if len(observations) == 0 {
		return report
	}

	sorted := make([]cleaning.Observation, len(observations))
	copy(sorted, observations)
	// Stable sort keeps file order for duplicate dates so the negative-step
	// scan sees the rows in the order they were recorded.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	report.First = sorted[0].Date
	report.Last = sorted[len(sorted)-1].Date
	report.SpanDays = int(report.Last.Sub(report.First).Hours()/24) + 1

	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1]
		curr := sorted[i]

		days := int(curr.Date.Sub(prev.Date).Hours() / 24)
		switch {
		case days == 0:
			report.Duplicates = append(report.Duplicates, curr.Date)
		case days > 1:
			missing := days - 1
			report.Gaps++
			report.MissingDays += missing
			if missing > report.LongestGap {
				report.LongestGap = missing
				report.LongestStart = prev.Date.AddDate(0, 0, 1)
				report.LongestEnd = curr.Date.AddDate(0, 0, -1)
			}
		}

		if drop := curr.Total - prev.Total; drop < 0 {
			report.NegativeSteps++
			if drop < report.LargestDrop {
				report.LargestDrop = drop
				report.LargestDate = curr.Date
			}
		}
	}

	return report
}

func printReport(w io.Writer, path string, report fileReport) {
	fmt.Fprintf(w, "File: %s\n", filepath.Base(path))
	fmt.Fprintf(w, "Observations: %d\n", report.Observations)
	if report.Observations == 0 {
		return
	}

	fmt.Fprintf(w, "Date range: %s .. %s (%d days)\n",
		report.First.Format("2006-01-02"), report.Last.Format("2006-01-02"), report.SpanDays)

	if len(report.Duplicates) == 0 {
		fmt.Fprintln(w, "Duplicate dates: none")
	} else {
		dates := make([]string, len(report.Duplicates))
		for i, d := range report.Duplicates {
			dates[i] = d.Format("2006-01-02")
		}
		fmt.Fprintf(w, "Duplicate dates: %d (%s)\n", len(dates), strings.Join(dates, ", "))
	}

	if report.Gaps == 0 {
		fmt.Fprintln(w, "Gaps: none")
	} else {
		fmt.Fprintf(w, "Gaps: %d covering %d missing days (longest %d days, %s .. %s)\n",
			report.Gaps, report.MissingDays, report.LongestGap,
			report.LongestStart.Format("2006-01-02"), report.LongestEnd.Format("2006-01-02"))
	}

	if report.NegativeSteps == 0 {
		fmt.Fprintln(w, "Negative steps: none")
	} else {
		fmt.Fprintf(w, "Negative steps: %d (largest %.2f on %s)\n",
			report.NegativeSteps, report.LargestDrop, report.LargestDate.Format("2006-01-02"))
	}
}
