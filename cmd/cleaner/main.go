package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"salesclean/internal/anomaly"
	"salesclean/internal/cleaning"
	"salesclean/internal/config"
	"salesclean/internal/dataprocessing"
	"salesclean/internal/exporter"
	"salesclean/internal/infrastructure"
	"salesclean/internal/validation"
)

func main() {
	inPath := flag.String("in", "", "input CSV or XLSX file with Date and Total Sales columns (prompted for when empty)")
	outPath := flag.String("out", "", "output CSV for the cleaned series (defaults to <input>"+config.CorrectedFileSuffix+")")
	anomaliesPath := flag.String("anomalies", "", "output CSV for flagged days (defaults to <input>"+config.AnomalyFileSuffix+")")
	monthlyPath := flag.String("monthly", "", "optional output CSV for monthly rollups")
	contamination := flag.String("contamination", "", `expected anomaly fraction or "auto" (overrides config)`)
	window := flag.Int("window", 0, "rolling mean window in days (overrides config)")
	seed := flag.Int64("seed", 0, "detector RNG seed (overrides config)")
	detectorName := flag.String("detector", "", "detector: isolation-forest | robust-zscore (overrides config)")
	flag.Parse()

	// Load layered configuration; the tool still runs without a config file
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	// Flags that were given explicitly win over config
	seen := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	if seen["contamination"] {
		cfg.Cleaning.Contamination = *contamination
	}
	if seen["window"] {
		cfg.Cleaning.RollingWindow = *window
	}
	if seen["seed"] {
		cfg.Cleaning.Seed = *seed
	}
	if seen["detector"] {
		cfg.Cleaning.Detector = *detectorName
	}

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	// Ask once for the input file when no flag was given
	if *inPath == "" {
		*inPath = promptForInput(os.Stdin, os.Stdout)
	}
	if *inPath == "" {
		logger.Error("No input file given")
		fmt.Fprintln(os.Stderr, "error: no input file given")
		os.Exit(1)
	}
	*inPath = cfg.Paths.ResolveInput(*inPath)

	if *outPath == "" {
		*outPath = derivedPath(*inPath, config.CorrectedFileSuffix)
	}
	if *anomaliesPath == "" {
		*anomaliesPath = derivedPath(*inPath, config.AnomalyFileSuffix)
	}

	// Fail fast on bad paths before any parsing or cleaning work
	fileValidator := validation.NewFileValidator(logger)
	if err := fileValidator.ValidateInputFile(*inPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := fileValidator.ValidateOutputDirectory(filepath.Dir(cfg.Paths.ResolveOutput(*outPath))); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting sales series cleaning",
		slog.String("input", *inPath),
		slog.String("output", *outPath),
		slog.String("anomalies", *anomaliesPath),
		slog.String("contamination", cfg.Cleaning.Contamination),
		slog.String("detector", cfg.Cleaning.Detector))

	observations, err := dataprocessing.Load(*inPath)
	if err != nil {
		logger.Error("Failed to load input file",
			slog.String("path", *inPath),
			slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Observations loaded", slog.Int("count", len(observations)))
	fmt.Printf("Loaded %d observations from %s\n", len(observations), filepath.Base(*inPath))

	pipelineCfg, err := cfg.Cleaning.ToPipelineConfig()
	if err != nil {
		logger.Error("Invalid cleaning configuration", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	detector, err := buildDetector(cfg.Cleaning)
	if err != nil {
		logger.Error("Invalid detector configuration", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	pipeline, err := cleaning.NewPipeline(pipelineCfg, detector, logger)
	if err != nil {
		logger.Error("Failed to build pipeline", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	series, summary, err := pipeline.Clean(context.Background(), observations)
	if err != nil {
		logger.Error("Cleaning failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	seriesExporter := exporter.NewSeriesExporter(cfg.Paths)
	if err := seriesExporter.ExportSeries(series, *outPath); err != nil {
		logger.Error("Failed to write cleaned series",
			slog.String("path", *outPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := seriesExporter.ExportAnomalies(summary.Flagged, *anomaliesPath); err != nil {
		logger.Error("Failed to write anomaly report",
			slog.String("path", *anomaliesPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *monthlyPath != "" {
		summaryExporter := exporter.NewSummaryExporter(cfg.Paths)
		rollups := summaryExporter.GenerateMonthlySummaries(series)
		if err := summaryExporter.ExportMonthlySummary(rollups, *monthlyPath); err != nil {
			logger.Error("Failed to write monthly rollup",
				slog.String("path", *monthlyPath),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("Monthly rollup written to %s\n", *monthlyPath)
	}

	logger.Info("Cleaning complete",
		slog.Int("days", summary.Days),
		slog.Int("observations", summary.Observations),
		slog.Int("gap_filled", summary.GapFilled),
		slog.Int("model_flagged", summary.ModelFlagged),
		slog.Int("negative_flagged", summary.NegativeFlagged),
		slog.Int("corrected", summary.Corrected))

	fmt.Printf("Cleaned series written to %s\n", *outPath)
	fmt.Printf("Anomaly report written to %s\n", *anomaliesPath)
	fmt.Printf("Days: %d (observed %d, gap-filled %d)\n", summary.Days, summary.Observations, summary.GapFilled)
	fmt.Printf("Flagged: %d by model, %d negative; corrected %d days\n",
		summary.ModelFlagged, summary.NegativeFlagged, summary.Corrected)
}

// promptForInput asks once for the input path when the flag is empty
func promptForInput(in io.Reader, out io.Writer) string {
	fmt.Fprint(out, "Enter input file path: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// derivedPath builds an output path next to the input file by swapping
// the extension for a suffix.
func derivedPath(inputPath, suffix string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + suffix
}

// buildDetector constructs the configured anomaly detector
func buildDetector(cfg config.CleaningConfig) (anomaly.Detector, error) {
	switch cfg.Detector {
	case config.DetectorIsolationForest, "":
		return anomaly.NewIsolationForest(cfg.Trees, cfg.SampleSize, cfg.Seed), nil
	case config.DetectorRobustZScore:
		return anomaly.NewRobustZScore(anomaly.DefaultZScoreThreshold), nil
	default:
		return nil, fmt.Errorf("unknown detector %q", cfg.Detector)
	}
}
