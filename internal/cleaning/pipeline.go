package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"salesclean/internal/anomaly"
)

// Pipeline runs the cleaning stages over one observation series
type Pipeline struct {
	cfg      Config
	detector anomaly.Detector
	logger   *slog.Logger
}

// NewPipeline builds a pipeline for the given configuration. A nil
// detector selects the seeded isolation forest from the configuration; a
// nil logger falls back to slog.Default(). Configuration problems,
// including an out-of-range contamination, surface here before any data
// is touched.
func NewPipeline(cfg Config, detector anomaly.Detector, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if detector == nil {
		detector = anomaly.NewIsolationForest(cfg.Trees, cfg.SampleSize, cfg.Seed)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, detector: detector, logger: logger}, nil
}

// Clean converts raw cumulative observations into a dense, corrected
// daily series. Stages run exactly once, in order: calendar layout, delta
// derivation, feature building, anomaly scoring, correction. Structural
// problems in the input (duplicate dates) abort the run with no partial
// output; data-quality problems (gaps, negative steps, spikes) are
// handled internally and accounted for in the summary.
//
// The run is deterministic: the same observations and configuration
// produce an identical series and summary every time.
func (p *Pipeline) Clean(ctx context.Context, observations []Observation) ([]DailyRecord, Summary, error) {
	runID := uuid.New().String()
	logger := p.logger.With(slog.String("run_id", runID))
	started := time.Now()

	logger.InfoContext(ctx, "Starting cleaning run",
		slog.Int("observations", len(observations)),
		slog.String("contamination", p.cfg.Contamination.String()),
		slog.String("detector", p.detector.Name()),
	)

	series, err := normalizeCalendar(observations)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("calendar normalization failed: %w", err)
	}
	if len(series) == 0 {
		logger.InfoContext(ctx, "No observations, nothing to clean")
		return []DailyRecord{}, Summary{}, nil
	}

	deriveDeltas(series)

	summary := Summary{Days: len(series), Observations: len(observations)}
	for i := range series {
		if series[i].Note == NoteGapFill {
			summary.GapFilled++
		}
	}

	features := buildFeatures(series, p.cfg.RollingWindow)
	scores, err := p.detector.Score(features)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("anomaly scoring failed: %w", err)
	}

	modelFlags := anomaly.FlagOutliers(scores, anomaly.FlagOptions{
		Auto:     p.cfg.Contamination.Auto,
		Fraction: p.cfg.Contamination.Fraction,
	})

	flagged := make([]bool, len(series))
	for i := range series {
		negative := series[i].Delta < 0
		if !modelFlags[i] && !negative {
			continue
		}
		flagged[i] = true

		source := FlagModel
		switch {
		case modelFlags[i] && negative:
			source = FlagBoth
			summary.ModelFlagged++
			summary.NegativeFlagged++
		case negative:
			source = FlagNegative
			summary.NegativeFlagged++
		default:
			summary.ModelFlagged++
		}
		summary.Flagged = append(summary.Flagged, FlaggedDay{
			Date:   series[i].Date,
			Delta:  series[i].Delta,
			Source: source,
		})
	}

	logger.DebugContext(ctx, "Anomaly flags selected",
		slog.Int("model_flagged", summary.ModelFlagged),
		slog.Int("negative_flagged", summary.NegativeFlagged),
	)

	correctAnomalies(series, flagged)

	for i := range series {
		if series[i].Note == NoteCorrected {
			summary.Corrected++
		}
	}

	logger.InfoContext(ctx, "Cleaning run complete",
		slog.Int("days", summary.Days),
		slog.Int("gap_filled", summary.GapFilled),
		slog.Int("model_flagged", summary.ModelFlagged),
		slog.Int("negative_flagged", summary.NegativeFlagged),
		slog.Int("corrected", summary.Corrected),
		slog.Duration("elapsed", time.Since(started)),
	)

	return series, summary, nil
}
