// Package anomaly provides outlier scoring for daily sales feature
// vectors. Detectors are interchangeable behind the Detector interface;
// the isolation forest is the primary implementation and a robust z-score
// detector serves as a lightweight alternative for short series.
//
// Scores are normalized to (0, 1]: higher means more anomalous, and 0.5
// is the natural "more likely anomalous than not" cut used in auto mode.
// Scoring is deterministic for a given configuration and input.
package anomaly

import (
	"fmt"
	"math"
	"sort"
)

// Feature matrix column layout produced by the cleaning pipeline
const (
	FeatureDelta       = 0 // Daily delta
	FeatureLag1        = 1 // Previous day's delta
	FeatureRollingMean = 2 // Trailing mean of deltas
	FeatureCount       = 3
)

// Detector scores a feature matrix for outlierness. Implementations must
// be deterministic: identical input and configuration yield identical
// scores on every call.
type Detector interface {
	// Name identifies the detector in logs and reports
	Name() string
	// Score returns one anomaly score per input row
	Score(features [][]float64) ([]float64, error)
}

// FlagOptions selects how scores are turned into anomaly flags
type FlagOptions struct {
	Auto     bool    // Use the detector's natural 0.5 threshold
	Fraction float64 // Expected anomalous fraction when Auto is false
}

// autoThreshold is the score cut applied in auto mode
const autoThreshold = 0.5

// FlagOutliers converts scores into per-row flags. In fixed-fraction mode
// the threshold is the linearly interpolated (1-fraction) quantile of the
// scores and only strictly greater scores are flagged, so a series whose
// scores all tie at the cut produces no flags. In auto mode any score
// above 0.5 is flagged.
func FlagOutliers(scores []float64, opts FlagOptions) []bool {
	flags := make([]bool, len(scores))
	if len(scores) == 0 {
		return flags
	}

	threshold := autoThreshold
	if !opts.Auto {
		threshold = quantile(scores, 1-opts.Fraction)
	}

	for i, s := range scores {
		if s > threshold {
			flags[i] = true
		}
	}
	return flags
}

// validateMatrix checks that the feature matrix is rectangular
func validateMatrix(features [][]float64) error {
	if len(features) == 0 {
		return nil
	}
	width := len(features[0])
	if width == 0 {
		return fmt.Errorf("feature rows must not be empty")
	}
	for i, row := range features {
		if len(row) != width {
			return fmt.Errorf("ragged feature matrix: row %d has %d columns, expected %d", i, len(row), width)
		}
	}
	return nil
}

// quantile returns the linearly interpolated q-th quantile of values.
// q is clamped to [0, 1]. values must be non-empty.
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// median returns the middle value of values, averaging the two middle
// values for even lengths. values must be non-empty.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
