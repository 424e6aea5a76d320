package anomaly

import (
	"fmt"
	"math"
)

// DefaultZScoreThreshold is the modified z-score magnitude that maps to
// the 0.5 auto-mode cut, following the Iglewicz-Hoaglin convention.
const DefaultZScoreThreshold = 3.5

// madScale rescales the median absolute deviation to be consistent with
// the standard deviation under normality.
const madScale = 0.6745

// RobustZScore scores rows by the modified z-score of the residual
// between a day's delta and its trailing mean, using median and MAD so a
// handful of extreme days cannot mask themselves. It needs no training
// subsample, which makes it the practical choice for very short series.
type RobustZScore struct {
	Threshold float64 // Modified z-score magnitude mapped to score 0.5
}

// NewRobustZScore builds a detector with the given threshold, falling
// back to the default when the value is not positive.
func NewRobustZScore(threshold float64) *RobustZScore {
	if threshold <= 0 {
		threshold = DefaultZScoreThreshold
	}
	return &RobustZScore{Threshold: threshold}
}

// Name identifies the detector in logs and reports
func (d *RobustZScore) Name() string {
	return "robust-zscore"
}

// Score maps each row's modified z-score m to 1 - 2^(-|m|/threshold), so
// a residual exactly at the threshold scores 0.5 and larger residuals
// approach 1. A series with zero spread scores 0 everywhere.
func (d *RobustZScore) Score(features [][]float64) ([]float64, error) {
	if err := validateMatrix(features); err != nil {
		return nil, fmt.Errorf("robust z-score: %w", err)
	}

	scores := make([]float64, len(features))
	if len(features) == 0 {
		return scores, nil
	}
	if len(features[0]) <= FeatureRollingMean {
		return nil, fmt.Errorf("robust z-score: need %d feature columns, got %d", FeatureCount, len(features[0]))
	}

	threshold := d.Threshold
	if threshold <= 0 {
		threshold = DefaultZScoreThreshold
	}

	residuals := make([]float64, len(features))
	for i, row := range features {
		residuals[i] = row[FeatureDelta] - row[FeatureRollingMean]
	}

	center := median(residuals)
	spread := medianAbsoluteDeviation(residuals, center)
	if spread == 0 {
		// Degenerate spread: every residual at the center is ordinary,
		// anything else is maximally surprising.
		for i, r := range residuals {
			if r != center {
				scores[i] = 1
			}
		}
		return scores, nil
	}

	for i, r := range residuals {
		m := madScale * (r - center) / spread
		scores[i] = 1 - math.Pow(2, -math.Abs(m)/threshold)
	}
	return scores, nil
}

// medianAbsoluteDeviation returns the median distance from center
func medianAbsoluteDeviation(values []float64, center float64) float64 {
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - center)
	}
	return median(deviations)
}
