package cleaning

// buildFeatures projects the series into the detector's feature space.
// Each day contributes its delta, the previous day's delta (zero on the
// first day), and the trailing mean of deltas over the window ending on
// that day. The window is strictly causal and shrinks at the start of the
// series, so early days average over what exists.
func buildFeatures(series []DailyRecord, window int) [][]float64 {
	if window < 1 {
		window = 1
	}

	features := make([][]float64, len(series))
	for i := range series {
		lag := 0.0
		if i > 0 {
			lag = series[i-1].Delta
		}

		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for j := start; j <= i; j++ {
			sum += series[j].Delta
		}
		mean := sum / float64(i-start+1)

		features[i] = []float64{series[i].Delta, lag, mean}
	}
	return features
}
