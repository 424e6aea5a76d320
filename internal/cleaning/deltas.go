package cleaning

import "math"

// openingAnchor returns the cumulative total assumed for the day before
// the series starts. The counter is treated as starting from zero, so the
// first observed day's delta equals its own total. Isolated here so the
// opening policy can change without touching the derivation.
func openingAnchor(series []DailyRecord) float64 {
	return 0
}

// deriveDeltas converts the sparse cumulative totals into per-day deltas,
// in place. Days between two observations share the span's total change
// evenly: each interior day gets the rounded per-day rate and a running
// total on the straight line between the anchors, while the closing
// observation keeps its exact total and absorbs the rounding remainder in
// its own delta. A decreasing total produces a negative delta; that is a
// signal for the detector, never an error here.
func deriveDeltas(series []DailyRecord) {
	if len(series) == 0 {
		return
	}

	prevTotal := openingAnchor(series)
	prevIdx := -1
	for i := range series {
		if !series[i].Observed {
			continue
		}
		span := i - prevIdx
		perDay := (series[i].Total - prevTotal) / float64(span)
		for k := 1; k < span; k++ {
			series[prevIdx+k].Total = prevTotal + perDay*float64(k)
			series[prevIdx+k].Delta = math.Round(perDay)
			series[prevIdx+k].Note = NoteGapFill
		}
		series[i].Delta = series[i].Total - (prevTotal + perDay*float64(span-1))
		series[i].Note = NoteObserved
		prevTotal = series[i].Total
		prevIdx = i
	}
}
