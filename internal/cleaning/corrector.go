package cleaning

import "math"

// correctAnomalies rewrites every flagged day in place and then enforces
// the non-negativity floor on the whole series.
//
// Flagged days are corrected one run at a time. A run bounded by unflagged
// days on both sides gets its totals re-drawn on the straight line between
// those anchors, which preserves the anchor totals exactly and gives each
// run day the same per-day delta. A run touching the series boundary
// extrapolates at the single available anchor's own delta rate, and a
// fully flagged series falls back to zero deltas.
//
// The floor pass runs last and unconditionally: every delta is rounded to
// a whole number and clamped at zero, and undefined values become zero.
// A day whose value the floor changes is marked corrected like any other
// overridden day.
func correctAnomalies(series []DailyRecord, flagged []bool) {
	if len(series) == 0 || len(series) != len(flagged) {
		return
	}

	for i := 0; i < len(series); {
		if !flagged[i] {
			i++
			continue
		}
		j := i
		for j+1 < len(series) && flagged[j+1] {
			j++
		}
		correctRun(series, i, j)
		i = j + 1
	}

	for k := range series {
		d := series[k].Delta
		if math.IsNaN(d) || math.IsInf(d, 0) {
			d = 0
			series[k].Note = NoteCorrected
		}
		rounded := math.Round(d)
		if rounded < 0 {
			series[k].Note = NoteCorrected
		}
		series[k].Delta = math.Max(0, rounded)
	}
}

// correctRun rewrites the flagged run series[i..j]. Runs are maximal, so
// series[i-1] and series[j+1] are unflagged anchors when they exist.
func correctRun(series []DailyRecord, i, j int) {
	left := i - 1
	right := j + 1
	hasLeft := left >= 0
	hasRight := right < len(series)

	switch {
	case hasLeft && hasRight:
		slope := (series[right].Total - series[left].Total) / float64(right-left)
		for k := i; k <= j; k++ {
			series[k].Total = series[left].Total + slope*float64(k-left)
			series[k].Delta = slope
		}
		series[right].Delta = series[right].Total - series[j].Total

	case hasLeft:
		rate := series[left].Delta
		for k := i; k <= j; k++ {
			series[k].Total = series[k-1].Total + rate
			series[k].Delta = rate
		}

	case hasRight:
		rate := series[right].Delta
		for k := i; k <= j; k++ {
			series[k].Total = math.Max(0, series[right].Total-rate*float64(right-k))
			series[k].Delta = rate
		}
		series[right].Delta = series[right].Total - series[j].Total

	default:
		for k := i; k <= j; k++ {
			series[k].Delta = 0
		}
	}

	for k := i; k <= j; k++ {
		series[k].Note = NoteCorrected
	}
}
