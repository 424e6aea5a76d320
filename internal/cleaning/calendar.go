package cleaning

import (
	"sort"
	"time"
)

// dayGrain truncates a timestamp to midnight UTC. All calendar arithmetic
// in this package happens at day granularity.
func dayGrain(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// normalizeCalendar lays out one DailyRecord per calendar day from the
// earliest observation to the latest. Input order does not matter; the
// observations are sorted internally. Two observations on the same date
// make the series ambiguous and return DuplicateDateError. Days without
// an observation come back with zero values for later stages to fill.
func normalizeCalendar(observations []Observation) ([]DailyRecord, error) {
	if len(observations) == 0 {
		return nil, nil
	}

	sorted := make([]Observation, len(observations))
	copy(sorted, observations)
	for i := range sorted {
		sorted[i].Date = dayGrain(sorted[i].Date)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Date.Equal(sorted[i-1].Date) {
			return nil, &DuplicateDateError{Date: sorted[i].Date}
		}
	}

	first := sorted[0].Date
	last := sorted[len(sorted)-1].Date
	days := int(last.Sub(first).Hours()/24) + 1

	series := make([]DailyRecord, 0, days)
	next := 0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		record := DailyRecord{Date: day}
		if next < len(sorted) && sorted[next].Date.Equal(day) {
			record.Total = sorted[next].Total
			record.Observed = true
			next++
		}
		series = append(series, record)
	}
	return series, nil
}
