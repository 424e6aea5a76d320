// Package cleaning converts sparse, noisy observations of a cumulative
// sales counter into a dense, corrected daily sales series.
//
// Input is a handful of (date, running total) readings taken on irregular
// days. Output is one record per calendar day between the first and last
// reading, each carrying the day's cumulative total, the sales delta
// attributed to that day, and a provenance note saying whether the value
// was observed, synthesized inside a gap, or rewritten by the corrector.
//
// # Stages
//
// A cleaning run is a single pass through five stages:
//
//  1. Calendar layout: observations are sorted, duplicate dates rejected,
//     and the series densified to one record per day.
//  2. Delta derivation: cumulative totals become per-day deltas. Days
//     inside an observation gap share the span's change evenly, with the
//     closing observation keeping its exact total.
//  3. Feature building: each day is described by its delta, the previous
//     day's delta, and a trailing mean over a configurable window.
//  4. Anomaly flagging: an isolation forest scores the features and the
//     configured contamination picks the flagging threshold. Negative
//     deltas are always flagged regardless of score.
//  5. Correction: flagged days are re-drawn by linear interpolation of
//     totals between unflagged neighbors, then every delta is rounded
//     and floored at zero.
//
// # Failure model
//
// Structural input problems are errors and abort the run with no partial
// output: DuplicateDateError for repeated dates and
// InvalidContaminationError for a contamination outside [0.01, 0.5] that
// is not "auto". Data-quality problems never error; gaps, decreasing
// totals and spikes are handled in-stream and counted in the Summary.
//
// # Determinism
//
// The detector runs on a fixed seed and every stage is free of map
// iteration and wall-clock dependence, so a run over the same input and
// configuration reproduces its output exactly.
//
// # Usage
//
//	cfg := cleaning.DefaultConfig()
//	cfg.Contamination, _ = cleaning.ParseContamination("0.1")
//
//	pipeline, err := cleaning.NewPipeline(cfg, nil, slog.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	series, summary, err := pipeline.Clean(ctx, observations)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("corrected %d of %d days\n", summary.Corrected, summary.Days)
package cleaning
