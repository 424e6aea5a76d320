package cleaning

import (
	"fmt"
	"strconv"
	"time"
)

// Note classifies how a day's values were produced
type Note string

const (
	// NoteObserved marks a day whose delta comes straight from real observations
	NoteObserved Note = "Observed"
	// NoteGapFill marks a day synthesized inside an observation gap
	NoteGapFill Note = "Assumed-GapFill"
	// NoteCorrected marks a day whose delta was replaced by the anomaly corrector
	NoteCorrected Note = "Assumed-Corrected"
)

// IsValid checks that the note is one of the known values
func (n Note) IsValid() bool {
	switch n {
	case NoteObserved, NoteGapFill, NoteCorrected:
		return true
	default:
		return false
	}
}

// Observation is a single raw reading of the cumulative sales counter
type Observation struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// DailyRecord is one day of the dense output series. The pipeline owns a
// slice of these and mutates it in place as stages run.
type DailyRecord struct {
	Date     time.Time `json:"date"`
	Total    float64   `json:"total"`    // Cumulative total as of this day
	Delta    float64   `json:"delta"`    // Sales attributed to this day
	Observed bool      `json:"observed"` // True when an input observation landed on this date
	Note     Note      `json:"note"`
}

// FlagSource identifies which rule flagged a day as anomalous
type FlagSource string

const (
	// FlagModel means the detector ensemble scored the day as an outlier
	FlagModel FlagSource = "model"
	// FlagNegative means the day's derived delta was negative
	FlagNegative FlagSource = "negative"
	// FlagBoth means both rules fired on the same day
	FlagBoth FlagSource = "both"
)

// FlaggedDay captures a day's pre-correction state for reporting
type FlaggedDay struct {
	Date   time.Time  `json:"date"`
	Delta  float64    `json:"delta"` // Delta before correction
	Source FlagSource `json:"source"`
}

// Summary aggregates what a cleaning run did to the series
type Summary struct {
	Days            int          `json:"days"`             // Calendar days in the output
	Observations    int          `json:"observations"`     // Input observations consumed
	GapFilled       int          `json:"gap_filled"`       // Days synthesized inside gaps
	ModelFlagged    int          `json:"model_flagged"`    // Days flagged by the detector
	NegativeFlagged int          `json:"negative_flagged"` // Days flagged by the negative-delta rule
	Corrected       int          `json:"corrected"`        // Days whose delta was replaced or clamped
	Flagged         []FlaggedDay `json:"flagged,omitempty"`
}

// Contamination is the expected fraction of anomalous days, or auto mode
// where the detector's natural score threshold decides.
type Contamination struct {
	Auto     bool    `json:"auto"`
	Fraction float64 `json:"fraction"`
}

// Contamination bounds accepted in fixed-fraction mode
const (
	MinContamination = 0.01
	MaxContamination = 0.5
)

// AutoContamination is the auto-mode contamination setting
func AutoContamination() Contamination {
	return Contamination{Auto: true}
}

// ParseContamination parses "auto" or a decimal fraction. The value is
// validated; out-of-range or unparseable input returns InvalidContaminationError.
func ParseContamination(s string) (Contamination, error) {
	if s == "auto" {
		return Contamination{Auto: true}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Contamination{}, &InvalidContaminationError{Value: s}
	}
	c := Contamination{Fraction: f}
	if err := c.Validate(); err != nil {
		return Contamination{}, err
	}
	return c, nil
}

// Validate checks the contamination setting against the accepted range
func (c Contamination) Validate() error {
	if c.Auto {
		return nil
	}
	if c.Fraction < MinContamination || c.Fraction > MaxContamination {
		return &InvalidContaminationError{Value: strconv.FormatFloat(c.Fraction, 'g', -1, 64)}
	}
	return nil
}

// String returns the form ParseContamination accepts
func (c Contamination) String() string {
	if c.Auto {
		return "auto"
	}
	return strconv.FormatFloat(c.Fraction, 'g', -1, 64)
}

// Config controls a cleaning run
type Config struct {
	Contamination Contamination `json:"contamination"`
	RollingWindow int           `json:"rolling_window"` // Trailing mean window in days
	Seed          int64         `json:"seed"`           // Detector RNG seed
	Trees         int           `json:"trees"`          // Isolation forest ensemble size
	SampleSize    int           `json:"sample_size"`    // Isolation forest subsample cap
}

// DefaultConfig returns the reference configuration
func DefaultConfig() Config {
	return Config{
		Contamination: Contamination{Fraction: 0.1},
		RollingWindow: 3,
		Seed:          42,
		Trees:         100,
		SampleSize:    256,
	}
}

// Validate checks the run configuration. Contamination violations surface
// as InvalidContaminationError so callers can fail fast before processing.
func (c Config) Validate() error {
	if err := c.Contamination.Validate(); err != nil {
		return err
	}
	if c.RollingWindow < 1 {
		return fmt.Errorf("rolling window must be at least 1, got %d", c.RollingWindow)
	}
	if c.Trees < 1 {
		return fmt.Errorf("detector needs at least 1 tree, got %d", c.Trees)
	}
	if c.SampleSize < 2 {
		return fmt.Errorf("detector sample size must be at least 2, got %d", c.SampleSize)
	}
	return nil
}
