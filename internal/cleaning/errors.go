package cleaning

import (
	"fmt"
	"time"
)

// DuplicateDateError reports two observations carrying the same calendar
// date. The series is ambiguous at that point, so the run stops.
type DuplicateDateError struct {
	Date time.Time
}

// Error implements the error interface
func (e *DuplicateDateError) Error() string {
	return fmt.Sprintf("duplicate observation date %s", e.Date.Format("2006-01-02"))
}

// InvalidContaminationError reports a contamination setting outside the
// accepted range. Raised before any data processing happens.
type InvalidContaminationError struct {
	Value string
}

// Error implements the error interface
func (e *InvalidContaminationError) Error() string {
	return fmt.Sprintf("invalid contamination %q: must be %q or a fraction in [%g, %g]",
		e.Value, "auto", MinContamination, MaxContamination)
}
