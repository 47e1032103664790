package holdings

import (
	"fmt"
	"time"
)

// cutoffFormat is the strict month-day-year format accepted on the command line.
const cutoffFormat = "01-02-2006"

// Cutoff is an as-of-date restriction on the aggregation: the balance as it
// stood at 23:59:59 UTC of a calendar day. Records strictly after that
// instant are excluded.
type Cutoff struct {
	day time.Time // midnight UTC of the cutoff day
}

// ParseCutoff parses a strict MM-DD-YYYY date into a Cutoff.
func ParseCutoff(str string) (Cutoff, error) {
	on, err := time.ParseInLocation(cutoffFormat, str, time.UTC)
	if err != nil {
		return Cutoff{}, fmt.Errorf("invalid date %q want format MM-DD-YYYY: %w", str, err)
	}
	return Cutoff{day: on}, nil
}

// Unix returns the epoch seconds of the last second of the cutoff day.
func (c Cutoff) Unix() int64 { return c.day.Add(24*time.Hour - time.Second).Unix() }

// Excludes reports whether a record timestamp falls after the cutoff.
func (c Cutoff) Excludes(timestamp int64) bool { return timestamp > c.Unix() }

// String formats the cutoff in its command-line format.
func (c Cutoff) String() string { return c.day.Format(cutoffFormat) }
