package domain

import (
	"time"

	trackerdomain "jobtrack/internal/modules/tracker/domain"
	"jobtrack/internal/platform/civil"
)

type Status = trackerdomain.Status

// ParseStatus accepts a canonical status name only. Synonyms are resolved when
// records are written, never when they are queried.
func ParseStatus(raw string) (Status, error) {
	return trackerdomain.ParseStatus(raw)
}

// Record is the read-only view of one application that every transform
// consumes. Dates are raw text and may fail to parse.
type Record struct {
	ID           int64
	Company      string
	Role         string
	DateApplied  string
	Status       Status
	ResponseDate string
}

// NormalizeDates parses each value to a calendar day. Entries that fail to
// parse come back nil.
func NormalizeDates(values []string) []*time.Time {
	out := make([]*time.Time, len(values))
	for i, v := range values {
		if day, ok := NormalizeDate(v); ok {
			out[i] = &day
		}
	}
	return out
}

func NormalizeDate(value string) (time.Time, bool) {
	day, err := civil.Parse(value)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// appliedDays returns the parsed DateApplied of every record that has one.
func appliedDays(records []Record) []time.Time {
	values := make([]string, len(records))
	for i, r := range records {
		values[i] = r.DateApplied
	}
	out := make([]time.Time, 0, len(values))
	for _, d := range NormalizeDates(values) {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// InvalidDates counts records whose DateApplied does not parse.
func InvalidDates(records []Record) int {
	n := 0
	for _, r := range records {
		if _, ok := NormalizeDate(r.DateApplied); !ok {
			n++
		}
	}
	return n
}
