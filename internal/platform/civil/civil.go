// Package civil handles calendar days: dates without a time of day.
// A day is represented as a time.Time at midnight UTC so that day
// arithmetic never crosses a DST boundary.
package civil

import (
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var layouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
}

// Parse accepts the date shapes seen in exported spreadsheets and returns
// the calendar day they name. Time-of-day and offsets are discarded after
// the day is read in the value's own zone.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return DateOnly(parsed), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}

// DateOnly strips the time of day. The zero time stays zero.
func DateOnly(value time.Time) time.Time {
	if value.IsZero() {
		return value
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

// Format renders a day as YYYY-MM-DD, or "" for the zero time.
func Format(day time.Time) string {
	if day.IsZero() {
		return ""
	}
	return day.Format(Layout)
}

// DaysBetween returns to - from in whole days. Both must be days.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// MondayIndex maps Monday..Sunday to 0..6.
func MondayIndex(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}
