package domain

import (
	"fmt"
	"strings"
	"time"

	"jobtrack/internal/platform/civil"
	apperrors "jobtrack/internal/platform/errors"
)

type WeekStart string

const (
	WeekStartMonday WeekStart = "MON"
	WeekStartSunday WeekStart = "SUN"
)

func ParseWeekStart(raw string) (WeekStart, error) {
	ws := WeekStart(strings.ToUpper(strings.TrimSpace(raw)))
	switch ws {
	case WeekStartMonday, WeekStartSunday:
		return ws, nil
	default:
		return "", fmt.Errorf("%w: week start must be MON or SUN, got %q", apperrors.ErrInvalidInput, raw)
	}
}

// MaxWindowDays caps every trailing window at roughly ten years.
const MaxWindowDays = 3660

// WindowBounds returns the first and last day of the nDays-long window that
// ends on end, both inclusive.
func WindowBounds(nDays int, end time.Time) (time.Time, time.Time, error) {
	if nDays < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: window must span at least one day, got %d", apperrors.ErrInvalidInput, nDays)
	}
	if nDays > MaxWindowDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: window may span at most %d days, got %d", apperrors.ErrInvalidInput, MaxWindowDays, nDays)
	}
	if end.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: window end is required", apperrors.ErrInvalidInput)
	}
	end = civil.DateOnly(end)
	return civil.AddDays(end, -(nDays - 1)), end, nil
}

// AnchorWeekStart returns the first day of the week containing day.
func AnchorWeekStart(day time.Time, weekStart WeekStart) (time.Time, error) {
	ws, err := ParseWeekStart(string(weekStart))
	if err != nil {
		return time.Time{}, err
	}
	day = civil.DateOnly(day)
	if ws == WeekStartMonday {
		return civil.AddDays(day, -civil.MondayIndex(day)), nil
	}
	return civil.AddDays(day, -int(day.Weekday())), nil
}

func inWindow(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}
