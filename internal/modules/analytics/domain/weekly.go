package domain

import (
	"fmt"
	"time"

	"jobtrack/internal/platform/civil"
	apperrors "jobtrack/internal/platform/errors"
)

type WeekRow struct {
	WeekStart time.Time
	Apps      int
	MovingAvg float64
}

// WeeklyApplications counts applications per Monday-to-Sunday week, labelled
// by the Monday. Every week between the first and last record is present.
// MovingAvg is the trailing mean over window weeks, using however many weeks
// exist until the window fills.
func WeeklyApplications(records []Record, window int) ([]WeekRow, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: moving average window must be >= 1, got %d", apperrors.ErrInvalidInput, window)
	}
	days := appliedDays(records)
	if len(days) == 0 {
		return []WeekRow{}, nil
	}

	counts := make(map[time.Time]int)
	var first, last time.Time
	for i, d := range days {
		week, err := AnchorWeekStart(d, WeekStartMonday)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			first, last = week, week
		}
		counts[week]++
		if week.Before(first) {
			first = week
		}
		if week.After(last) {
			last = week
		}
	}

	rows := make([]WeekRow, 0, civil.DaysBetween(first, last)/7+1)
	for week := first; !week.After(last); week = civil.AddDays(week, 7) {
		rows = append(rows, WeekRow{WeekStart: week, Apps: counts[week]})
	}

	sum := 0
	for i := range rows {
		sum += rows[i].Apps
		if i >= window {
			sum -= rows[i-window].Apps
		}
		span := window
		if i+1 < window {
			span = i + 1
		}
		rows[i].MovingAvg = float64(sum) / float64(span)
	}
	return rows, nil
}
