package domain

import (
	"sort"
	"time"

	"jobtrack/internal/platform/civil"
)

// CalendarCell is one day of a contribution-style heatmap. Weekday is 0 for
// Monday through 6 for Sunday; WeekIndex counts weeks from the Monday on or
// before the window start.
type CalendarCell struct {
	Date      time.Time
	N         int
	Weekday   int
	WeekIndex int
}

type MonthTick struct {
	WeekIndex int
	Label     string
}

// CalendarCounts builds a dense, zero-filled grid covering the nDays window
// that ends on end.
func CalendarCounts(records []Record, nDays int, end time.Time) ([]CalendarCell, error) {
	start, end, err := WindowBounds(nDays, end)
	if err != nil {
		return nil, err
	}
	counts := make(map[time.Time]int)
	for _, d := range appliedDays(records) {
		if inWindow(d, start, end) {
			counts[d]++
		}
	}

	anchor, err := AnchorWeekStart(start, WeekStartMonday)
	if err != nil {
		return nil, err
	}
	cells := make([]CalendarCell, 0, nDays)
	for day := start; !day.After(end); day = civil.AddDays(day, 1) {
		delta := civil.DaysBetween(anchor, day)
		cells = append(cells, CalendarCell{
			Date:      day,
			N:         counts[day],
			Weekday:   floorMod(delta, 7),
			WeekIndex: floorDiv(delta, 7),
		})
	}
	return cells, nil
}

// CalendarMonthTicks marks the first week index at which each calendar month
// of the grid appears, in chronological order.
func CalendarMonthTicks(grid []CalendarCell) []MonthTick {
	type month struct {
		year int
		mon  time.Month
	}
	first := make(map[month]int)
	for _, cell := range grid {
		key := month{cell.Date.Year(), cell.Date.Month()}
		if idx, seen := first[key]; !seen || cell.WeekIndex < idx {
			first[key] = cell.WeekIndex
		}
	}

	keys := make([]month, 0, len(first))
	for k := range first {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].mon < keys[j].mon
	})

	ticks := make([]MonthTick, 0, len(keys))
	for _, k := range keys {
		ticks = append(ticks, MonthTick{WeekIndex: first[k], Label: k.mon.String()[:3]})
	}
	return ticks
}

// TickAxis splits ticks into the parallel value and label slices chart
// axes expect. Both are empty, never nil, for no ticks.
func TickAxis(ticks []MonthTick) ([]int, []string) {
	vals := make([]int, len(ticks))
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		vals[i] = t.WeekIndex
		labels[i] = t.Label
	}
	return vals, labels
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
