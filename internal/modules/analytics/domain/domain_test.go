package domain_test

import (
	"errors"
	"testing"
	"time"

	"jobtrack/internal/modules/analytics/domain"
	trackerdomain "jobtrack/internal/modules/tracker/domain"
	apperrors "jobtrack/internal/platform/errors"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return d
}

func applied(dates ...string) []domain.Record {
	out := make([]domain.Record, len(dates))
	for i, d := range dates {
		out[i] = domain.Record{ID: int64(i + 1), Company: "Acme", Role: "Engineer", DateApplied: d, Status: trackerdomain.StatusApplied}
	}
	return out
}

func TestNormalizeDatesMarksUnparseable(t *testing.T) {
	t.Parallel()
	got := domain.NormalizeDates([]string{"2025-01-02", "not a date", "", "01/05/2025"})
	if len(got) != 4 {
		t.Fatalf("expected 4 values, got %d", len(got))
	}
	if got[0] == nil || got[3] == nil || !got[0].Equal(day(t, "2025-01-02")) || !got[3].Equal(day(t, "2025-01-05")) {
		t.Fatalf("unexpected parsed days: %v", got)
	}
	if got[1] != nil || got[2] != nil {
		t.Fatalf("expected missing markers, got %v %v", got[1], got[2])
	}
	if n := domain.InvalidDates(applied("2025-01-02", "bogus")); n != 1 {
		t.Fatalf("expected 1 invalid date, got %d", n)
	}
}

func TestWindowBounds(t *testing.T) {
	t.Parallel()
	start, end, err := domain.WindowBounds(7, day(t, "2025-01-14"))
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if !start.Equal(day(t, "2025-01-08")) || !end.Equal(day(t, "2025-01-14")) {
		t.Fatalf("expected 2025-01-08..2025-01-14, got %s..%s", start, end)
	}

	start, end, err = domain.WindowBounds(1, time.Date(2025, 3, 9, 17, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if !start.Equal(end) || !start.Equal(day(t, "2025-03-09")) {
		t.Fatalf("single day window should collapse to the end day, got %s..%s", start, end)
	}

	if _, _, err := domain.WindowBounds(0, day(t, "2025-01-14")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero days, got %v", err)
	}
	if _, _, err := domain.WindowBounds(3, time.Time{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing end, got %v", err)
	}
}

func TestWindowBoundsSpansNDays(t *testing.T) {
	t.Parallel()
	end := day(t, "2024-03-15")
	for n := 1; n <= 400; n += 37 {
		start, gotEnd, err := domain.WindowBounds(n, end)
		if err != nil {
			t.Fatalf("window %d: %v", n, err)
		}
		if span := int(gotEnd.Sub(start).Hours()/24) + 1; span != n {
			t.Fatalf("window %d: expected span %d, got %d", n, n, span)
		}
	}
}

func TestAnchorWeekStart(t *testing.T) {
	t.Parallel()
	wed := day(t, "2025-01-01")
	mon, err := domain.AnchorWeekStart(wed, domain.WeekStartMonday)
	if err != nil {
		t.Fatalf("anchor: %v", err)
	}
	if !mon.Equal(day(t, "2024-12-30")) {
		t.Fatalf("expected 2024-12-30, got %s", mon)
	}
	sun, err := domain.AnchorWeekStart(wed, "sun")
	if err != nil {
		t.Fatalf("anchor: %v", err)
	}
	if !sun.Equal(day(t, "2024-12-29")) {
		t.Fatalf("expected 2024-12-29, got %s", sun)
	}

	for offset := 0; offset < 14; offset++ {
		d := wed.AddDate(0, 0, offset)
		for _, ws := range []domain.WeekStart{domain.WeekStartMonday, domain.WeekStartSunday} {
			once, _ := domain.AnchorWeekStart(d, ws)
			twice, _ := domain.AnchorWeekStart(once, ws)
			if !once.Equal(twice) {
				t.Fatalf("anchor not idempotent for %s/%s: %s vs %s", d, ws, once, twice)
			}
			if once.After(d) || d.Sub(once) >= 7*24*time.Hour {
				t.Fatalf("anchor %s out of range for %s", once, d)
			}
		}
	}

	if _, err := domain.AnchorWeekStart(wed, "TUE"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestWeeklyApplications(t *testing.T) {
	t.Parallel()
	rows, err := domain.WeeklyApplications(applied("2025-01-15", "2025-01-01", "garbage"), 2)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	want := []struct {
		week string
		apps int
		avg  float64
	}{
		{"2024-12-30", 1, 1},
		{"2025-01-06", 0, 0.5},
		{"2025-01-13", 1, 0.5},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if !rows[i].WeekStart.Equal(day(t, w.week)) || rows[i].Apps != w.apps || rows[i].MovingAvg != w.avg {
			t.Fatalf("row %d: expected %+v, got %+v", i, w, rows[i])
		}
		if rows[i].WeekStart.Weekday() != time.Monday {
			t.Fatalf("row %d does not start on Monday", i)
		}
	}
}

func TestWeeklyApplicationsSumMatchesValidRecords(t *testing.T) {
	t.Parallel()
	records := applied("2025-02-01", "2025-02-02", "2025-02-03", "bad", "2025-03-20", "2025-03-20", "")
	rows, err := domain.WeeklyApplications(records, 4)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	sum := 0
	for _, r := range rows {
		sum += r.Apps
	}
	if valid := len(records) - domain.InvalidDates(records); sum != valid {
		t.Fatalf("expected weekly sum %d, got %d", valid, sum)
	}
}

func TestWeeklyApplicationsEmpty(t *testing.T) {
	t.Parallel()
	rows, err := domain.WeeklyApplications(nil, 4)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", rows)
	}
	if _, err := domain.WeeklyApplications(nil, 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for window 0, got %v", err)
	}
}

func TestFirstRepresentableDayIsNotMissing(t *testing.T) {
	t.Parallel()
	got := domain.NormalizeDates([]string{"0001-01-01"})
	if got[0] == nil || !got[0].Equal(time.Time{}) {
		t.Fatalf("expected 0001-01-01 to parse, got %v", got[0])
	}
	records := applied("0001-01-01")
	if n := domain.InvalidDates(records); n != 0 {
		t.Fatalf("expected no invalid dates, got %d", n)
	}
	rows, err := domain.WeeklyApplications(records, 4)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(rows) != 1 || rows[0].Apps != 1 {
		t.Fatalf("expected one week holding the record, got %+v", rows)
	}
}

func TestWindowBoundsRejectsOversizedWindow(t *testing.T) {
	t.Parallel()
	end := day(t, "2025-01-14")
	if _, _, err := domain.WindowBounds(domain.MaxWindowDays, end); err != nil {
		t.Fatalf("expected the maximum window to be accepted, got %v", err)
	}
	for _, n := range []int{domain.MaxWindowDays + 1, 1 << 62} {
		if _, _, err := domain.WindowBounds(n, end); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("window %d: expected ErrInvalidInput, got %v", n, err)
		}
		if _, err := domain.CalendarCounts(nil, n, end); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("calendar %d: expected ErrInvalidInput, got %v", n, err)
		}
		if _, err := domain.CountInWindow(nil, n, end); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("count %d: expected ErrInvalidInput, got %v", n, err)
		}
	}
}
