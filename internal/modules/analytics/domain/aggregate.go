package domain

import (
	"fmt"
	"sort"
	"time"

	trackerdomain "jobtrack/internal/modules/tracker/domain"
	"jobtrack/internal/platform/civil"
	apperrors "jobtrack/internal/platform/errors"
)

type CompanyCount struct {
	Company string
	Count   int
}

type DayCount struct {
	Day time.Time
	N   int
}

type DayCumulative struct {
	Day time.Time
	Cum int
}

type StageCount struct {
	Stage Status
	N     int
}

type WeekdayStatusCount struct {
	Weekday time.Weekday
	Status  Status
	N       int
}

type Summary struct {
	Total      int
	RecentDays int
	Recent     int
	Applied    int
	Rejected   int
}

// DefaultFunnel is the forward path through a hiring pipeline.
func DefaultFunnel() []Status {
	return []Status{trackerdomain.StatusApplied, trackerdomain.StatusOA, trackerdomain.StatusInterview, trackerdomain.StatusOffer}
}

// TopCompanies counts records per company by exact string match and returns
// the k largest, ties broken by company name ascending.
func TopCompanies(records []Record, k int) ([]CompanyCount, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k must be >= 0, got %d", apperrors.ErrInvalidInput, k)
	}
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Company]++
	}
	out := make([]CompanyCount, 0, len(counts))
	for company, n := range counts {
		out = append(out, CompanyCount{Company: company, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Company < out[j].Company
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func StatusCount(records []Record, status Status) (int, error) {
	if err := status.Validate(); err != nil {
		return 0, err
	}
	n := 0
	for _, r := range records {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

// CountInWindow counts records applied within the nDays window ending on end.
func CountInWindow(records []Record, nDays int, end time.Time) (int, error) {
	start, end, err := WindowBounds(nDays, end)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, d := range appliedDays(records) {
		if inWindow(d, start, end) {
			n++
		}
	}
	return n, nil
}

// AppsPerDay returns one row per day that has at least one application,
// ascending.
func AppsPerDay(records []Record) []DayCount {
	counts := make(map[time.Time]int)
	for _, d := range appliedDays(records) {
		counts[d]++
	}
	out := make([]DayCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, DayCount{Day: day, N: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

func CumulativeApps(perDay []DayCount) []DayCumulative {
	out := make([]DayCumulative, len(perDay))
	running := 0
	for i, row := range perDay {
		running += row.N
		out[i] = DayCumulative{Day: row.Day, Cum: running}
	}
	return out
}

// PipelineFunnel counts records per stage of order. A nil order means
// DefaultFunnel. Statuses outside order are left out.
func PipelineFunnel(records []Record, order []Status) ([]StageCount, error) {
	if order == nil {
		order = DefaultFunnel()
	}
	index := make(map[Status]int, len(order))
	out := make([]StageCount, len(order))
	for i, stage := range order {
		if err := stage.Validate(); err != nil {
			return nil, err
		}
		if _, dup := index[stage]; dup {
			return nil, fmt.Errorf("%w: stage %q listed twice", apperrors.ErrInvalidInput, string(stage))
		}
		index[stage] = i
		out[i] = StageCount{Stage: stage}
	}
	for _, r := range records {
		if i, ok := index[r.Status]; ok {
			out[i].N++
		}
	}
	return out, nil
}

// WeekdayByStatus cross-tabulates the weekday of DateApplied against status.
// All 7x5 combinations are returned, Monday first, statuses in enumeration
// order.
func WeekdayByStatus(records []Record) []WeekdayStatusCount {
	statuses := trackerdomain.Statuses()
	statusIdx := make(map[Status]int, len(statuses))
	for i, s := range statuses {
		statusIdx[s] = i
	}

	var grid [7][]int
	for i := range grid {
		grid[i] = make([]int, len(statuses))
	}
	for _, r := range records {
		day, ok := NormalizeDate(r.DateApplied)
		if !ok {
			continue
		}
		si, ok := statusIdx[r.Status]
		if !ok {
			continue
		}
		grid[civil.MondayIndex(day)][si]++
	}

	out := make([]WeekdayStatusCount, 0, 7*len(statuses))
	for wd := 0; wd < 7; wd++ {
		for si, s := range statuses {
			out = append(out, WeekdayStatusCount{
				Weekday: time.Weekday((wd + 1) % 7),
				Status:  s,
				N:       grid[wd][si],
			})
		}
	}
	return out
}

// TimeToFirstResponse returns response_date - date_applied in days for each
// record with both dates. Negative lags are kept.
func TimeToFirstResponse(records []Record) []int {
	out := make([]int, 0)
	for _, r := range records {
		if r.ResponseDate == "" {
			continue
		}
		applied, ok := NormalizeDate(r.DateApplied)
		if !ok {
			continue
		}
		responded, ok := NormalizeDate(r.ResponseDate)
		if !ok {
			continue
		}
		out = append(out, civil.DaysBetween(applied, responded))
	}
	return out
}

// Summarize produces the headline counters of the dashboard.
func Summarize(records []Record, recentDays int, end time.Time) (Summary, error) {
	recent, err := CountInWindow(records, recentDays, end)
	if err != nil {
		return Summary{}, err
	}
	applied, _ := StatusCount(records, trackerdomain.StatusApplied)
	rejected, _ := StatusCount(records, trackerdomain.StatusRejected)
	return Summary{
		Total:      len(records),
		RecentDays: recentDays,
		Recent:     recent,
		Applied:    applied,
		Rejected:   rejected,
	}, nil
}
