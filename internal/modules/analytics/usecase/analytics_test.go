package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobtrack/internal/modules/analytics/domain"
	"jobtrack/internal/modules/analytics/dto"
	"jobtrack/internal/modules/analytics/service"
	"jobtrack/internal/modules/analytics/usecase"
	trackerdto "jobtrack/internal/modules/tracker/dto"
	trackerin "jobtrack/internal/modules/tracker/port/in"
	"jobtrack/internal/platform/clock"
	apperrors "jobtrack/internal/platform/errors"
)

type fakeTracker struct {
	trackerin.Usecase
	rows  []trackerdto.ApplicationOutput
	err   error
	calls int
}

func (f *fakeTracker) Snapshot(context.Context) ([]trackerdto.ApplicationOutput, error) {
	f.calls++
	return f.rows, f.err
}

func row(company, role, date, status, response string) trackerdto.ApplicationOutput {
	return trackerdto.ApplicationOutput{Company: company, Role: role, DateApplied: date, Status: status, ResponseDate: response}
}

func sampleRows() []trackerdto.ApplicationOutput {
	return []trackerdto.ApplicationOutput{
		row("Acme", "Data Scientist Intern", "2025-01-02", "Applied", ""),
		row("Acme", "Data Scientist", "2025-01-08", "Interview", "2025-01-12"),
		row("Globex", "Software Engineer", "2025-01-13", "Rejected", "2025-01-20"),
		row("Initech", "Software Engineer II", "2025-01-14", "Applied", ""),
		row("Hooli", "Analyst", "someday", "OA", ""),
	}
}

var analyticsNow = time.Date(2025, 1, 14, 18, 0, 0, 0, time.UTC)

func newInteractor(tracker *fakeTracker, params service.Params) *usecase.Interactor {
	svc := service.NewAnalyticsService(tracker, clock.Fixed{At: analyticsNow}, time.UTC, params, nil)
	return usecase.NewInteractor(svc).(*usecase.Interactor)
}

func TestDashboardUsesOneSnapshot(t *testing.T) {
	t.Parallel()
	tracker := &fakeTracker{rows: sampleRows()}
	uc := newInteractor(tracker, service.Params{HeatmapDays: 14, Ngrams: domain.NgramRange{Min: 1, Max: 2}})

	out, err := uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if tracker.calls != 1 {
		t.Fatalf("expected a single snapshot read, got %d", tracker.calls)
	}
	if out.AsOf != "2025-01-14" {
		t.Fatalf("expected as-of 2025-01-14, got %s", out.AsOf)
	}
	s := out.Summary
	if s.Total != 5 || s.Recent != 3 || s.Applied != 2 || s.Rejected != 1 || s.InvalidDates != 1 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if len(out.Weekly) != 3 || out.Weekly[0].WeekStart != "2024-12-30" || out.Weekly[2].Apps != 2 {
		t.Fatalf("unexpected weekly %+v", out.Weekly)
	}
	if out.Calendar.Start != "2025-01-01" || out.Calendar.End != "2025-01-14" || len(out.Calendar.Cells) != 14 {
		t.Fatalf("unexpected calendar window %+v", out.Calendar)
	}
	if out.Calendar.Weeks != 3 || out.Calendar.Max != 1 {
		t.Fatalf("unexpected calendar shape weeks=%d max=%d", out.Calendar.Weeks, out.Calendar.Max)
	}
	if len(out.Calendar.TickWeeks) != 1 || out.Calendar.TickWeeks[0] != 0 || out.Calendar.TickLabels[0] != "Jan" {
		t.Fatalf("unexpected tick axis %v %v", out.Calendar.TickWeeks, out.Calendar.TickLabels)
	}
	if len(out.TopCompanies) == 0 || out.TopCompanies[0].Company != "Acme" || out.TopCompanies[0].Count != 2 {
		t.Fatalf("unexpected companies %+v", out.TopCompanies)
	}
	if len(out.TopRoleTerms) == 0 {
		t.Fatalf("expected role terms")
	}
	if len(out.Funnel) != 4 || out.Funnel[0].Stage != "Applied" || out.Funnel[0].N != 2 {
		t.Fatalf("unexpected funnel %+v", out.Funnel)
	}
	if len(out.WeekdayStatus) != 35 || out.WeekdayStatus[0].Weekday != "Mon" {
		t.Fatalf("unexpected weekday grid %+v", out.WeekdayStatus[:1])
	}
	if out.ResponseLag.Count != 2 || out.ResponseLag.Median != 5.5 || out.ResponseLag.Min != 4 || out.ResponseLag.Max != 7 {
		t.Fatalf("unexpected lag %+v", out.ResponseLag)
	}
	if len(out.Daily) != 4 || out.Daily[3].Cum != 4 {
		t.Fatalf("unexpected daily %+v", out.Daily)
	}
}

func TestIndividualViews(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(&fakeTracker{rows: sampleRows()}, service.Params{})

	weekly, err := uc.Weekly(ctx, dto.WeeklyInput{Window: 1})
	if err != nil || len(weekly) != 3 || weekly[1].MovingAvg != 1 {
		t.Fatalf("unexpected weekly %+v (%v)", weekly, err)
	}
	cal, err := uc.Calendar(ctx, dto.CalendarInput{Days: 3, End: "2025-01-03"})
	if err != nil || len(cal.Cells) != 3 || cal.Cells[1].N != 1 {
		t.Fatalf("unexpected calendar %+v (%v)", cal, err)
	}
	top, err := uc.TopCompanies(ctx, dto.TopCompaniesInput{K: 1})
	if err != nil || len(top) != 1 {
		t.Fatalf("unexpected top companies %+v (%v)", top, err)
	}
	terms, err := uc.TopRoleTerms(ctx, dto.TopRoleTermsInput{N: 5, NgramMin: 1})
	if err != nil {
		t.Fatalf("terms: %v", err)
	}
	found := false
	for _, term := range terms {
		if term.Term == "software" && term.Count == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected (software, 2) in %+v", terms)
	}
	funnel, err := uc.Funnel(ctx, dto.FunnelInput{Stages: []string{"Interview", "Rejected"}})
	if err != nil || len(funnel) != 2 || funnel[0].Stage != "Interview" || funnel[1].N != 1 {
		t.Fatalf("unexpected funnel %+v (%v)", funnel, err)
	}
	n, err := uc.StatusCount(ctx, dto.StatusCountInput{Status: "Applied"})
	if err != nil || n != 2 {
		t.Fatalf("expected 2 applied, got %d (%v)", n, err)
	}
	n, err = uc.CountInWindow(ctx, dto.WindowCountInput{Days: 7})
	if err != nil || n != 3 {
		t.Fatalf("expected 3 in the last week, got %d (%v)", n, err)
	}
	daily, err := uc.Daily(ctx)
	if err != nil || len(daily) != 4 || daily[0].Day != "2025-01-02" {
		t.Fatalf("unexpected daily %+v (%v)", daily, err)
	}
}

func TestInvalidArgumentsAndErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(&fakeTracker{rows: sampleRows()}, service.Params{})

	if _, err := uc.Calendar(ctx, dto.CalendarInput{Days: -3}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative days, got %v", err)
	}
	if _, err := uc.Calendar(ctx, dto.CalendarInput{Days: 3, End: "tomorrow"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad end, got %v", err)
	}
	if _, err := uc.TopCompanies(ctx, dto.TopCompaniesInput{K: -1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for k<0, got %v", err)
	}
	if _, err := uc.StatusCount(ctx, dto.StatusCountInput{Status: "ghosted"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown status, got %v", err)
	}
	if _, err := uc.Funnel(ctx, dto.FunnelInput{Stages: []string{"OA", "OA"}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for duplicate stages, got %v", err)
	}

	for _, status := range []string{"submitted", "declined", "applied", "phone screen"} {
		if _, err := uc.StatusCount(ctx, dto.StatusCountInput{Status: status}); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected %q to be rejected as a non-canonical status, got %v", status, err)
		}
	}
	if _, err := uc.Funnel(ctx, dto.FunnelInput{Stages: []string{"submitted", "phone screen"}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected synonym stages to be rejected, got %v", err)
	}

	boom := errors.New("database is locked")
	failing := newInteractor(&fakeTracker{err: boom}, service.Params{})
	if _, err := failing.Dashboard(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected snapshot error to propagate, got %v", err)
	}
}

func TestEmptySnapshot(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeTracker{}, service.Params{})
	out, err := uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if out.Summary.Total != 0 || len(out.Weekly) != 0 || len(out.TopCompanies) != 0 || len(out.TopRoleTerms) != 0 {
		t.Fatalf("expected empty views, got %+v", out)
	}
	if len(out.Calendar.Cells) != 175 || out.Calendar.Max != 0 {
		t.Fatalf("expected a zero-filled 175 day grid, got %d cells", len(out.Calendar.Cells))
	}
	if out.Weekly == nil || out.ResponseLag.Lags == nil {
		t.Fatalf("empty views must serialise as empty lists")
	}
}
