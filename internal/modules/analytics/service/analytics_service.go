package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"jobtrack/internal/modules/analytics/domain"
	trackerdto "jobtrack/internal/modules/tracker/dto"
	trackerin "jobtrack/internal/modules/tracker/port/in"
	"jobtrack/internal/platform/civil"
	"jobtrack/internal/platform/clock"
	apperrors "jobtrack/internal/platform/errors"
)

// Params are the dashboard defaults; zero fields take the values the
// dashboard has always used.
type Params struct {
	HeatmapDays        int
	TopCompanies       int
	TopTerms           int
	Ngrams             domain.NgramRange
	MovingAverageWeeks int
	RecentDays         int
	Stoplist           domain.Stoplist
}

func (p Params) withDefaults() Params {
	if p.HeatmapDays == 0 {
		p.HeatmapDays = 175
	}
	if p.TopCompanies == 0 {
		p.TopCompanies = 15
	}
	if p.TopTerms == 0 {
		p.TopTerms = 25
	}
	if p.Ngrams == (domain.NgramRange{}) {
		p.Ngrams = domain.NgramRange{Min: 2, Max: 3}
	}
	if p.MovingAverageWeeks == 0 {
		p.MovingAverageWeeks = 4
	}
	if p.RecentDays == 0 {
		p.RecentDays = 7
	}
	if p.Stoplist == nil {
		p.Stoplist = domain.DefaultStoplist()
	}
	return p
}

// Report is every dashboard view computed from a single snapshot.
type Report struct {
	AsOf          time.Time
	Summary       domain.Summary
	InvalidDates  int
	Weekly        []domain.WeekRow
	Calendar      []domain.CalendarCell
	Ticks         []domain.MonthTick
	TopCompanies  []domain.CompanyCount
	TopRoleTerms  []domain.TermCount
	Funnel        []domain.StageCount
	WeekdayStatus []domain.WeekdayStatusCount
	ResponseLags  []int
	PerDay        []domain.DayCount
	Cumulative    []domain.DayCumulative
}

type AnalyticsService struct {
	tracker trackerin.Usecase
	clock   clock.Clock
	loc     *time.Location
	params  Params
	logger  hclog.Logger
}

func NewAnalyticsService(tracker trackerin.Usecase, clk clock.Clock, loc *time.Location, params Params, logger hclog.Logger) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AnalyticsService{
		tracker: tracker,
		clock:   clk,
		loc:     loc,
		params:  params.withDefaults(),
		logger:  logger.Named("analytics"),
	}
}

func (s *AnalyticsService) Params() Params {
	return s.params
}

// Today is the window end used when a caller does not name one.
func (s *AnalyticsService) Today() time.Time {
	return clock.Today(s.clock, s.loc)
}

// Records loads the current snapshot from the tracker.
func (s *AnalyticsService) Records(ctx context.Context) ([]domain.Record, error) {
	apps, err := s.tracker.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	records := toRecords(apps)
	if invalid := domain.InvalidDates(records); invalid > 0 {
		s.logger.Debug("excluding records with unparseable date_applied", "count", invalid, "total", len(records))
	}
	return records, nil
}

func (s *AnalyticsService) ResolveEnd(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return s.Today(), nil
	}
	day, err := civil.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: end date: %v", apperrors.ErrInvalidInput, err)
	}
	return day, nil
}

func (s *AnalyticsService) Report(ctx context.Context) (Report, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return Report{}, err
	}
	p := s.params
	today := s.Today()
	report := Report{AsOf: today, InvalidDates: domain.InvalidDates(records)}

	if report.Summary, err = domain.Summarize(records, p.RecentDays, today); err != nil {
		return Report{}, err
	}
	if report.Weekly, err = domain.WeeklyApplications(records, p.MovingAverageWeeks); err != nil {
		return Report{}, err
	}
	if report.Calendar, err = domain.CalendarCounts(records, p.HeatmapDays, today); err != nil {
		return Report{}, err
	}
	report.Ticks = domain.CalendarMonthTicks(report.Calendar)
	if report.TopCompanies, err = domain.TopCompanies(records, p.TopCompanies); err != nil {
		return Report{}, err
	}
	if report.TopRoleTerms, err = domain.TopRoleTerms(records, p.TopTerms, p.Ngrams, p.Stoplist); err != nil {
		return Report{}, err
	}
	if report.Funnel, err = domain.PipelineFunnel(records, nil); err != nil {
		return Report{}, err
	}
	report.WeekdayStatus = domain.WeekdayByStatus(records)
	report.ResponseLags = domain.TimeToFirstResponse(records)
	report.PerDay = domain.AppsPerDay(records)
	report.Cumulative = domain.CumulativeApps(report.PerDay)

	s.logger.Debug("computed dashboard", "records", len(records), "as_of", civil.Format(today))
	return report, nil
}

// ParseStages turns canonical stage names into a funnel order. An empty list
// means the default funnel.
func ParseStages(raw []string) ([]domain.Status, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]domain.Status, 0, len(raw))
	for _, name := range raw {
		status, err := domain.ParseStatus(name)
		if err != nil {
			return nil, err
		}
		out = append(out, status)
	}
	return out, nil
}

func toRecords(apps []trackerdto.ApplicationOutput) []domain.Record {
	out := make([]domain.Record, 0, len(apps))
	for _, app := range apps {
		out = append(out, domain.Record{
			ID:           app.ID,
			Company:      app.Company,
			Role:         app.Role,
			DateApplied:  app.DateApplied,
			Status:       domain.Status(app.Status),
			ResponseDate: app.ResponseDate,
		})
	}
	return out
}
