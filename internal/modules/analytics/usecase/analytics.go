package usecase

import (
	"context"
	"sort"

	"jobtrack/internal/modules/analytics/domain"
	"jobtrack/internal/modules/analytics/dto"
	analyticsin "jobtrack/internal/modules/analytics/port/in"
	"jobtrack/internal/modules/analytics/service"
	"jobtrack/internal/platform/civil"
)

type Interactor struct {
	svc *service.AnalyticsService
}

func NewInteractor(svc *service.AnalyticsService) analyticsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Dashboard(ctx context.Context) (dto.DashboardOutput, error) {
	report, err := i.svc.Report(ctx)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	return dto.DashboardOutput{
		AsOf:          civil.Format(report.AsOf),
		Summary:       summaryOutput(report.Summary, report.InvalidDates),
		Weekly:        weeklyOutput(report.Weekly),
		Calendar:      calendarOutput(report.Calendar, report.Ticks),
		TopCompanies:  companiesOutput(report.TopCompanies),
		TopRoleTerms:  termsOutput(report.TopRoleTerms),
		Funnel:        funnelOutput(report.Funnel),
		WeekdayStatus: weekdayOutput(report.WeekdayStatus),
		ResponseLag:   lagOutput(report.ResponseLags),
		Daily:         dailyOutput(report.PerDay, report.Cumulative),
	}, nil
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	records, err := i.svc.Records(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	summary, err := domain.Summarize(records, i.svc.Params().RecentDays, i.svc.Today())
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return summaryOutput(summary, domain.InvalidDates(records)), nil
}

func (i *Interactor) Weekly(ctx context.Context, input dto.WeeklyInput) ([]dto.WeekRowOutput, error) {
	records, err := i.svc.Records(ctx)
	if err != nil {
		return nil, err
	}
	window := input.Window
	if window == 0 {
		window = i.svc.Params().MovingAverageWeeks
	}
	rows, err := domain.WeeklyApplications(records, window)
	if err != nil {
		return nil, err
	}
	return weeklyOutput(rows), nil
}

func (i *Interactor) Calendar(ctx context.Context, input dto.CalendarInput) (dto.CalendarOutput, error) {
	end, err := i.svc.ResolveEnd(input.End)
	if err != nil {
		return dto.CalendarOutput{}, err
	}
	days := input.Days
	if days == 0 {
		days = i.svc.Params().HeatmapDays
	}
	records, err := i.svc.Records(ctx)
	if err != nil {
		return dto.CalendarOutput{}, err
	}
	cells, err := domain.CalendarCounts(records, days, end)
	if err != nil {
		return dto.CalendarOutput{}, err
	}
	return calendarOutput(cells, domain.CalendarMonthTicks(cells)), nil
}

func (i *Interactor) TopCompanies(ctx context.Context, input dto.TopCompaniesInput) ([]dto.CompanyCountOutput, error) {
	records, err := i.svc.Records(ctx)
	if err != nil {
		return nil, err
	}
	k := input.K
	if k == 0 {
		k = i.svc.Params().TopCompanies
	}
	rows, err := domain.TopCompanies(records, k)
	if err != nil {
		return nil, err
	}
	return companiesOutput(rows), nil
}

func (i *Interactor) TopRoleTerms(ctx context.Context, input dto.TopRoleTermsInput) ([]dto.TermCountOutput, error) {
	records, err := i.svc.Records(ctx)
	if err != nil {
		return nil, err
	}
	p := i.svc.Params()
	n := input.N
	if n == 0 {
		n = p.TopTerms
	}
	ngrams := p.Ngrams
	if input.NgramMin != 0 || input.NgramMax != 0 {
		ngrams = domain.NgramRange{Min: input.NgramMin, Max: input.NgramMax}
		if ngrams.Max == 0 {
			ngrams.Max = ngrams.Min
		}
	}
	rows, err := domain.TopRoleTerms(records, n, ngrams, p.Stoplist)
	if err != nil {
		return nil, err
	}
	return termsOutput(rows), nil
}

func (i *Interactor) Funnel(ctx context.Context, input dto.FunnelInput) ([]dto.StageCountOutput, error) {
	order, err := service.ParseStages(input.Stages)
	if err != nil {
		return nil, err
	}
	records, err := i.svc.Records(ctx)
	if err != nil {
		return nil, err
	}
	stages, err := domain.PipelineFunnel(records, order)
	if err != nil {
		return nil, err
	}
	return funnelOutput(stages), nil
}

func (i *Interactor) WeekdayStatus(ctx context.Context) ([]dto.WeekdayStatusOutput, error) {
	records, err := i.svc.Records(ctx)
	if err != nil {
		return nil, err
	}
	return weekdayOutput(domain.WeekdayByStatus(records)), nil
}

func (i *Interactor) ResponseLag(ctx context.Context) (dto.ResponseLagOutput, error) {
	records, err := i.svc.Records(ctx)
	if err != nil {
		return dto.ResponseLagOutput{}, err
	}
	return lagOutput(domain.TimeToFirstResponse(records)), nil
}

func (i *Interactor) StatusCount(ctx context.Context, input dto.StatusCountInput) (int, error) {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return 0, err
	}
	records, err := i.svc.Records(ctx)
	if err != nil {
		return 0, err
	}
	return domain.StatusCount(records, status)
}

func (i *Interactor) CountInWindow(ctx context.Context, input dto.WindowCountInput) (int, error) {
	end, err := i.svc.ResolveEnd(input.End)
	if err != nil {
		return 0, err
	}
	days := input.Days
	if days == 0 {
		days = i.svc.Params().RecentDays
	}
	records, err := i.svc.Records(ctx)
	if err != nil {
		return 0, err
	}
	return domain.CountInWindow(records, days, end)
}

func (i *Interactor) Daily(ctx context.Context) ([]dto.DailyOutput, error) {
	records, err := i.svc.Records(ctx)
	if err != nil {
		return nil, err
	}
	perDay := domain.AppsPerDay(records)
	return dailyOutput(perDay, domain.CumulativeApps(perDay)), nil
}

func summaryOutput(s domain.Summary, invalid int) dto.SummaryOutput {
	return dto.SummaryOutput{
		Total:        s.Total,
		RecentDays:   s.RecentDays,
		Recent:       s.Recent,
		Applied:      s.Applied,
		Rejected:     s.Rejected,
		InvalidDates: invalid,
	}
}

func weeklyOutput(rows []domain.WeekRow) []dto.WeekRowOutput {
	out := make([]dto.WeekRowOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WeekRowOutput{WeekStart: civil.Format(r.WeekStart), Apps: r.Apps, MovingAvg: r.MovingAvg})
	}
	return out
}

func calendarOutput(cells []domain.CalendarCell, ticks []domain.MonthTick) dto.CalendarOutput {
	out := dto.CalendarOutput{
		Cells: make([]dto.CalendarCellOutput, 0, len(cells)),
		Ticks: make([]dto.MonthTickOutput, 0, len(ticks)),
	}
	for _, c := range cells {
		out.Cells = append(out.Cells, dto.CalendarCellOutput{Date: civil.Format(c.Date), N: c.N, Weekday: c.Weekday, WeekIndex: c.WeekIndex})
		if c.N > out.Max {
			out.Max = c.N
		}
		if c.WeekIndex+1 > out.Weeks {
			out.Weeks = c.WeekIndex + 1
		}
	}
	if len(cells) > 0 {
		out.Start = civil.Format(cells[0].Date)
		out.End = civil.Format(cells[len(cells)-1].Date)
	}
	for _, t := range ticks {
		out.Ticks = append(out.Ticks, dto.MonthTickOutput{WeekIndex: t.WeekIndex, Label: t.Label})
	}
	out.TickWeeks, out.TickLabels = domain.TickAxis(ticks)
	return out
}

func companiesOutput(rows []domain.CompanyCount) []dto.CompanyCountOutput {
	out := make([]dto.CompanyCountOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CompanyCountOutput{Company: r.Company, Count: r.Count})
	}
	return out
}

func termsOutput(rows []domain.TermCount) []dto.TermCountOutput {
	out := make([]dto.TermCountOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TermCountOutput{Term: r.Term, Count: r.Count})
	}
	return out
}

func funnelOutput(rows []domain.StageCount) []dto.StageCountOutput {
	out := make([]dto.StageCountOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StageCountOutput{Stage: string(r.Stage), N: r.N})
	}
	return out
}

func weekdayOutput(rows []domain.WeekdayStatusCount) []dto.WeekdayStatusOutput {
	out := make([]dto.WeekdayStatusOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WeekdayStatusOutput{Weekday: r.Weekday.String()[:3], Status: string(r.Status), N: r.N})
	}
	return out
}

func lagOutput(lags []int) dto.ResponseLagOutput {
	out := dto.ResponseLagOutput{Lags: lags, Count: len(lags)}
	if len(lags) == 0 {
		return out
	}
	sorted := append([]int(nil), lags...)
	sort.Ints(sorted)
	out.Min = sorted[0]
	out.Max = sorted[len(sorted)-1]
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		out.Median = float64(sorted[mid])
	} else {
		out.Median = float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return out
}

func dailyOutput(perDay []domain.DayCount, cum []domain.DayCumulative) []dto.DailyOutput {
	out := make([]dto.DailyOutput, 0, len(perDay))
	for idx, d := range perDay {
		out = append(out, dto.DailyOutput{Day: civil.Format(d.Day), N: d.N, Cum: cum[idx].Cum})
	}
	return out
}
