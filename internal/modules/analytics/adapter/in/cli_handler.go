package in

import (
	"context"

	"jobtrack/internal/modules/analytics/dto"
	analyticsin "jobtrack/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Dashboard(ctx context.Context) (dto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx)
}

func (h CLIHandler) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Weekly(ctx context.Context, window int) ([]dto.WeekRowOutput, error) {
	return h.usecase.Weekly(ctx, dto.WeeklyInput{Window: window})
}

func (h CLIHandler) Calendar(ctx context.Context, days int, end string) (dto.CalendarOutput, error) {
	return h.usecase.Calendar(ctx, dto.CalendarInput{Days: days, End: end})
}

func (h CLIHandler) TopCompanies(ctx context.Context, k int) ([]dto.CompanyCountOutput, error) {
	return h.usecase.TopCompanies(ctx, dto.TopCompaniesInput{K: k})
}

func (h CLIHandler) TopRoleTerms(ctx context.Context, n, ngramMin, ngramMax int) ([]dto.TermCountOutput, error) {
	return h.usecase.TopRoleTerms(ctx, dto.TopRoleTermsInput{N: n, NgramMin: ngramMin, NgramMax: ngramMax})
}

func (h CLIHandler) Funnel(ctx context.Context, stages []string) ([]dto.StageCountOutput, error) {
	return h.usecase.Funnel(ctx, dto.FunnelInput{Stages: stages})
}

func (h CLIHandler) WeekdayStatus(ctx context.Context) ([]dto.WeekdayStatusOutput, error) {
	return h.usecase.WeekdayStatus(ctx)
}

func (h CLIHandler) ResponseLag(ctx context.Context) (dto.ResponseLagOutput, error) {
	return h.usecase.ResponseLag(ctx)
}

func (h CLIHandler) StatusCount(ctx context.Context, status string) (int, error) {
	return h.usecase.StatusCount(ctx, dto.StatusCountInput{Status: status})
}

func (h CLIHandler) CountInWindow(ctx context.Context, days int, end string) (int, error) {
	return h.usecase.CountInWindow(ctx, dto.WindowCountInput{Days: days, End: end})
}

func (h CLIHandler) Daily(ctx context.Context) ([]dto.DailyOutput, error) {
	return h.usecase.Daily(ctx)
}
