package in

import (
	"context"

	"jobtrack/internal/modules/analytics/dto"
)

type Usecase interface {
	Dashboard(ctx context.Context) (dto.DashboardOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Weekly(ctx context.Context, input dto.WeeklyInput) ([]dto.WeekRowOutput, error)
	Calendar(ctx context.Context, input dto.CalendarInput) (dto.CalendarOutput, error)
	TopCompanies(ctx context.Context, input dto.TopCompaniesInput) ([]dto.CompanyCountOutput, error)
	TopRoleTerms(ctx context.Context, input dto.TopRoleTermsInput) ([]dto.TermCountOutput, error)
	Funnel(ctx context.Context, input dto.FunnelInput) ([]dto.StageCountOutput, error)
	WeekdayStatus(ctx context.Context) ([]dto.WeekdayStatusOutput, error)
	ResponseLag(ctx context.Context) (dto.ResponseLagOutput, error)
	StatusCount(ctx context.Context, input dto.StatusCountInput) (int, error)
	CountInWindow(ctx context.Context, input dto.WindowCountInput) (int, error)
	Daily(ctx context.Context) ([]dto.DailyOutput, error)
}
