package usecase

import (
	"context"
	"fmt"
	"strings"

	"jobtrack/internal/modules/tracker/domain"
	"jobtrack/internal/modules/tracker/dto"
	trackerin "jobtrack/internal/modules/tracker/port/in"
	"jobtrack/internal/modules/tracker/service"
	apperrors "jobtrack/internal/platform/errors"
)

type Interactor struct {
	svc *service.ApplicationService
}

func NewInteractor(svc *service.ApplicationService) trackerin.Usecase {
	return &Interactor{svc: svc}
}

// Add accepts free-form statuses from the command line and normalises them
// before storing.
func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.ApplicationOutput, error) {
	status := domain.StatusApplied
	if strings.TrimSpace(input.Status) != "" {
		resolved, err := i.svc.ResolveStatus(input.Status)
		if err != nil {
			return dto.ApplicationOutput{}, err
		}
		status = resolved
	}
	app, err := i.svc.Add(ctx, input.Company, input.Role, input.DateApplied, status)
	if err != nil {
		return dto.ApplicationOutput{}, err
	}
	return toOutput(app), nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.ApplicationOutput, error) {
	filter, err := i.toFilter(input)
	if err != nil {
		return nil, err
	}
	apps, err := i.svc.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toOutputs(apps), nil
}

func (i *Interactor) UpdateStatus(ctx context.Context, input dto.UpdateStatusInput) error {
	status, err := i.svc.ResolveStatus(input.Status)
	if err != nil {
		return err
	}
	return i.svc.UpdateStatus(ctx, input.ID, status)
}

func (i *Interactor) RecordResponse(ctx context.Context, input dto.RecordResponseInput) error {
	return i.svc.RecordResponse(ctx, input.ID, input.Date)
}

func (i *Interactor) Delete(ctx context.Context, id int64) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) DeleteAll(ctx context.Context) (dto.DeleteOutput, error) {
	n, err := i.svc.DeleteAll(ctx)
	if err != nil {
		return dto.DeleteOutput{}, err
	}
	return dto.DeleteOutput{Deleted: n}, nil
}

func (i *Interactor) DeleteBatch(ctx context.Context, batchID string) (dto.DeleteOutput, error) {
	n, err := i.svc.DeleteBatch(ctx, batchID)
	if err != nil {
		return dto.DeleteOutput{}, err
	}
	return dto.DeleteOutput{Deleted: n}, nil
}

func (i *Interactor) Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error) {
	if input.Reader == nil {
		return dto.ImportOutput{}, fmt.Errorf("%w: import reader is required", apperrors.ErrInvalidInput)
	}
	result, err := i.svc.Import(ctx, input.Reader, input.Mapping)
	out := dto.ImportOutput{
		BatchID:         result.BatchID,
		Inserted:        result.Inserted,
		Skipped:         result.Skipped,
		InvalidDates:    result.InvalidDates,
		UnknownStatuses: result.UnknownStatuses,
		Encoding:        result.Encoding,
	}
	if result.Delimiter != 0 {
		out.Delimiter = string(result.Delimiter)
	}
	return out, err
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (int, error) {
	if input.Writer == nil {
		return 0, fmt.Errorf("%w: export writer is required", apperrors.ErrInvalidInput)
	}
	filter, err := i.toFilter(input.Filter)
	if err != nil {
		return 0, err
	}
	return i.svc.Export(ctx, input.Writer, filter)
}

func (i *Interactor) Seed(ctx context.Context, input dto.SeedInput) (dto.SeedOutput, error) {
	count := input.Count
	if count == 0 {
		count = service.DefaultSeedCount
	}
	batchID, n, err := i.svc.Seed(ctx, count, input.Seed)
	if err != nil {
		return dto.SeedOutput{}, err
	}
	return dto.SeedOutput{BatchID: batchID, Inserted: n}, nil
}

func (i *Interactor) Snapshot(ctx context.Context) ([]dto.ApplicationOutput, error) {
	apps, err := i.svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(apps), nil
}

func (i *Interactor) toFilter(input dto.ListInput) (domain.ListFilter, error) {
	filter := domain.ListFilter{
		DateStart:     strings.TrimSpace(input.DateStart),
		DateEnd:       strings.TrimSpace(input.DateEnd),
		CompanySubstr: strings.TrimSpace(input.CompanySubstr),
		RoleSubstr:    strings.TrimSpace(input.RoleSubstr),
		ImportBatch:   strings.TrimSpace(input.ImportBatch),
		Limit:         input.Limit,
	}
	if strings.TrimSpace(input.Status) != "" {
		status, err := i.svc.ResolveStatus(input.Status)
		if err != nil {
			return domain.ListFilter{}, err
		}
		filter.Status = status
	}
	return filter, nil
}

func toOutput(app domain.Application) dto.ApplicationOutput {
	return dto.ApplicationOutput{
		ID:           app.ID,
		Company:      app.Company,
		Role:         app.Role,
		DateApplied:  app.DateApplied,
		Status:       string(app.Status),
		ResponseDate: app.ResponseDate,
		ImportBatch:  app.ImportBatch,
		CreatedAt:    app.CreatedAt,
	}
}

func toOutputs(apps []domain.Application) []dto.ApplicationOutput {
	out := make([]dto.ApplicationOutput, 0, len(apps))
	for _, app := range apps {
		out = append(out, toOutput(app))
	}
	return out
}
