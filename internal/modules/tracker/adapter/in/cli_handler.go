package in

import (
	"context"
	"io"

	"jobtrack/internal/modules/tracker/dto"
	trackerin "jobtrack/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, company, role, dateApplied, status string) (dto.ApplicationOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{Company: company, Role: role, DateApplied: dateApplied, Status: status})
}

func (h CLIHandler) List(ctx context.Context, input dto.ListInput) ([]dto.ApplicationOutput, error) {
	return h.usecase.List(ctx, input)
}

func (h CLIHandler) UpdateStatus(ctx context.Context, id int64, status string) error {
	return h.usecase.UpdateStatus(ctx, dto.UpdateStatusInput{ID: id, Status: status})
}

func (h CLIHandler) RecordResponse(ctx context.Context, id int64, date string) error {
	return h.usecase.RecordResponse(ctx, dto.RecordResponseInput{ID: id, Date: date})
}

func (h CLIHandler) Delete(ctx context.Context, id int64) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) DeleteAll(ctx context.Context) (dto.DeleteOutput, error) {
	return h.usecase.DeleteAll(ctx)
}

func (h CLIHandler) DeleteBatch(ctx context.Context, batchID string) (dto.DeleteOutput, error) {
	return h.usecase.DeleteBatch(ctx, batchID)
}

func (h CLIHandler) Import(ctx context.Context, r io.Reader, mapping map[string]string) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, dto.ImportInput{Reader: r, Mapping: mapping})
}

func (h CLIHandler) Export(ctx context.Context, w io.Writer, filter dto.ListInput) (int, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Writer: w, Filter: filter})
}

func (h CLIHandler) Seed(ctx context.Context, count int, seed int64) (dto.SeedOutput, error) {
	return h.usecase.Seed(ctx, dto.SeedInput{Count: count, Seed: seed})
}
