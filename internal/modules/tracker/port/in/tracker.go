package in

import (
	"context"

	"jobtrack/internal/modules/tracker/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.ApplicationOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.ApplicationOutput, error)
	UpdateStatus(ctx context.Context, input dto.UpdateStatusInput) error
	RecordResponse(ctx context.Context, input dto.RecordResponseInput) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (dto.DeleteOutput, error)
	DeleteBatch(ctx context.Context, batchID string) (dto.DeleteOutput, error)
	Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (int, error)
	Seed(ctx context.Context, input dto.SeedInput) (dto.SeedOutput, error)
	Snapshot(ctx context.Context) ([]dto.ApplicationOutput, error)
}
