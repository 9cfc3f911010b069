package out

import (
	"context"

	"jobtrack/internal/modules/tracker/domain"
)

// ApplicationStore persists applications. Mutations of a missing id return
// apperrors.ErrNotFound.
type ApplicationStore interface {
	Insert(ctx context.Context, app domain.Application) (int64, error)
	InsertBatch(ctx context.Context, apps []domain.Application) (int, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	SetResponseDate(ctx context.Context, id int64, date string) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	DeleteBatch(ctx context.Context, batchID string) (int64, error)
	Close() error
}
