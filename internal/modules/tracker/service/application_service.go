package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"jobtrack/internal/modules/tracker/domain"
	trackerout "jobtrack/internal/modules/tracker/port/out"
	"jobtrack/internal/platform/civil"
	"jobtrack/internal/platform/clock"
	apperrors "jobtrack/internal/platform/errors"
	"jobtrack/internal/platform/id"
)

type Options struct {
	Aliases   map[string]domain.Status
	ListLimit int
	Location  *time.Location
	Logger    hclog.Logger
}

type ApplicationService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     trackerout.ApplicationStore
	aliases   map[string]domain.Status
	listLimit int
	loc       *time.Location
	logger    hclog.Logger
}

func NewApplicationService(clock clock.Clock, idGen id.Generator, store trackerout.ApplicationStore, opts Options) *ApplicationService {
	if opts.Aliases == nil {
		opts.Aliases = domain.DefaultAliases()
	}
	if opts.ListLimit <= 0 {
		opts.ListLimit = domain.DefaultListLimit
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &ApplicationService{
		clock:     clock,
		idGen:     idGen,
		store:     store,
		aliases:   opts.Aliases,
		listLimit: opts.ListLimit,
		loc:       opts.Location,
		logger:    opts.Logger.Named("tracker"),
	}
}

// Add stores one application. The date defaults to today and is rewritten as
// YYYY-MM-DD; the status must already be canonical.
func (s *ApplicationService) Add(ctx context.Context, company, role, dateApplied string, status domain.Status) (domain.Application, error) {
	if status == "" {
		status = domain.StatusApplied
	}
	day := clock.Today(s.clock, s.loc)
	if strings.TrimSpace(dateApplied) != "" {
		parsed, err := civil.Parse(dateApplied)
		if err != nil {
			return domain.Application{}, fmt.Errorf("%w: date applied: %v", apperrors.ErrInvalidInput, err)
		}
		day = parsed
	}
	app := domain.Application{
		Company:     strings.TrimSpace(company),
		Role:        strings.TrimSpace(role),
		DateApplied: civil.Format(day),
		Status:      status,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := app.Validate(); err != nil {
		return domain.Application{}, err
	}
	appID, err := s.store.Insert(ctx, app)
	if err != nil {
		return domain.Application{}, err
	}
	app.ID = appID
	s.logger.Debug("added application", "id", appID, "company", app.Company)
	return app, nil
}

func (s *ApplicationService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Application, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.DateStart = isoOrEmpty(filter.DateStart)
	filter.DateEnd = isoOrEmpty(filter.DateEnd)
	if filter.Limit == 0 {
		filter.Limit = s.listLimit
	}
	return s.store.List(ctx, filter)
}

// Snapshot returns every stored application regardless of the list limit.
func (s *ApplicationService) Snapshot(ctx context.Context) ([]domain.Application, error) {
	return s.store.List(ctx, domain.ListFilter{Limit: domain.Unlimited})
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, appID int64, status domain.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateStatus(ctx, appID, status); err != nil {
		return err
	}
	s.logger.Debug("updated status", "id", appID, "status", string(status))
	return nil
}

func (s *ApplicationService) RecordResponse(ctx context.Context, appID int64, date string) error {
	day := clock.Today(s.clock, s.loc)
	if strings.TrimSpace(date) != "" {
		parsed, err := civil.Parse(date)
		if err != nil {
			return fmt.Errorf("%w: response date: %v", apperrors.ErrInvalidInput, err)
		}
		day = parsed
	}
	return s.store.SetResponseDate(ctx, appID, civil.Format(day))
}

func (s *ApplicationService) Delete(ctx context.Context, appID int64) error {
	return s.store.Delete(ctx, appID)
}

func (s *ApplicationService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("deleted all applications", "rows", n)
	return n, nil
}

func (s *ApplicationService) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	batchID = strings.TrimSpace(batchID)
	if batchID == "" {
		return 0, fmt.Errorf("%w: batch id is required", apperrors.ErrInvalidInput)
	}
	n, err := s.store.DeleteBatch(ctx, batchID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: import batch %q", apperrors.ErrNotFound, batchID)
	}
	s.logger.Info("deleted import batch", "batch", batchID, "rows", n)
	return n, nil
}

// ResolveStatus maps free-form text onto the enumeration using the
// configured aliases.
func (s *ApplicationService) ResolveStatus(raw string) (domain.Status, error) {
	return domain.NormalizeStatus(raw, s.aliases)
}

func isoOrEmpty(value string) string {
	if value == "" {
		return ""
	}
	day, err := civil.Parse(value)
	if err != nil {
		return value
	}
	return civil.Format(day)
}
