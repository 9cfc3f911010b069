package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	analyticsinadapter "jobtrack/internal/modules/analytics/adapter/in"
	analyticsdomain "jobtrack/internal/modules/analytics/domain"
	analyticsservice "jobtrack/internal/modules/analytics/service"
	analyticsusecase "jobtrack/internal/modules/analytics/usecase"
	trackerinadapter "jobtrack/internal/modules/tracker/adapter/in"
	trackeroutadapter "jobtrack/internal/modules/tracker/adapter/out"
	trackerdomain "jobtrack/internal/modules/tracker/domain"
	trackerout "jobtrack/internal/modules/tracker/port/out"
	trackerservice "jobtrack/internal/modules/tracker/service"
	trackerusecase "jobtrack/internal/modules/tracker/usecase"
	"jobtrack/internal/platform/clock"
	"jobtrack/internal/platform/config"
	"jobtrack/internal/platform/id"
	"jobtrack/internal/platform/logging"
	uiapp "jobtrack/internal/ui/app"
)

type App struct {
	TrackerCLI   trackerinadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler
	Logger       hclog.Logger

	store trackerout.ApplicationStore
}

// New wires the store, services and handlers described by cfg. Callers must
// Close the returned App.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.New(cfg)
	return NewWithLogger(ctx, cfg, logger)
}

func NewWithLogger(ctx context.Context, cfg config.Config, logger hclog.Logger) (*App, error) {
	aliases, err := trackerdomain.MergeAliases(cfg.StatusAliases)
	if err != nil {
		return nil, fmt.Errorf("status aliases: %w", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "driver", cfg.DBDriver)

	clk := clock.SystemClock{}
	trackerSvc := trackerservice.NewApplicationService(clk, id.UUID{}, store, trackerservice.Options{
		Aliases:   aliases,
		ListLimit: cfg.ListLimit,
		Location:  cfg.Location,
		Logger:    logger,
	})
	trackerUC := trackerusecase.NewInteractor(trackerSvc)

	d := cfg.Dashboard
	analyticsSvc := analyticsservice.NewAnalyticsService(trackerUC, clk, cfg.Location, analyticsservice.Params{
		HeatmapDays:        d.HeatmapDays,
		TopCompanies:       d.TopCompanies,
		TopTerms:           d.TopTerms,
		Ngrams:             analyticsdomain.NgramRange{Min: d.TermNgramMin, Max: d.TermNgramMax},
		MovingAverageWeeks: d.MovingAverageWeeks,
		RecentDays:         d.RecentDays,
		Stoplist:           analyticsdomain.DefaultStoplist().With(cfg.ExtraStopwords...),
	}, logger)

	return &App{
		TrackerCLI:   trackerinadapter.NewCLIHandler(trackerUC),
		AnalyticsCLI: analyticsinadapter.NewCLIHandler(analyticsusecase.NewInteractor(analyticsSvc)),
		Logger:       logger,
		store:        store,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}

func openStore(ctx context.Context, cfg config.Config) (trackerout.ApplicationStore, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		store, err := trackeroutadapter.NewPostgresStore(ctx, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	default:
		store, err := trackeroutadapter.NewSQLiteStore(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	}
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TrackerCLI, app.AnalyticsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
