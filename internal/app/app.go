package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jurisdocs/caseflow/internal/config"
	"github.com/jurisdocs/caseflow/internal/core/extraction"
	"github.com/jurisdocs/caseflow/internal/core/store"
	"github.com/jurisdocs/caseflow/internal/jobs"
	"github.com/jurisdocs/caseflow/internal/services"
)

// App owns the store, the extraction engine, the background jobs and the
// HTTP server. Everything lives in process memory; restarting the
// process starts the pipeline empty.
type App struct {
	Store  store.Store
	Engine *extraction.Engine
	Runner *jobs.Runner
	Server *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	st := store.NewMemoryStore()
	locks := store.NewBatchLocks()

	engine := extraction.NewEngine(st, locks, extraction.Config{
		BasicDelay:   cfg.BasicDelay,
		SummaryDelay: cfg.SummaryDelay,
		FailureRate:  cfg.FailureRate,
	})
	engine.Start(ctx, cfg.Workers)
	logrus.WithField("workers", cfg.Workers).Info("extraction engine started")

	uploads := services.NewUploadService(st, engine)
	review := services.NewReviewService(st, engine, locks)

	runner := jobs.NewRunner(jobs.NewRequeueJob(st, engine, cfg.RequeueSchedule))
	if err := runner.Start(); err != nil {
		return nil, err
	}

	server := NewServer(cfg, uploads, review)

	return &App{Store: st, Engine: engine, Runner: runner, Server: server}, nil
}

// Close stops the background scheduler. Engine workers exit with the
// context passed to NewApp.
func (a *App) Close() {
	if a.Runner != nil {
		a.Runner.Stop()
	}
}
