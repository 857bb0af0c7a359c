package bootstrap

import (
	"context"
	"fmt"

	"github.com/brieflab/briefsight/internal/config"
	"github.com/brieflab/briefsight/internal/core/insight"
	"github.com/brieflab/briefsight/internal/core/ports"
	"github.com/brieflab/briefsight/internal/core/usecase"
	"github.com/brieflab/briefsight/internal/infrastructure/parser"
	"github.com/brieflab/briefsight/internal/infrastructure/queue/nats"
	"github.com/brieflab/briefsight/internal/infrastructure/repository/postgres"
	"github.com/brieflab/briefsight/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.BriefRepository

	UploadUC  *usecase.UploadBriefUseCase
	AnalyzeUC *usecase.AnalyzeBriefUseCase
	TextUC    *usecase.AnalyzeTextUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewBriefRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	engine := insight.New()
	textParser := parser.New(storage)

	uploadUC := usecase.NewUploadBriefUseCase(repo, storage, queue)
	analyzeUC := usecase.NewAnalyzeBriefUseCase(repo, textParser, engine)
	textUC := usecase.NewAnalyzeTextUseCase(engine)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		UploadUC:  uploadUC,
		AnalyzeUC: analyzeUC,
		TextUC:    textUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
