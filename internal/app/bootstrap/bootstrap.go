// Package bootstrap is the composition root. Construction and wiring live
// here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	campaignservice "fieldproof/contexts/campaign-workflow/campaign-service"
	campaignmemory "fieldproof/contexts/campaign-workflow/campaign-service/adapters/memory"
	campaignpostgres "fieldproof/contexts/campaign-workflow/campaign-service/adapters/postgres"
	imageservice "fieldproof/contexts/campaign-workflow/image-service"
	"fieldproof/contexts/campaign-workflow/image-service/adapters/filestore"
	imagememory "fieldproof/contexts/campaign-workflow/image-service/adapters/memory"
	imagepostgres "fieldproof/contexts/campaign-workflow/image-service/adapters/postgres"
	reportingservice "fieldproof/contexts/reporting/reporting-service"
	"fieldproof/internal/platform/config"
	"fieldproof/internal/platform/db"
	"fieldproof/internal/platform/httpserver"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg).With("service", cfg.ServiceName, "process", "api")

	var (
		pg        *db.Postgres
		campaigns campaignservice.Module
		images    imageservice.Module
		reports   reportingservice.Module
	)

	// Blobs stay in memory in both modes; object storage is a deployment
	// concern this process does not own yet.
	files := filestore.NewMemoryFileStore()

	if dsn := strings.TrimSpace(cfg.PostgresDSN()); dsn != "" {
		pg, err = db.Connect(dsn, db.Pool{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeMins) * time.Minute,
		})
		if err != nil {
			return nil, err
		}

		campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
		imageRepo := imagepostgres.NewRepository(pg.DB, logger)

		campaigns = campaignservice.NewModule(campaignservice.Dependencies{
			Campaigns:   campaignRepo,
			Assignments: campaignRepo,
			Clock:       campaignpostgres.SystemClock{},
			IDGenerator: campaignpostgres.UUIDGenerator{},
			Logger:      logger,
		})
		images = imageservice.NewModule(imageservice.Dependencies{
			Images:      imageRepo,
			Campaigns:   campaignReader{campaigns: campaignRepo},
			Assignments: assignmentChecker{assignments: campaignRepo},
			Files:       files,
			Clock:       campaignpostgres.SystemClock{},
			IDGenerator: campaignpostgres.UUIDGenerator{},
			Logger:      logger,
		})
		reports = reportingservice.NewModule(reportingservice.Dependencies{
			Campaigns:   reportCampaignSource{campaigns: campaignRepo},
			Images:      reportImageSource{images: imageRepo},
			Assignments: assignmentChecker{assignments: campaignRepo},
			Clock:       campaignpostgres.SystemClock{},
			Logger:      logger,
		})

		logger.Info("persistence wired",
			"event", "bootstrap_persistence_wired",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"backend", "postgres",
		)
	} else {
		campaignStore := campaignmemory.NewStore(nil)
		imageStore := imagememory.NewStore(nil)

		campaigns = campaignservice.NewModule(campaignservice.Dependencies{
			Campaigns:   campaignStore,
			Assignments: campaignStore,
			Clock:       campaignStore,
			IDGenerator: campaignStore,
			Logger:      logger,
		})
		images = imageservice.NewModule(imageservice.Dependencies{
			Images:      imageStore,
			Campaigns:   campaignReader{campaigns: campaignStore},
			Assignments: assignmentChecker{assignments: campaignStore},
			Files:       files,
			Clock:       imageStore,
			IDGenerator: imageStore,
			Logger:      logger,
		})
		reports = reportingservice.NewModule(reportingservice.Dependencies{
			Campaigns:   reportCampaignSource{campaigns: campaignStore},
			Images:      reportImageSource{images: imageStore},
			Assignments: assignmentChecker{assignments: campaignStore},
			Clock:       campaignStore,
			Logger:      logger,
		})

		logger.Info("persistence wired",
			"event", "bootstrap_persistence_wired",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"backend", "memory",
		)
	}

	server := httpserver.New(campaigns, images, reports, httpserver.Options{
		Addr:              cfg.Addr(),
		Logger:            logger,
		MutationRateLimit: cfg.Server.MutationRateLimit,
		MutationBurst:     cfg.Server.MutationBurst,
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(cfg.App.LogLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
