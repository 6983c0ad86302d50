package cmd

import (
	"context"
	"fmt"

	"objectsync/core/config"
	"objectsync/core/database"
	"objectsync/core/identity"
	"objectsync/core/logger"
	"objectsync/core/metrics"
	"objectsync/core/model"
	"objectsync/core/refresh"
	"objectsync/core/source"
	"objectsync/core/storage"
	"objectsync/feature/mapping"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// app is the wiring shared by every command.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *model.Registry
	manager  *refresh.Manager
	loaders  []*mapping.Loader
	checks   map[string]source.Check
	metrics  *prometheus.Registry
}

// loadConfig loads configuration and creates the logger.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

// connect opens the connection the configured source kind needs.
func connect(cfg *config.Config, logg *zap.Logger) (source.Deps, error) {
	deps := source.Deps{Logger: logg, Bucket: cfg.Storage.Bucket}
	switch cfg.Source.Kind {
	case source.KindSQL:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return deps, err
		}
		deps.DB = db
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	case source.KindBucket:
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return deps, err
		}
		deps.Storage = store
	}
	return deps, nil
}

// bootstrap loads configuration, connects the configured source and builds the
// refresh manager and mapping loaders.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, logg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	deps, err := connect(cfg, logg)
	if err != nil {
		return nil, err
	}

	registry := model.NewRegistry()
	if err := source.Register(ctx, cfg.Source, deps, registry); err != nil {
		return nil, err
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mgr := refresh.NewManager(registry, identity.New(), logg, metrics.New(promReg), cfg.Queue)

	var loaders []*mapping.Loader
	for _, mc := range cfg.Mappings {
		l, err := mapping.NewLoader(mc, mgr, logg)
		if err != nil {
			return nil, err
		}
		loaders = append(loaders, l)
	}

	return &app{
		cfg:      cfg,
		logger:   logg,
		registry: registry,
		manager:  mgr,
		loaders:  loaders,
		checks:   source.Checks(cfg.Source, deps),
		metrics:  promReg,
	}, nil
}
