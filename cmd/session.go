package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Tiliavir/caretaker-log/internal/app"
	"github.com/Tiliavir/caretaker-log/internal/config"
	"github.com/Tiliavir/caretaker-log/internal/logger"
	"github.com/Tiliavir/caretaker-log/internal/snapshot"
	"github.com/Tiliavir/caretaker-log/internal/store"
)

// session bundles what a command needs for one run.
type session struct {
	app   *app.App
	store store.Store
	log   *zap.Logger
}

func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// openSession loads the config, opens the store and the controller. The
// snapshot sync runs when sync is true and --no-sync is not set.
func openSession(ctx context.Context, sync bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log.Env, cfg.Log.Level)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var sources []snapshot.Source
	if cfg.Snapshot.BaseURL != "" {
		sources, err = snapshot.HTTPSources(ctx, cfg.Snapshot.BaseURL, cfg.Snapshot.Token)
		if err != nil {
			return nil, err
		}
	} else {
		sources = snapshot.FileSources(cfg.Snapshot.Dir)
	}

	s, err := store.New(cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", app.ErrStorage, err)
	}

	a, err := app.Open(ctx, app.Options{
		Store:    s,
		Catalog:  cfg.TaskCatalog(),
		Location: loc,
		Sources:  sources,
		Logger:   log,
		NoSync:   !sync || noSync,
	})
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return &session{app: a, store: s, log: log}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("closing store", zap.Error(err))
	}
	_ = s.log.Sync()
}
