package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bassista/go_sitedesk/internal/config"
	"github.com/bassista/go_sitedesk/internal/fetch"
	"github.com/bassista/go_sitedesk/internal/logger"
	"github.com/bassista/go_sitedesk/internal/refresh"
	"github.com/bassista/go_sitedesk/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
//
// New is the only place a Store is created, so every view shares one instance.
type App struct {
	Config    *config.Config
	Store     store.AppStore
	Client    *fetch.Client
	Refresher *refresh.Refresher
	Registry  *prometheus.Registry

	BaseCtx context.Context
	Cancel  context.CancelFunc

	refreshDone <-chan struct{}
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	clientOpts := []fetch.ClientOption{
		fetch.WithBaseURL(cfg.Upstream.BaseURL),
		fetch.WithMetrics(fetch.NewMetrics(reg)),
	}
	if cfg.Upstream.Timeout > 0 {
		clientOpts = append(clientOpts, fetch.WithTimeout(cfg.Upstream.Timeout))
	}
	if cfg.Upstream.Token != "" {
		clientOpts = append(clientOpts, fetch.WithDefaults(fetch.WithBearerToken(cfg.Upstream.Token)))
	}
	client := fetch.NewClient(clientOpts...)

	st := store.New()
	r := refresh.NewRefresher(client, st, refresh.Options{
		SitesPath:   cfg.Upstream.SitesPath,
		ClientsPath: cfg.Upstream.ClientsPath,
		UserPath:    cfg.Upstream.UserPath,
		PageSize:    cfg.Upstream.PageSize,
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:    cfg,
		Store:     st,
		Client:    client,
		Refresher: r,
		Registry:  reg,
		BaseCtx:   ctx,
		Cancel:    cancel,
	}, nil
}

// Shutdown cancels the lifecycle context and waits for the refresh loop to stop.
func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
	if a.refreshDone != nil {
		<-a.refreshDone
	}
}

// StartWatchers starts the refresh loop (when enabled) and the config file
// watcher that re-applies the log level on change.
func (a *App) StartWatchers() error {
	if a.Config.Refresh.Enabled {
		a.refreshDone = a.Refresher.Start(a.BaseCtx, a.Config.Refresh.Interval)
	}

	if a.Config.ConfigFile == "" {
		return nil
	}
	if err := config.WatchFile(a.BaseCtx, a.Config.ConfigFile, a.reloadLogLevel); err != nil {
		return fmt.Errorf("cannot start config file watcher: %w", err)
	}
	return nil
}

func (a *App) reloadLogLevel() {
	log := logger.WithComponent("config")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Warnf("config reload failed, keeping current settings: %v", err)
		return
	}
	if err := logger.SetLevel(cfg.Misc.LogLevel); err != nil {
		log.Warnf("cannot apply log level %q: %v", cfg.Misc.LogLevel, err)
		return
	}
	log.Infof("log level set to %s", cfg.Misc.LogLevel)
}
