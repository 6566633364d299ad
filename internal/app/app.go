package app

import (
	"context"
	"fmt"
	"time"

	"github.com/waitline/waitline/internal/config"
	"github.com/waitline/waitline/internal/prefs"
	"github.com/waitline/waitline/internal/queueapi"
	"github.com/waitline/waitline/internal/state"
	"github.com/waitline/waitline/internal/ui"
)

// Options configure the waitline application.
type Options struct {
	ConfigPath string
	EnvPath    string
	PrefsPath  string // empty uses default ~/.config/waitline/prefs.toml
	PollEvery  int    // seconds; zero uses the configured refresh interval
}

// Run boots the waitline TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath, opts.EnvPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	var service queueapi.QueueService
	if !cfg.DemoMode() {
		client, err := queueapi.NewClient(cfg.APIURL, cfg.RequestTimeout())
		if err != nil {
			return fmt.Errorf("init queue client: %w", err)
		}
		service = client
	}

	store := &state.Store{}
	ctrl := NewController(service, store, cfg.DemoMode())

	interval := cfg.RefreshInterval()
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Background poller covers the fixed-interval refresh; the UI triggers
	// its own reloads for manual refresh and after mutations.
	StartPoller(ctx, ctrl, interval)

	uiOpts := ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Service:    service,
		Store:      store,
		Config:     &cfg,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
