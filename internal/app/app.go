package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jswitzer/pulse/internal/auth"
	"github.com/jswitzer/pulse/internal/config"
	"github.com/jswitzer/pulse/internal/connect"
	"github.com/jswitzer/pulse/internal/prefs"
	"github.com/jswitzer/pulse/internal/report"
	"github.com/jswitzer/pulse/internal/state"
	"github.com/jswitzer/pulse/internal/ui"
)

// Options configure the Pulse dashboard.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/pulse/prefs.toml
	PollEvery  int    // seconds; zero uses default
}

// Run boots the Pulse TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	manager, err := auth.NewManager(cfg.AuthBase, cfg.TokenPath, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init auth manager: %w", err)
	}
	if !manager.Authenticated() {
		return fmt.Errorf("no saved session: run `pulse login` first")
	}

	client, err := connect.NewClient(cfg.APIBase, manager, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init connect client: %w", err)
	}

	builder := report.NewBuilder(client)
	store := &state.Store{}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	StartPoller(ctx, store, builder, client, interval)

	// Do initial refresh to populate store before UI starts
	refresh(ctx, store, builder, client)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		Builder:   builder,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		Units:     userPrefs.Units,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
