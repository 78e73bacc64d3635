package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tempohq/daybrief/internal/cache"
	"github.com/tempohq/daybrief/internal/config"
	"github.com/tempohq/daybrief/internal/prefs"
	"github.com/tempohq/daybrief/internal/state"
	"github.com/tempohq/daybrief/internal/tempo"
	"github.com/tempohq/daybrief/internal/ui"
)

// Options configure the daybrief application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/daybrief/prefs.toml
	PollEvery  int    // seconds; zero uses the configured default
}

// Run boots the daybrief TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	tempo.SetNaiveLocation(cfg.NaiveLocation())

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := tempo.NewClient(cfg.Server, cfg.Token)
	if err != nil {
		return fmt.Errorf("init tempo client: %w", err)
	}

	snapshots, err := cache.New(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	store := &state.Store{}
	loader := NewLoader(client, snapshots, store)
	selected := state.NewSelectedDate(Today())

	interval := cfg.PollInterval()
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// The poller issues the initial load in the background; the UI starts
	// right away and renders the cached snapshot as soon as it lands.
	StartPoller(ctx, loader, interval, selected.Get)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		Load:      loader.Load,
		Date:      selected,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		StartView: userPrefs.DefaultView,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
