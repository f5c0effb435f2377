package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/seo-ai/seodesk/internal/config"
	"github.com/seo-ai/seodesk/internal/prefs"
	"github.com/seo-ai/seodesk/internal/queue"
	"github.com/seo-ai/seodesk/internal/seoai"
	"github.com/seo-ai/seodesk/internal/state"
	"github.com/seo-ai/seodesk/internal/ui"
)

// Options configure the seodesk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/seodesk/prefs.toml
	PollEvery  int    // process-list refresh in seconds, 0 keeps the config value
}

// Run boots the seodesk TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = applyPollOverride(cfg, opts)

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger := newLogger(cfg.DebugLogPath())

	client, err := seoai.NewClient(cfg.APIBase, cfg.Token)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := &state.Store{}
	ids := queue.LoadIDSet(cfg.ProcessedCardsPath())
	reconciler := queue.NewReconciler(ids)

	// Start background pollers
	StartPollers(ctx, store, client, logger, cfg.ProcessPoll, cfg.ArchivePoll)

	// Do initial refresh to populate the store before the UI starts
	refreshJobs(ctx, store, client, logger)
	refreshArchive(ctx, store, client, logger)

	uiOpts := ui.Options{
		Context:    ctx,
		Client:     client,
		Store:      store,
		Reconciler: reconciler,
		IDs:        ids,
		Config:     &cfg,
		Logger:     logger,
		ThemeName:  userPrefs.Theme,
		Section:    userPrefs.Section,
		PrefsPath:  opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// applyPollOverride lets the -poll flag win over the configured process-list
// cadence.
func applyPollOverride(cfg config.Config, opts Options) config.Config {
	if opts.PollEvery > 0 {
		cfg.ProcessPoll = time.Duration(opts.PollEvery) * time.Second
	}
	return cfg
}

// newLogger builds a file-backed debug logger. Errors are surfaced in the
// UI, never on the terminal the TUI owns, so a broken log path degrades to a
// silent logger.
func newLogger(path string) *log.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard)
	}
	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return logger
}
