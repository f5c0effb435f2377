package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/seo-ai/seodesk/internal/seoai"
	"github.com/seo-ai/seodesk/internal/state"
)

const (
	defaultProcessPoll = 5 * time.Second
	defaultArchivePoll = 10 * time.Second
	maxBackoff         = 30 * time.Second
)

// StartPollers launches the background goroutines that refresh the store at
// the configured cadences. It returns immediately.
func StartPollers(ctx context.Context, store *state.Store, client seoai.API, logger *log.Logger, processEvery, archiveEvery time.Duration) {
	if processEvery <= 0 {
		processEvery = defaultProcessPoll
	}
	if archiveEvery <= 0 {
		archiveEvery = defaultArchivePoll
	}

	go pollLoop(ctx, processEvery, func() bool {
		return refreshJobs(ctx, store, client, logger)
	})
	go pollLoop(ctx, archiveEvery, func() bool {
		return refreshArchive(ctx, store, client, logger)
	})
}

// pollLoop runs refresh until the context ends, backing off exponentially
// while refresh keeps failing.
func pollLoop(ctx context.Context, interval time.Duration, refresh func() bool) {
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(calculateBackoff(failures, interval)):
		}
		if refresh() {
			failures = 0
		} else {
			failures++
		}
	}
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

func refreshJobs(ctx context.Context, store *state.Store, client seoai.API, logger *log.Logger) bool {
	seq := store.Begin()
	jobs, err := client.FetchProcessList(ctx)
	applied := store.ApplyJobs(seq, jobs, err)
	if err != nil {
		logger.Warn("process-list poll failed", "err", err)
		return false
	}
	if !applied {
		logger.Debug("dropped superseded process-list poll", "seq", seq)
	}
	return true
}

func refreshArchive(ctx context.Context, store *state.Store, client seoai.API, logger *log.Logger) bool {
	seq := store.Begin()
	items, err := client.FetchArchive(ctx)
	applied := store.ApplyArchive(seq, items, err)
	if err != nil {
		logger.Warn("archive poll failed", "err", err)
		return false
	}
	if !applied {
		logger.Debug("dropped superseded archive poll", "seq", seq)
	}
	return true
}
