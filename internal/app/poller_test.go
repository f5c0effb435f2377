package app

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/seo-ai/seodesk/internal/config"
	"github.com/seo-ai/seodesk/internal/seoai"
	"github.com/seo-ai/seodesk/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type stubAPI struct {
	jobs    []seoai.ProcessJob
	archive []seoai.ArchiveItem
	err     error
}

func (s *stubAPI) CreateCard(context.Context, seoai.CreateCardRequest) (seoai.Card, error) {
	return seoai.Card{}, errors.New("not implemented")
}
func (s *stubAPI) StartAnalysis(context.Context, int64) error    { return s.err }
func (s *stubAPI) StartDescription(context.Context, int64) error { return s.err }
func (s *stubAPI) FetchProcessList(context.Context) ([]seoai.ProcessJob, error) {
	return s.jobs, s.err
}
func (s *stubAPI) FetchArchive(context.Context) ([]seoai.ArchiveItem, error) {
	return s.archive, s.err
}

func TestApplyPollOverride(t *testing.T) {
	cfg := config.Config{ProcessPoll: 5 * time.Second, ArchivePoll: 10 * time.Second}

	got := applyPollOverride(cfg, Options{PollEvery: 2})
	if got.ProcessPoll != 2*time.Second {
		t.Errorf("ProcessPoll = %v, want 2s", got.ProcessPoll)
	}
	if got.ArchivePoll != 10*time.Second {
		t.Errorf("ArchivePoll = %v, want untouched 10s", got.ArchivePoll)
	}

	got = applyPollOverride(cfg, Options{})
	if got.ProcessPoll != 5*time.Second {
		t.Errorf("ProcessPoll = %v without override, want config value 5s", got.ProcessPoll)
	}
}

func TestRefreshJobs_AppliesAndReportsFailure(t *testing.T) {
	store := &state.Store{}
	logger := log.New(io.Discard)
	api := &stubAPI{jobs: []seoai.ProcessJob{{CardID: 1}}}

	if !refreshJobs(context.Background(), store, api, logger) {
		t.Fatalf("refreshJobs reported failure for healthy API")
	}
	if got := len(store.Snapshot().Jobs); got != 1 {
		t.Fatalf("snapshot jobs = %d, want 1", got)
	}

	api.err = errors.New("down")
	if refreshJobs(context.Background(), store, api, logger) {
		t.Fatalf("refreshJobs reported success for failing API")
	}
	snap := store.Snapshot()
	if len(snap.Jobs) != 1 {
		t.Fatalf("snapshot jobs = %d after failure, want previous data kept", len(snap.Jobs))
	}
	if snap.LastError == nil {
		t.Fatalf("LastError = nil after failure")
	}
}

func TestRefreshArchive_Applies(t *testing.T) {
	store := &state.Store{}
	logger := log.New(io.Discard)
	api := &stubAPI{archive: []seoai.ArchiveItem{{CardID: 7}}}

	if !refreshArchive(context.Background(), store, api, logger) {
		t.Fatalf("refreshArchive reported failure for healthy API")
	}
	if got := len(store.Snapshot().Archive); got != 1 {
		t.Fatalf("snapshot archive = %d, want 1", got)
	}
}
