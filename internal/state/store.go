package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/seo-ai/seodesk/internal/seoai"
)

// Snapshot represents the latest polled data available to the UI.
type Snapshot struct {
	Jobs                []seoai.ProcessJob
	Archive             []seoai.ArchiveItem
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot. Each feed (process
// list, archive) is guarded by a sequence number issued at request start, so
// a slow poll that resolves after a later-issued one is discarded instead of
// regressing the view.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot

	nextSeq        uint64
	jobsAppliedSeq uint64
	archAppliedSeq uint64
}

// Begin issues a sequence number for a poll about to start. Responses are
// applied in issue order regardless of arrival order.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// ApplyJobs records a process-list poll result. Returns false when the
// response is stale (a later-issued poll already applied) and was dropped.
// On error the previous data is kept but the error is recorded for
// visibility.
func (s *Store) ApplyJobs(seq uint64, jobs []seoai.ProcessJob, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.jobsAppliedSeq {
		return false
	}
	s.jobsAppliedSeq = seq

	if err != nil {
		s.recordErrorLocked(err)
		return true
	}
	s.snapshot.Jobs = cloneJobs(jobs)
	s.recordSuccessLocked()
	return true
}

// ApplyArchive records an archive poll result with the same staleness and
// error semantics as ApplyJobs.
func (s *Store) ApplyArchive(seq uint64, items []seoai.ArchiveItem, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.archAppliedSeq {
		return false
	}
	s.archAppliedSeq = seq

	if err != nil {
		s.recordErrorLocked(err)
		return true
	}
	s.snapshot.Archive = cloneArchive(items)
	s.recordSuccessLocked()
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Jobs = cloneJobs(s.snapshot.Jobs)
	snap.Archive = cloneArchive(s.snapshot.Archive)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store) recordErrorLocked(err error) {
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

func (s *Store) recordSuccessLocked() {
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

func cloneJobs(jobs []seoai.ProcessJob) []seoai.ProcessJob {
	if len(jobs) == 0 {
		return nil
	}
	dup := make([]seoai.ProcessJob, len(jobs))
	copy(dup, jobs)
	return dup
}

func cloneArchive(items []seoai.ArchiveItem) []seoai.ArchiveItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]seoai.ArchiveItem, len(items))
	copy(dup, items)
	return dup
}
