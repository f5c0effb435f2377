package state

import (
	"errors"
	"testing"

	"github.com/seo-ai/seodesk/internal/seoai"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	seq := s.Begin()
	jobs := []seoai.ProcessJob{{CardID: 1}, {CardID: 2}}
	if !s.ApplyJobs(seq, jobs, nil) {
		t.Fatalf("ApplyJobs dropped a fresh response")
	}

	snap := s.Snapshot()
	if len(snap.Jobs) != 2 {
		t.Fatalf("snapshot jobs = %d, want 2", len(snap.Jobs))
	}

	// Mutating the returned slice must not affect the store.
	snap.Jobs[0].CardID = 999
	if got := s.Snapshot().Jobs[0].CardID; got != 1 {
		t.Fatalf("store job mutated through snapshot: card id = %d", got)
	}
}

func TestStore_OutOfOrderPollDiscarded(t *testing.T) {
	var s Store

	// Poll #1 issued first, poll #2 issued second.
	seq1 := s.Begin()
	seq2 := s.Begin()

	// Poll #2 resolves first with the newer data.
	if !s.ApplyJobs(seq2, []seoai.ProcessJob{{CardID: 1}, {CardID: 2}}, nil) {
		t.Fatalf("poll #2 dropped, want applied")
	}
	// Poll #1 arrives late; it must be discarded.
	if s.ApplyJobs(seq1, []seoai.ProcessJob{{CardID: 1}}, nil) {
		t.Fatalf("stale poll #1 applied, want dropped")
	}

	snap := s.Snapshot()
	if len(snap.Jobs) != 2 || snap.Jobs[1].CardID != 2 {
		t.Fatalf("jobs = %#v, want poll #2's [1 2]", snap.Jobs)
	}
}

func TestStore_ArchiveSeqIndependentOfJobs(t *testing.T) {
	var s Store

	jobsSeq := s.Begin()
	archSeq := s.Begin()

	if !s.ApplyArchive(archSeq, []seoai.ArchiveItem{{CardID: 7}}, nil) {
		t.Fatalf("archive poll dropped")
	}
	// The jobs feed has its own watermark; an earlier global sequence is
	// still fresh for it.
	if !s.ApplyJobs(jobsSeq, []seoai.ProcessJob{{CardID: 1}}, nil) {
		t.Fatalf("jobs poll dropped, want applied (independent watermark)")
	}

	snap := s.Snapshot()
	if len(snap.Archive) != 1 || len(snap.Jobs) != 1 {
		t.Fatalf("snapshot = %d jobs %d archive, want 1 and 1", len(snap.Jobs), len(snap.Archive))
	}
}

func TestStore_ErrorKeepsPreviousData(t *testing.T) {
	var s Store

	if !s.ApplyJobs(s.Begin(), []seoai.ProcessJob{{CardID: 1}}, nil) {
		t.Fatalf("initial poll dropped")
	}
	if !s.ApplyJobs(s.Begin(), nil, errors.New("boom")) {
		t.Fatalf("error poll dropped")
	}

	snap := s.Snapshot()
	if len(snap.Jobs) != 1 {
		t.Fatalf("jobs = %d after failed poll, want previous data kept", len(snap.Jobs))
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestStore_OfflineAfterConsecutiveFailures(t *testing.T) {
	var s Store

	s.ApplyJobs(s.Begin(), nil, errors.New("down"))
	if s.Snapshot().IsOffline() {
		t.Fatalf("offline after one failure, want not yet")
	}
	s.ApplyArchive(s.Begin(), nil, errors.New("down"))
	if !s.Snapshot().IsOffline() {
		t.Fatalf("not offline after two failures")
	}

	s.ApplyJobs(s.Begin(), nil, nil)
	if s.Snapshot().IsOffline() {
		t.Fatalf("still offline after a successful poll")
	}
}

func TestStore_StaleErrorDoesNotMaskNewerSuccess(t *testing.T) {
	var s Store

	seq1 := s.Begin()
	seq2 := s.Begin()

	s.ApplyJobs(seq2, []seoai.ProcessJob{{CardID: 5}}, nil)
	if s.ApplyJobs(seq1, nil, errors.New("late failure")) {
		t.Fatalf("stale errored poll applied, want dropped")
	}

	snap := s.Snapshot()
	if snap.LastError != nil {
		t.Fatalf("LastError = %v from stale poll, want nil", snap.LastError)
	}
}
