package queue

import (
	"testing"
	"time"

	"github.com/seo-ai/seodesk/internal/seoai"
)

func newTestReconciler() *Reconciler {
	r := NewReconciler(nil)
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	r.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return r
}

func TestEnqueue_DedupesByCardID(t *testing.T) {
	r := newTestReconciler()

	if !r.Enqueue(KindAnalysis, SKUPair{SKU: "12345"}, 42, seoai.Payload{Name: "Kettle"}) {
		t.Fatalf("first Enqueue rejected")
	}
	if r.Enqueue(KindAnalysis, SKUPair{SKU: "12345"}, 42, seoai.Payload{Name: "Kettle"}) {
		t.Fatalf("second Enqueue with same card id accepted")
	}

	jobs := r.Jobs()
	if len(jobs) != 1 || jobs[0].CardID != 42 {
		t.Fatalf("jobs = %#v, want exactly one job with card 42", jobs)
	}
	if jobs[0].Status != StatusProcessing {
		t.Fatalf("status = %v, want processing", jobs[0].Status)
	}
}

func TestEnqueue_AllowsJobsWithoutCardID(t *testing.T) {
	r := newTestReconciler()
	if !r.Enqueue(KindDescription, SKUPair{SKU: "a"}, 0, seoai.Payload{}) {
		t.Fatalf("Enqueue without card id rejected")
	}
	if !r.Enqueue(KindDescription, SKUPair{SKU: "b"}, 0, seoai.Payload{}) {
		t.Fatalf("second Enqueue without card id rejected")
	}
	if got := len(r.Jobs()); got != 2 {
		t.Fatalf("jobs = %d, want 2", got)
	}
}

func TestEnqueue_DualWritesIDSet(t *testing.T) {
	ids := LoadIDSet("")
	r := NewReconciler(ids)

	r.Enqueue(KindAnalysis, SKUPair{SKU: "12345"}, 777, seoai.Payload{})
	if !ids.Contains(777) {
		t.Fatalf("id set missing 777 after Enqueue")
	}

	r.Enqueue(KindDescription, SKUPair{SKU: "9"}, 0, seoai.Payload{})
	if ids.Len() != 1 {
		t.Fatalf("id set len = %d, want 1 (no write without card id)", ids.Len())
	}
}

func TestMerge_NoDuplicatesLocalWins(t *testing.T) {
	r := newTestReconciler()
	r.Enqueue(KindAnalysis, SKUPair{SKU: "12345"}, 42, seoai.Payload{Name: "local name"})

	server := []seoai.ProcessJob{
		{CardID: 42, Kind: "analysis", SKU: "12345", Payload: seoai.Payload{Name: "stale name"}},
		{CardID: 43, Kind: "description", SKU: "67890", Payload: seoai.Payload{Name: "remote"}},
	}
	merged := r.Merge(server, nil)

	if len(merged) != 2 {
		t.Fatalf("merged = %d jobs, want 2", len(merged))
	}
	seen := map[int64]int{}
	for _, job := range merged {
		seen[job.CardID]++
	}
	if seen[42] != 1 || seen[43] != 1 {
		t.Fatalf("merged card ids = %v, want one each of 42 and 43", seen)
	}
	if merged[0].CardID != 42 || merged[0].Payload.Name != "local name" {
		t.Fatalf("merged[0] = %#v, want local entry with local payload", merged[0])
	}
	if merged[1].Kind != KindDescription {
		t.Fatalf("merged[1].Kind = %v, want description", merged[1].Kind)
	}
}

func TestMerge_ArchivedCompletionRemovesLocal(t *testing.T) {
	r := newTestReconciler()
	r.Enqueue(KindAnalysis, SKUPair{SKU: "a"}, 1, seoai.Payload{})
	r.Enqueue(KindAnalysis, SKUPair{SKU: "b"}, 2, seoai.Payload{})

	archived := map[int64]struct{}{1: {}}
	server := []seoai.ProcessJob{{CardID: 1, SKU: "a"}, {CardID: 3, SKU: "c"}}

	merged := r.Merge(server, archived)
	for _, job := range merged {
		if job.CardID == 1 {
			t.Fatalf("archived card 1 still in merged view: %#v", merged)
		}
	}
	if len(merged) != 2 {
		t.Fatalf("merged = %d jobs, want 2 (local 2 + remote 3)", len(merged))
	}
}

func TestMerge_PureAcrossCalls(t *testing.T) {
	r := newTestReconciler()
	r.Enqueue(KindAnalysis, SKUPair{SKU: "a"}, 1, seoai.Payload{})

	first := r.Merge([]seoai.ProcessJob{{CardID: 9, SKU: "z"}}, nil)
	second := r.Merge(nil, nil)

	if len(first) != 2 {
		t.Fatalf("first merge = %d jobs, want 2", len(first))
	}
	if len(second) != 1 {
		t.Fatalf("second merge = %d jobs, want 1 (server jobs not retained)", len(second))
	}
	if got := len(r.Jobs()); got != 1 {
		t.Fatalf("local queue = %d jobs after merges, want 1", got)
	}
}

func TestClear_DropsLocalJobsOnly(t *testing.T) {
	ids := LoadIDSet("")
	r := NewReconciler(ids)
	r.Enqueue(KindAnalysis, SKUPair{SKU: "a"}, 1, seoai.Payload{})

	r.Clear()
	if len(r.Jobs()) != 0 {
		t.Fatalf("jobs remain after Clear")
	}
	if !ids.Contains(1) {
		t.Fatalf("Clear emptied the id set, want it untouched")
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"analysis", KindAnalysis},
		{"description", KindDescription},
		{"both", KindBoth},
		{" Description ", KindDescription},
		{"", KindAnalysis},
	}
	for _, tc := range cases {
		if got := ParseKind(tc.in); got != tc.want {
			t.Fatalf("ParseKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
