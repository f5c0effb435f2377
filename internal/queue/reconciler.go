package queue

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/seo-ai/seodesk/internal/seoai"
)

// Kind classifies a job.
type Kind int

const (
	KindAnalysis Kind = iota
	KindDescription
	KindBoth
)

func (k Kind) String() string {
	switch k {
	case KindDescription:
		return "description"
	case KindBoth:
		return "both"
	default:
		return "analysis"
	}
}

// ParseKind maps a server-side kind string to a Kind.
func ParseKind(value string) Kind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "description":
		return KindDescription
	case "both":
		return KindBoth
	default:
		return KindAnalysis
	}
}

// Status is the client-local approximation of a job's state. The
// authoritative status lives server-side; completion is inferred from the
// card id appearing in a polled archive list.
type Status int

const (
	StatusProcessing Status = iota
	StatusCompleted
)

func (s Status) String() string {
	if s == StatusCompleted {
		return "completed"
	}
	return "processing"
}

// SKUPair is the submitted SKU and optional competitor SKU.
type SKUPair struct {
	SKU           string
	CompetitorSKU string
}

// Job is one entry in the processing queue: either locally enqueued the
// moment the user confirmed a start, or reported by a server poll. Jobs are
// never mutated in place.
type Job struct {
	LocalID   string
	CardID    int64 // zero until the server assigns one; dedup key once set
	Kind      Kind
	SKUPair   SKUPair
	Status    Status
	Payload   seoai.Payload
	CreatedAt time.Time
}

// Reconciler maintains the process-wide list of jobs the user has initiated
// and merges it with server-polled job lists. Local entries exist only to
// mask the polling gap between "user submitted" and "server reports it".
type Reconciler struct {
	mu   sync.Mutex
	jobs []Job
	ids  *IDSet
	now  func() time.Time
}

// NewReconciler builds a Reconciler that dual-writes card ids into the given
// set on enqueue. A nil set disables the dual-write.
func NewReconciler(ids *IDSet) *Reconciler {
	return &Reconciler{ids: ids, now: time.Now}
}

// Enqueue appends a locally-tracked job. It is a no-op when a job with the
// same card id is already present, which holds the dedup contract even under
// rapid double submission. When a card id is known it is immediately added
// to the processed-id set so the archive view shows the submission before
// the server confirms it. Reports whether a job was added.
func (r *Reconciler) Enqueue(kind Kind, pair SKUPair, cardID int64, payload seoai.Payload) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cardID > 0 {
		for _, job := range r.jobs {
			if job.CardID == cardID {
				return false
			}
		}
	}

	created := r.now()
	r.jobs = append(r.jobs, Job{
		LocalID:   fmt.Sprintf("%d-%s-%s", created.UnixNano(), kind, pair.SKU),
		CardID:    cardID,
		Kind:      kind,
		SKUPair:   pair,
		Status:    StatusProcessing,
		Payload:   payload,
		CreatedAt: created,
	})

	if cardID > 0 && r.ids != nil {
		_ = r.ids.Add(cardID)
	}
	return true
}

// Jobs returns a copy of the locally-tracked job list.
func (r *Reconciler) Jobs() []Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneJobs(r.jobs)
}

// Merge computes the display list for the processing panel from the local
// queue and the latest server poll. It is pure with respect to the stored
// queue and recomputed on every call.
//
// Precedence rules:
//   - Local entries come first and win any card-id conflict; they carry the
//     richer cached payload and are fresher than a stale poll.
//   - A card id present in archivedIDs is server-confirmed complete and is
//     dropped from the output, local or not.
//   - Server jobs whose card id is not already represented are appended.
//
// The output never contains duplicate card ids.
func (r *Reconciler) Merge(server []seoai.ProcessJob, archivedIDs map[int64]struct{}) []Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int64]struct{}, len(r.jobs)+len(server))
	merged := make([]Job, 0, len(r.jobs)+len(server))

	for _, job := range r.jobs {
		if job.CardID > 0 {
			if _, archived := archivedIDs[job.CardID]; archived {
				continue
			}
			if _, dup := seen[job.CardID]; dup {
				continue
			}
			seen[job.CardID] = struct{}{}
		}
		merged = append(merged, job)
	}

	for _, remote := range server {
		if remote.CardID > 0 {
			if _, archived := archivedIDs[remote.CardID]; archived {
				continue
			}
			if _, dup := seen[remote.CardID]; dup {
				continue
			}
			seen[remote.CardID] = struct{}{}
		}
		merged = append(merged, Job{
			LocalID:   fmt.Sprintf("remote-%d", remote.CardID),
			CardID:    remote.CardID,
			Kind:      ParseKind(remote.Kind),
			SKUPair:   SKUPair{SKU: remote.SKU},
			Status:    StatusProcessing,
			Payload:   remote.Payload,
			CreatedAt: remote.ParsedCreatedAt(),
		})
	}

	return merged
}

// Clear drops the in-memory job list. The persisted id set is untouched; use
// IDSet.Clear for that.
func (r *Reconciler) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = nil
}

func cloneJobs(jobs []Job) []Job {
	if len(jobs) == 0 {
		return nil
	}
	dup := make([]Job, len(jobs))
	copy(dup, jobs)
	return dup
}
