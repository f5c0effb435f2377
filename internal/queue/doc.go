// Package queue reconciles locally-submitted jobs with server-polled job
// lists.
//
// # Overview
//
// When the user confirms a start in a wizard, the server already knows about
// the job but the next process-list poll may be seconds away. The Reconciler
// records a local entry at that instant so the processing panel reflects the
// submission immediately, then merges local entries with each poll:
//
//	local queue ──┐
//	              ├── Merge ──→ display list (no duplicate card ids)
//	server poll ──┘
//
// Local entries win card-id conflicts because they carry the payload cached
// from the create-card response. Completion is never transitioned locally: a
// card id showing up in the polled archive removes the entry from the merged
// view, so the server's word is final.
//
// # Persisted Id Set
//
// The archive endpoint returns every completed job, not just this user's.
// IDSet keeps the card ids this user submitted in a JSON file written
// synchronously with each mutation; the archive view filters by it. Enqueue
// dual-writes the set so a submission appears in the archive view even
// before the server marks it complete.
package queue
