// Package state provides thread-safe state management for polled API data.
//
// # Overview
//
// The Store is the coordination point where the background pollers meet UI
// rendering. Pollers write the latest process-list and archive responses;
// the UI reads immutable snapshots on its own schedule.
//
//	Producer (pollers):            Consumer (UI):
//	┌─────────────────────┐       ┌─────────────────┐
//	│ seq := Begin()      │       │                 │
//	│ FetchProcessList()  │       │                 │
//	│ ApplyJobs(seq, ...) │──────→│ store.Snapshot()│
//	│ repeat...           │ mutex │ render UI       │
//	└─────────────────────┘       └─────────────────┘
//
// # Out-of-order Polls
//
// Polls are asynchronous, so a slow response can arrive after a poll that
// was issued later. Each feed carries its own applied-sequence watermark:
// Begin issues a monotonically increasing number before the request starts,
// and Apply* drops any response whose number is not newer than the last
// applied one. The displayed list therefore always reflects the
// latest-issued successful poll; a superseded response can never regress it.
//
// # Update Semantics
//
// On success the feed's data is replaced wholesale and the failure counter
// resets. On error the previous data is kept, the error is recorded for
// display and ConsecutiveFailures increments; Snapshot.IsOffline reports two
// or more consecutive failures so the UI can show an offline indicator
// instead of silently stale data.
//
// # Defensive Copying
//
// Update and Snapshot both copy slices and errors so the poller and the UI
// never share mutable state. The store is safe to use from its zero value.
package state
