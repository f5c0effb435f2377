// Package app provides the orchestration layer for seodesk.
//
// # Overview
//
// This package is the composition root: it loads configuration and
// preferences, builds the API client, the snapshot store, the processed-card
// id set and the queue reconciler, starts the background pollers and hands
// everything to the UI.
//
// # Data Flow
//
//	Run()
//	 ├─> config.Load()        Read ~/.config/seodesk/config.toml
//	 ├─> prefs.Load()         Theme + last active section
//	 ├─> seoai.NewClient()    HTTP client for the SEO-AI API
//	 ├─> state.Store{}        Shared poll snapshot container
//	 ├─> queue.LoadIDSet()    Persisted processed-card ids
//	 ├─> queue.NewReconciler()Local/server job merging
//	 ├─> StartPollers()       process-list every 5s, archive every 10s
//	 └─> ui.Run()             Start TUI (blocks)
//
// The two pollers run independently so a slow archive fetch never delays the
// process-list cadence. Poll failures are logged to the debug file and back
// the interval off exponentially up to 30s; a success resets the cadence.
// Responses are applied through the store's sequence guard, so a superseded
// poll that resolves late is dropped instead of regressing the view.
package app
