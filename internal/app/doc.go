// Package app provides the orchestration layer for repolist.
//
// # Overview
//
// This package wires configuration, the API client, the collection store,
// the sync controller and the UI together. It is the composition root: the
// CLI loads a config.Config, then either calls Build for a headless command
// or Run for the TUI.
//
// # Components
//
//   - app.go: Build (client, store, controller) and Run (TUI)
//   - poller.go: optional background refresh with exponential backoff
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> logging.OpenFile()   Records go to the log file
//	       ├─────> Build()              Client, Store, Controller
//	       ├─────> prefs.Load()         Saved theme
//	       ├─────> StartRefresher()     Only when refresh > 0
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Refresher loop (opt-in):
//	┌─────────────────────────────────────────┐
//	│ StartRefresher() goroutine              │
//	│  ├─> Controller.LoadAll()               │
//	│  │    └─> Store.Initialize() publishes  │
//	│  │         └─> UI receives snapshot     │
//	│  └─> on failure: log, back off, retry   │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run or Build):
//   - Log file cannot be opened
//   - API URL is invalid
//
// Recoverable errors (shown in the header or logged):
//   - Any load, create or like failure
//   - Auto refresh failures, which back off up to 30 seconds
//
// A failed operation never changes the collection, so the UI keeps showing
// the last good state.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	if err := app.Run(ctx, app.Options{Config: cfg}); err != nil {
//		log.Fatalf("repolist failed: %v", err)
//	}
package app
