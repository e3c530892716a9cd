// Package app provides the orchestration layer for nowcast.
//
// # Overview
//
// This package wires together configuration, logging, the frame builder,
// the selection state machine, the auto-play driver and the UI. It is the
// composition root where all dependencies are initialized and connected,
// and it also hosts the entry point for the static asset server.
//
// # Architecture
//
// The viewer starts in a fixed order:
//
//  1. Load ~/.config/nowcast/config.toml, .env and NOWCAST_* overrides
//  2. Apply command-line overrides and validate the result
//  3. Open the log file (the TUI owns the terminal)
//  4. Build the cached frame source and the session for the default date
//  5. Attach a playback driver on the real clock behind a Controller
//  6. Optionally create the asset client and prefetcher
//  7. Start the TUI and block until the user quits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> LoadConfig()      File, env, flags, validation
//	       ├─────> logging.OpenFile  File logger
//	       ├─────> NewController()   Source, session, driver
//	       ├─────> NewPrefetcher()   Asset client (optional)
//	       └─────> ui.Run()          Start TUI (blocks)
//
// Serve follows the same configuration path and then runs the asset
// server with logs on the supplied writer.
//
// # Error Handling
//
// Everything that can fail does so before the TUI starts: a bad config
// file, a failed validation or an unwritable log file is returned from
// Run. Once the TUI is up the only runtime I/O is the optional prefetch,
// which logs and never fails the viewer.
package app
