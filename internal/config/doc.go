// Package config loads nowcast's startup configuration.
//
// # Overview
//
// Configuration comes from three layers, each overriding the previous:
//
//  1. Built-in defaults (see Default)
//  2. The TOML file at ~/.config/nowcast/config.toml, or an explicit path
//  3. NOWCAST_* environment variables, after merging a .env file from the
//     working directory when one exists
//
// Command-line flags are applied on top by the caller. A missing config
// file is not an error; nowcast runs out of the box.
//
// # TOML Format
//
//	[frames]
//	steps = 9
//	actual_steps = 5
//	start = "21:00"
//	cadence = "15m"
//	image_root = "/images"
//
//	[viewer]
//	default_date = "2025-04-03"
//	min_date = "2025-01-01"
//	max_date = "2025-12-31"
//	play_interval = "750ms"
//
//	[assets]
//	url = "http://127.0.0.1:8787"
//	dir = "~/.local/share/nowcast"
//	serve_addr = "127.0.0.1:8787"
//	prefetch_rate = 8
//	prefetch_burst = 2
//
//	[log]
//	file = "~/.local/state/nowcast/nowcast.log"
//	level = "info"
//
// Durations use Go syntax. Blank strings keep the default. Tilde paths are
// expanded for the asset directory and the log file.
//
// # Environment
//
// Recognised variables: NOWCAST_STEPS, NOWCAST_ACTUAL_STEPS,
// NOWCAST_PLAY_INTERVAL, NOWCAST_DEFAULT_DATE, NOWCAST_ASSET_URL,
// NOWCAST_ASSET_DIR, NOWCAST_SERVE_ADDR, NOWCAST_PREFETCH_RATE,
// NOWCAST_PREFETCH_BURST, NOWCAST_LOG_FILE and NOWCAST_LOG_LEVEL.
//
// # Validation
//
// Load validates the merged result with struct tags (go-playground
// validator) plus the date window check min <= default <= max. Errors
// name the offending field. The asset URL is optional; without it the
// viewer does not prefetch.
package config
