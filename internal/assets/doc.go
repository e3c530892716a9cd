// Package assets talks to the static image host.
//
// # Overview
//
// The viewer only constructs image paths; images themselves live on a
// host (see the assetserver package, or any static server exposing the
// same /images layout). This package offers two things on top of that:
//
//   - Client: a small HTTP client with Fetch and Health calls
//   - Prefetcher: best-effort warming of a date's frames before the user
//     steps through them
//
// # Prefetching
//
// Warm walks a list of paths in order. Requests are paced by a token
// bucket (golang.org/x/time/rate) and guarded by a circuit breaker
// (sony/gobreaker): after a run of consecutive transport or server
// failures the breaker opens and the rest of the batch is skipped. A 404
// is counted as missing and does not trip the breaker.
//
// Paths that were fetched or found missing are remembered and not asked
// for again. Failed and skipped paths are forgotten so a later Warm can
// retry them.
//
// Warm never returns an error. The viewer has no image decoding and does
// not surface load failures; they are logged at debug level only.
//
// A nil *Prefetcher is valid and does nothing, which is how the viewer
// runs when no asset URL is configured.
package assets
