// Package assetserver hosts frame images for the viewer.
//
// Files are served from a directory laid out as the viewer expects:
//
//	<root>/20250403/actual_2100.jpg
//	<root>/20250403/forecast_2300.jpg
//
// under the /images prefix. /healthz reports liveness and /metrics exposes
// Prometheus counters from a server-local registry. The server never lists
// or generates frames; it only serves what is on disk.
package assetserver
