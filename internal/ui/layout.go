package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which panels stack vertically.
	LayoutCompactWidth = 100

	// LayoutTimelineWidth is the timeline panel width in the side-by-side
	// layout.
	LayoutTimelineWidth = 38

	// LayoutMinFrameHeight keeps the frame panel readable on short terminals.
	LayoutMinFrameHeight = 9
)

// Timing constants.
const (
	// HealthCheckTimeout bounds the startup asset host probe.
	HealthCheckTimeout = 2 * time.Second

	// PrefetchTimeout bounds one date's prefetch batch.
	PrefetchTimeout = 30 * time.Second
)
