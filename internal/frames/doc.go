// Package frames derives the ordered frame sequence shown for one date.
//
// # Overview
//
// A date maps to a fixed cadence of slots starting at 21:00 and spaced
// 15 minutes apart. The leading slots are observed ("actual") frames and
// the remainder are forecast frames. Each slot has a parallel image path:
//
//	/images/20250403/actual_2100.jpg
//	/images/20250403/actual_2115.jpg
//	...
//	/images/20250403/forecast_2300.jpg
//
// Two layouts exist in practice: nine slots (21:00 to 23:00) and thirteen
// slots (21:00 to 00:00). Both, and the actual/forecast split, are Config
// values rather than constants.
//
// # Determinism
//
// Builder.Build is pure: equal dates produce equal sequences. Cache sits in
// front of a Builder so the viewer does not rebuild on every render; it
// hands out clones, so a cached sequence is indistinguishable from a fresh
// build.
//
// # Errors
//
// Dates are parsed with the layout 2006-01-02. A value that fails to parse
// is returned as a wrapped time.ParseError. Range checks belong to the
// date picker that produces the value.
package frames
