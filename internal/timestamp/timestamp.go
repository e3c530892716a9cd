// Package timestamp renders compact satellite timestamps for display.
package timestamp

import "strings"

// compactLen is the length of YYYYMMDDTHHMM, the shortest input Format can slice.
const compactLen = 13

// Format converts a compact timestamp (YYYYMMDDTHHMMSSZ) into
// "DD/MM/YYYY HH:MM UTC". Empty input yields an empty string; input that
// does not fit the layout is returned unchanged.
func Format(ts string) string {
	if ts == "" {
		return ""
	}
	if len(ts) < compactLen || !digits(ts[0:8]) || !digits(ts[9:13]) {
		return ts
	}

	year, month, day := ts[0:4], ts[4:6], ts[6:8]
	hour, minute := ts[9:11], ts[11:13]

	var b strings.Builder
	b.Grow(len("02/01/2006 15:04 UTC"))
	b.WriteString(day)
	b.WriteByte('/')
	b.WriteString(month)
	b.WriteByte('/')
	b.WriteString(year)
	b.WriteByte(' ')
	b.WriteString(hour)
	b.WriteByte(':')
	b.WriteString(minute)
	b.WriteString(" UTC")
	return b.String()
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
