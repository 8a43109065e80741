package main

import "strings"

// minutesNone is the sentinel returned for time strings that cannot be
// parsed. Unparsable entries are excluded from distance comparison but
// stay in the option list.
const minutesNone = -1

// ParseTimeToMinutes converts a 24-hour time string to minutes since
// midnight. The widget always renders HH:MM; H:MM and HH.MM are accepted
// too. Anything else maps to minutesNone. The function never panics.
func ParseTimeToMinutes(s string) int {
	normalized := strings.Replace(strings.TrimSpace(s), ".", ":", 1)
	parts := strings.Split(normalized, ":")
	if len(parts) != 2 {
		return minutesNone
	}
	hourStr, minStr := parts[0], parts[1]
	if len(hourStr) < 1 || len(hourStr) > 2 || len(minStr) != 2 {
		return minutesNone
	}
	hour, ok := parseDigits(hourStr)
	if !ok {
		return minutesNone
	}
	minute, ok := parseDigits(minStr)
	if !ok {
		return minutesNone
	}
	if hour > 23 || minute > 59 {
		return minutesNone
	}
	return hour*60 + minute
}

// parseDigits parses a non-empty all-digit string. Unlike strconv.Atoi it
// rejects signs and whitespace.
func parseDigits(s string) (int, bool) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// FindClosestTimeIndex returns the index of the time label closest to
// requestedMinutes by absolute minute distance. Ties resolve to the
// first-encountered option (strict < comparison). Returns 0 for an empty
// list or an unparsable request.
func FindClosestTimeIndex(requestedMinutes int, times []string) int {
	if len(times) == 0 || requestedMinutes == minutesNone {
		return 0
	}
	bestIdx := 0
	bestDiff := -1
	for i, label := range times {
		min := ParseTimeToMinutes(label)
		if min == minutesNone {
			continue
		}
		diff := min - requestedMinutes
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			bestDiff = diff
			bestIdx = i
		}
	}
	return bestIdx
}
