package main

import "testing"

func TestPickTimeIndex(t *testing.T) {
	tests := []struct {
		name          string
		labels        []string
		requested     string
		expectedIdx   int
		expectedExact bool
		expectedOK    bool
	}{
		{"exact match", []string{"19:00", "19:30", "20:00"}, "19:30", 1, true, true},
		{"exact match via dot form", []string{"19.30", "20:00"}, "19:30", 0, true, true},
		{"first exact wins", []string{"19:30", "19:30"}, "19:30", 0, true, true},
		{"closest when no exact", []string{"18:00", "19:00", "20:15"}, "19:30", 1, false, true},
		{"tie goes to earlier label", []string{"19:15", "19:45"}, "19:30", 0, false, true},
		{"unparsable request falls back to first", []string{"19:00", "20:00"}, "whenever", 0, false, true},
		{"whitespace in labels tolerated", []string{" 19:30 "}, "19:30", 0, true, true},
		{"all labels empty refuses selection", []string{"", ""}, "19:30", 0, false, false},
		{"empty list refuses selection", nil, "19:30", 0, false, false},
		{"empty closest label refuses selection", []string{"", "soon"}, "whenever", 0, false, false},
		{"exact match skips empty labels", []string{"", "19:30"}, "19:30", 1, true, true},
		{"nearest parsable past empty label", []string{"", "19:00"}, "20:00", 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, exact, ok := pickTimeIndex(tt.labels, tt.requested)
			if idx != tt.expectedIdx || exact != tt.expectedExact || ok != tt.expectedOK {
				t.Errorf("pickTimeIndex(%v, %q) = (%d, %v, %v), want (%d, %v, %v)",
					tt.labels, tt.requested, idx, exact, ok,
					tt.expectedIdx, tt.expectedExact, tt.expectedOK)
			}
		})
	}
}
