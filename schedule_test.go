package main

import (
	"testing"
	"time"
)

func TestParseStartTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			"rfc3339",
			"2026-09-01T09:00:00Z",
			time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			"date and time utc",
			"2026-09-01 09:00",
			time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			"date time with seconds",
			"2026-09-01 09:00:30",
			time.Date(2026, 9, 1, 9, 0, 30, 0, time.UTC),
		},
		{
			"explicit UTC suffix",
			"2026-09-01 09:00 UTC",
			time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			"surrounding whitespace",
			"  2026-09-01 09:00  ",
			time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStartTime(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ParseStartTime(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}

	t.Run("bare time means today local", func(t *testing.T) {
		got, err := ParseStartTime("09:30")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		now := time.Now()
		if got.Hour() != 9 || got.Minute() != 30 {
			t.Errorf("time = %02d:%02d, want 09:30", got.Hour(), got.Minute())
		}
		if got.Year() != now.Year() || got.Month() != now.Month() || got.Day() != now.Day() {
			t.Errorf("date = %v, want today", got)
		}
		if got.Location() != now.Location() {
			t.Errorf("location = %v, want local", got.Location())
		}
	})

	for _, input := range []string{"", "tomorrow", "25:00", "2026-13-01 09:00"} {
		t.Run("invalid "+input, func(t *testing.T) {
			if _, err := ParseStartTime(input); err == nil {
				t.Errorf("ParseStartTime(%q) expected error", input)
			}
		})
	}
}

func TestClockSyncNow(t *testing.T) {
	cs := &clockSync{offset: 2 * time.Second}
	diff := cs.now().Sub(time.Now().Add(2 * time.Second))
	if diff < -time.Second || diff > time.Second {
		t.Errorf("now() drifts from offset-adjusted local time by %v", diff)
	}
}

func TestWaitForStartNoSchedule(t *testing.T) {
	if err := WaitForStart(&Config{}); err != nil {
		t.Errorf("empty runAt should be a no-op, got %v", err)
	}
}

func TestWaitForStartInvalid(t *testing.T) {
	if err := WaitForStart(&Config{RunAt: "not a time"}); err == nil {
		t.Error("expected error for invalid runAt")
	}
}
