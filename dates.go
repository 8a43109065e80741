package main

import (
	"fmt"
	"time"
)

const (
	isoDateLayout = "2006-01-02"
	dmyDateLayout = "02/01/2006"
)

// ParseISODate parses a strict YYYY-MM-DD date string.
func ParseISODate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date '%s': %w", s, err)
	}
	return t, nil
}

// ParseDayMonthYear parses a strict DD/MM/YYYY date string. The ResDiary
// widget renders all calendar cell dates in this format.
func ParseDayMonthYear(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	t, err := time.Parse(dmyDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid DD/MM/YYYY date '%s': %w", s, err)
	}
	return t, nil
}

// FormatISODate formats a date as YYYY-MM-DD.
func FormatISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}

// FormatDayMonthYear formats a date as DD/MM/YYYY.
func FormatDayMonthYear(t time.Time) string {
	return t.Format(dmyDateLayout)
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1).Day()
}

// AdjacentDayCandidates generates the day numbers to try when the target
// day is unavailable: day+1, day+2, ... clamped to the month length, then
// day-1, day-2, ... clamped to 1. The target day itself is never included.
func AdjacentDayCandidates(day, daysInMonth, radius int) []int {
	candidates := make([]int, 0, 2*radius)
	for offset := 1; offset <= radius; offset++ {
		if day+offset <= daysInMonth {
			candidates = append(candidates, day+offset)
		}
	}
	for offset := 1; offset <= radius; offset++ {
		if day-offset >= 1 {
			candidates = append(candidates, day-offset)
		}
	}
	return candidates
}
