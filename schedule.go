package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ParseStartTime parses the runAt configuration value. Accepted forms:
// RFC3339, "2006-01-02 15:04[:05]" (UTC, optional trailing "UTC"), and a
// bare "15:04" meaning today in local time.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "UTC"))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty start time")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse("15:04", s); err == nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized start time format: %q", s)
}

// clockSync keeps an offset between the local clock and a server clock,
// derived from HTTP Date headers. Local clocks drift; the widget's
// availability opens on the server's clock.
type clockSync struct {
	offset    time.Duration
	debugMode bool
}

// sync probes the booking host first, then public fallbacks, and records
// the first server-vs-local offset obtained.
func (c *clockSync) sync(primaryURL string) error {
	candidates := []string{}
	if u, err := url.Parse(primaryURL); err == nil && u.Host != "" {
		candidates = append(candidates, u.Scheme+"://"+u.Host)
	}
	candidates = append(candidates, "https://www.google.com", "https://www.cloudflare.com")

	client := &http.Client{Timeout: 5 * time.Second}
	for _, target := range candidates {
		offset, err := probeServerOffset(client, target)
		if err != nil {
			if c.debugMode {
				fmt.Printf("[DEBUG] clock probe %s failed: %v\n", target, err)
			}
			continue
		}
		c.offset = offset
		return nil
	}
	return fmt.Errorf("no time source reachable")
}

// probeServerOffset issues a HEAD request and compares the Date header
// with the local clock, compensating for half the round trip.
func probeServerOffset(client *http.Client, target string) (time.Duration, error) {
	before := time.Now()
	resp, err := client.Head(target)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	latency := time.Since(before)

	dateHeader := resp.Header.Get("Date")
	if dateHeader == "" {
		return 0, fmt.Errorf("no Date header from %s", target)
	}
	serverTime, err := http.ParseTime(dateHeader)
	if err != nil {
		return 0, fmt.Errorf("bad Date header from %s: %w", target, err)
	}

	// The Date header was stamped roughly mid-flight.
	local := before.Add(latency / 2)
	return serverTime.Sub(local), nil
}

// now returns the current time adjusted by the synced offset.
func (c *clockSync) now() time.Time {
	return time.Now().Add(c.offset)
}

// WaitForStart blocks until the configured start instant, syncing the
// clock against the booking host first. Without a runAt value it returns
// immediately.
func WaitForStart(config *Config) error {
	if config.RunAt == "" {
		return nil
	}

	startAt, err := ParseStartTime(config.RunAt)
	if err != nil {
		return fmt.Errorf("invalid runAt: %w", err)
	}

	cs := &clockSync{debugMode: config.DebugMode}
	fmt.Println(T("schedule_syncing"))
	if err := cs.sync(config.BookingURL); err != nil {
		fmt.Println(T("schedule_sync_failed", err))
	} else {
		fmt.Println(T("schedule_synced", cs.offset.Round(time.Millisecond)))
	}

	remaining := startAt.Sub(cs.now())
	if remaining <= 0 {
		fmt.Println(T("schedule_past_start"))
		return nil
	}

	fmt.Println(T("schedule_waiting", remaining.Round(time.Second), startAt.Format(time.RFC3339)))
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		remaining = startAt.Sub(cs.now())
		if remaining <= 0 {
			break
		}
		sleep := remaining
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		timer := time.NewTimer(sleep)
		select {
		case <-ticker.C:
			left := startAt.Sub(cs.now())
			if left > 0 {
				fmt.Println(T("schedule_waiting_update", left.Round(time.Second)))
			}
		case <-timer.C:
		}
		timer.Stop()
	}

	fmt.Println(T("schedule_started"))
	return nil
}
