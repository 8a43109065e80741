package main

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// contextTimeout bounds how long the engine waits for the booking iframe
// to become visible before falling back to the top-level page.
const contextTimeout = 5 * time.Second

// ResolveBookingContext returns the document scope in which field queries
// resolve: the embedded booking iframe when it becomes visible within the
// timeout, otherwise the top-level page. Absence of the iframe is a
// normal, recoverable outcome, not a failure.
func ResolveBookingContext(page *rod.Page, iframeSelector string, timeout time.Duration) *rod.Page {
	if iframeSelector == "" {
		return page
	}

	pt := page.Timeout(timeout)
	el, err := pt.Element(iframeSelector)
	if err == nil {
		err = el.WaitVisible()
	}
	pt.CancelTimeout()
	if err != nil {
		fmt.Println(T("no_iframe_found"))
		return page
	}

	// Re-resolve outside the timed clone so the frame context is not
	// bound to an expired deadline.
	el, err = page.Sleeper(rod.NotFoundSleeper).Element(iframeSelector)
	if err != nil {
		fmt.Println(T("no_iframe_found"))
		return page
	}
	frame, err := el.Frame()
	if err != nil {
		fmt.Println(T("no_iframe_found"))
		return page
	}

	fmt.Println(T("using_iframe"))
	return frame
}

// resolveFrame resolves a nested frame (e.g. a Stripe card field) inside
// ctx. Each payment field lives in its own cross-origin frame, so this is
// called independently per field.
func resolveFrame(ctx *rod.Page, frameSelector string, timeout time.Duration) (*rod.Page, error) {
	if frameSelector == "" {
		return nil, fmt.Errorf("no frame selector configured")
	}

	pt := ctx.Timeout(timeout)
	_, err := pt.Element(frameSelector)
	pt.CancelTimeout()
	if err != nil {
		return nil, fmt.Errorf("frame element not found: %w", err)
	}

	el, err := ctx.Sleeper(rod.NotFoundSleeper).Element(frameSelector)
	if err != nil {
		return nil, fmt.Errorf("frame element not found: %w", err)
	}
	frame, err := el.Frame()
	if err != nil {
		return nil, fmt.Errorf("failed to get frame context: %w", err)
	}
	return frame, nil
}
