package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// fieldTimeout bounds the visibility wait of every field operation.
const fieldTimeout = 5 * time.Second

// stepResult is the explicit outcome of a field operation. The widget's
// DOM is not under this program's control, so a missing field is expected
// input, never an error to propagate.
type stepResult int

const (
	stepDone stepResult = iota
	stepSkipped
	stepNotFound
	stepTimedOut
)

func classify(err error) stepResult {
	switch {
	case err == nil:
		return stepDone
	case errors.Is(err, context.DeadlineExceeded):
		return stepTimedOut
	default:
		return stepNotFound
	}
}

// Booking drives one reservation flow against a resolved execution
// context (the top-level page or the booking iframe).
type Booking struct {
	auto   *Automation
	config *Config
	sel    SelectorTable
	ctx    *rod.Page
}

func NewBooking(auto *Automation, config *Config, sel SelectorTable, ctx *rod.Page) *Booking {
	return &Booking{auto: auto, config: config, sel: sel, ctx: ctx}
}

// fill sets the value of an input field. Empty values are a no-op; a
// field that never shows up is logged and skipped.
func (b *Booking) fill(key, value, label string) stepResult {
	if value == "" {
		return stepSkipped
	}
	selector := b.sel.Get(key)
	if selector == "" {
		return stepSkipped
	}

	pt := b.ctx.Timeout(fieldTimeout)
	defer pt.CancelTimeout()

	el, err := pt.Element(firstAlternative(selector))
	if err == nil {
		err = el.WaitVisible()
	}
	if err == nil {
		err = el.SelectAllText()
	}
	if err == nil {
		err = el.Input(value)
	}

	result := classify(err)
	if result == stepDone {
		fmt.Printf("  "+T("filled_field")+"\n", label)
	} else {
		fmt.Printf("  "+T("cannot_fill_field")+"\n", label, err)
	}
	return result
}

// selectOption picks an option of a native select, by value first and by
// visible label as a fallback.
func (b *Booking) selectOption(key, value, label string) stepResult {
	if value == "" {
		return stepSkipped
	}
	selector := b.sel.Get(key)
	if selector == "" {
		return stepSkipped
	}

	pt := b.ctx.Timeout(fieldTimeout)
	defer pt.CancelTimeout()

	el, err := pt.Element(firstAlternative(selector))
	if err == nil {
		err = el.WaitVisible()
	}
	if err == nil {
		if serr := selectByValue(el, value); serr != nil {
			err = el.Select([]string{value}, true, rod.SelectorTypeText)
		}
	}

	result := classify(err)
	if result == stepDone {
		fmt.Printf("  "+T("selected_field")+"\n", label)
	} else {
		fmt.Printf("  "+T("cannot_select_field")+"\n", label, err)
	}
	return result
}

func selectByValue(el *rod.Element, value string) error {
	return el.Select([]string{fmt.Sprintf("option[value=%q]", value)}, true, rod.SelectorTypeCSSSector)
}

// clickButton clicks a configured button and reports whether a click
// happened. The advance control may be rendered several times with only
// one candidate visible, so it scans all matches of the full alternatives
// list; every other button uses the first-alternative locator and a
// single bounded visibility wait.
func (b *Booking) clickButton(key string) bool {
	selector := b.sel.Get(key)
	if selector == "" {
		return false
	}

	if key == selNextButton {
		els, err := b.ctx.Elements(selector)
		if err != nil {
			return false
		}
		for _, el := range els {
			visible, verr := el.Visible()
			if verr != nil || !visible {
				continue
			}
			if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
				continue
			}
			fmt.Printf("  "+T("clicked_button")+"\n", key)
			return true
		}
		return false
	}

	pt := b.ctx.Timeout(fieldTimeout)
	defer pt.CancelTimeout()

	el, err := pt.Element(firstAlternative(selector))
	if err == nil {
		err = el.WaitVisible()
	}
	if err == nil {
		err = el.Click(proto.InputMouseButtonLeft, 1)
	}
	if err != nil {
		return false
	}
	fmt.Printf("  "+T("clicked_button")+"\n", key)
	return true
}

func attrOrEmpty(el *rod.Element, name string) string {
	value, err := el.Attribute(name)
	if err != nil || value == nil {
		return ""
	}
	return *value
}

// scope narrows element queries to a region of the document (such as the
// calendar table for the target month) when one exists, falling back to
// the whole execution context.
type scope struct {
	page *rod.Page
	el   *rod.Element
}

// element waits for a visible element matching selector, bounded by
// timeout. The handle is only valid within that window; callers use it
// immediately.
func (s scope) element(selector string, timeout time.Duration) (*rod.Element, error) {
	var el *rod.Element
	var err error
	if s.el != nil {
		el, err = s.el.Timeout(timeout).Element(selector)
	} else {
		el, err = s.page.Timeout(timeout).Element(selector)
	}
	if err != nil {
		return nil, err
	}
	if err := el.WaitVisible(); err != nil {
		return nil, err
	}
	return el, nil
}

// peek returns an element matching selector without waiting.
func (s scope) peek(selector string) (*rod.Element, error) {
	if s.el != nil {
		return s.el.Sleeper(rod.NotFoundSleeper).Element(selector)
	}
	return s.page.Sleeper(rod.NotFoundSleeper).Element(selector)
}

// elements returns all current matches of selector.
func (s scope) elements(selector string) rod.Elements {
	var els rod.Elements
	var err error
	if s.el != nil {
		els, err = s.el.Elements(selector)
	} else {
		els, err = s.page.Elements(selector)
	}
	if err != nil {
		return nil
	}
	return els
}
