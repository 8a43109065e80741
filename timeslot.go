package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// pickTimeIndex chooses which of the rendered time labels to click:
// the first label matching the requested time exactly, or the nearest
// one when no exact match exists. ok is false when the chosen label is
// empty; a blank row is not a time slot and must not be clicked.
func pickTimeIndex(labels []string, requested string) (idx int, exact, ok bool) {
	if len(labels) == 0 {
		return 0, false, false
	}
	reqMin := ParseTimeToMinutes(requested)
	if reqMin != minutesNone {
		for i, label := range labels {
			if ParseTimeToMinutes(label) == reqMin {
				return i, true, true
			}
		}
	}
	idx = FindClosestTimeIndex(reqMin, labels)
	if labels[idx] == "" {
		return idx, false, false
	}
	return idx, false, true
}

// selectTime picks the requested time slot, preferring the widget's
// custom dropdown and falling back to a native select element.
func (b *Booking) selectTime(requested string) {
	if requested == "" {
		return
	}
	if b.sel.Get(selTimeDropdown) != "" {
		if b.selectTimeFromDropdown(requested) {
			return
		}
	}
	b.selectTimeClosest(requested)
}

// selectTimeFromDropdown opens the custom time dropdown, reads the
// rendered slot labels and clicks the chosen row. Returns false when
// the dropdown surface could not be driven at all, so the caller can
// try the native select instead.
func (b *Booking) selectTimeFromDropdown(requested string) bool {
	trigger := b.sel.Get(selTimeDropdown)

	pt := b.ctx.Timeout(fieldTimeout)
	el, err := pt.Element(trigger)
	if err == nil {
		err = el.WaitVisible()
	}
	if err == nil {
		err = el.Click(proto.InputMouseButtonLeft, 1)
	}
	pt.CancelTimeout()
	if err != nil {
		fmt.Printf("  "+T("time_dropdown_error")+"\n", err)
		return false
	}
	b.auto.settle(150 * time.Millisecond)

	// The open dropdown may render its rows in a dedicated panel; scope
	// to it when present so stale rows elsewhere are not picked up.
	sc := scope{page: b.ctx}
	if panel, perr := b.ctx.Sleeper(rod.NotFoundSleeper).Element(".time-dropdown, [class*='time-dropdown']"); perr == nil {
		sc = scope{page: b.ctx, el: panel}
	}

	rowSelector := b.sel.Get(selTimeSlotRow)
	sc.element(rowSelector, 4*time.Second)

	rows := sc.elements(rowSelector)
	if len(rows) == 0 {
		fmt.Println(T("no_times_available"))
		return true
	}

	textSelector := b.sel.Get(selTimeSlotText)
	labels := make([]string, len(rows))
	for i, row := range rows {
		label := ""
		if textSelector != "" {
			if textEl, terr := row.Sleeper(rod.NotFoundSleeper).Element(textSelector); terr == nil {
				if text, terr2 := textEl.Text(); terr2 == nil {
					label = text
				}
			}
		}
		if label == "" {
			if text, terr := row.Text(); terr == nil {
				label = text
			}
		}
		labels[i] = strings.TrimSpace(label)
	}

	idx, exact, ok := pickTimeIndex(labels, requested)
	if !ok {
		fmt.Println(T("no_times_available"))
		return true
	}
	row := rows[idx]

	row.ScrollIntoView()
	b.auto.settle(40 * time.Millisecond)
	if err := row.Timeout(2 * time.Second).Click(proto.InputMouseButtonLeft, 1); err != nil {
		// Rows behind sticky headers reject real clicks; a synthetic
		// one still lands.
		if _, eerr := row.Eval("() => this.click()"); eerr != nil {
			fmt.Printf("  "+T("time_dropdown_error")+"\n", eerr)
			return true
		}
	}

	if exact {
		fmt.Println(T("time_exact_dropdown"))
	} else {
		fmt.Println(T("time_closest_dropdown", labels[idx]))
	}

	b.auto.settle(120 * time.Millisecond)
	b.ctx.Keyboard.Press(input.Escape)
	row.Timeout(time.Second).WaitInvisible()
	return true
}

// selectTimeClosest drives a native <select> of time slots, matching the
// requested time against option labels and values.
func (b *Booking) selectTimeClosest(requested string) {
	selector := b.sel.Get(selTimeSelect)
	if selector == "" {
		return
	}

	pt := b.ctx.Timeout(fieldTimeout)
	defer pt.CancelTimeout()

	el, err := pt.Element(firstAlternative(selector))
	if err == nil {
		err = el.WaitVisible()
	}
	if err != nil {
		fmt.Printf("  "+T("cannot_select_field")+"\n", T("label_time"), err)
		return
	}

	options, err := el.Elements("option")
	if err != nil || len(options) == 0 {
		fmt.Println(T("no_times_available"))
		return
	}

	reqMin := ParseTimeToMinutes(requested)
	labels := make([]string, 0, len(options))
	values := make([]string, 0, len(options))
	for _, opt := range options {
		value := attrOrEmpty(opt, "value")
		if value == "" {
			continue
		}
		label := ""
		if text, terr := opt.Text(); terr == nil {
			label = strings.TrimSpace(text)
		}
		if label == "" {
			label = value
		}
		labels = append(labels, label)
		values = append(values, value)
	}
	if len(values) == 0 {
		fmt.Println(T("no_times_available"))
		return
	}

	for i := range values {
		exact := labels[i] == requested || values[i] == requested
		if !exact && reqMin != minutesNone {
			exact = ParseTimeToMinutes(labels[i]) == reqMin || ParseTimeToMinutes(values[i]) == reqMin
		}
		if exact {
			if err := selectByValue(el, values[i]); err == nil {
				fmt.Println(T("time_exact_select"))
			}
			return
		}
	}

	idx := FindClosestTimeIndex(reqMin, labels)
	if err := selectByValue(el, values[idx]); err == nil {
		fmt.Println(T("time_closest_select", labels[idx]))
	}
}
