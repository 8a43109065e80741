package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

const (
	// monthAdvanceMax and monthRetreatMax bound the calendar navigation:
	// scan forward a year, then rewind two years and scan forward again.
	monthAdvanceMax = 12
	monthRetreatMax = 24

	// A freshly rendered day cell can carry a transient disabled class
	// while availability loads; poll it briefly before giving up.
	dayPollInterval    = 60 * time.Millisecond
	dayPollMaxAttempts = 8

	waitAfterMonthNav = 500 * time.Millisecond
	cellWaitTimeout   = 1500 * time.Millisecond

	datePlaceholder = "__DATE__"
)

// dayCellSelector expands the configured day-cell template for a concrete
// date. includeDisabled also matches cells the widget has marked
// unavailable, which is how the engine distinguishes "wrong month" from
// "right month, day sold out".
func dayCellSelector(template, dayFormatted string, includeDisabled bool) string {
	selector := strings.ReplaceAll(template, datePlaceholder, dayFormatted)
	if includeDisabled {
		selector = strings.ReplaceAll(selector, ":not(.disabled)", "")
	}
	return selector
}

// calendarScopeSelector matches the calendar region that is currently
// showing the month given by monthSuffix (formatted "/MM/YYYY").
func calendarScopeSelector(monthSuffix string) string {
	return fmt.Sprintf(
		"table:has(td[data-day$='%s']), [class*=\"calendar\"]:has(td[data-day$='%s'])",
		monthSuffix, monthSuffix)
}

// calendarScope narrows queries to the visible calendar for the target
// month when one can be found, otherwise to the whole booking context.
func (b *Booking) calendarScope(monthSuffix string) scope {
	selector := calendarScopeSelector(monthSuffix)
	has, el, err := b.ctx.Has(selector)
	if err == nil && has {
		return scope{page: b.ctx, el: el}
	}
	return scope{page: b.ctx}
}

func hasDisabledClass(class string) bool {
	return strings.Contains(class, "disabled")
}

// tryClickDay waits for the day cell and clicks it, polling through any
// transient disabled state. The poll observes the include-disabled form
// of the selector so a cell that is rendered but still disabled is seen
// and re-checked rather than treated as missing; a fresh handle is
// queried on every attempt because the widget re-renders cells while
// loading availability.
func (b *Booking) tryClickDay(sc scope, anyCellSelector string) bool {
	if _, err := sc.element(anyCellSelector, cellWaitTimeout); err != nil {
		return false
	}

	for attempt := 0; attempt < dayPollMaxAttempts; attempt++ {
		el, err := sc.peek(anyCellSelector)
		if err != nil {
			return false
		}
		if hasDisabledClass(attrOrEmpty(el, "class")) {
			time.Sleep(dayPollInterval)
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return false
		}
		return true
	}
	return false
}

// dayVisibleButDisabled reports whether the target day cell is rendered
// in the current month view but marked unavailable.
func (b *Booking) dayVisibleButDisabled(sc scope, template, dayFormatted string) bool {
	anySelector := dayCellSelector(template, dayFormatted, true)
	if _, err := sc.peek(anySelector); err != nil {
		return false
	}
	enabledSelector := dayCellSelector(template, dayFormatted, false)
	_, err := sc.peek(enabledSelector)
	return err != nil
}

func (b *Booking) clickMonthNav(key string) bool {
	if !b.clickButton(key) {
		return false
	}
	b.auto.settle(waitAfterMonthNav)
	return true
}

// selectAdjacentAvailableDate looks for a bookable day near the requested
// one, alternating forward and backward within the same month, and clicks
// the first candidate the calendar renders. Its result is the date the
// user must be told about, whether or not the click landed.
func (b *Booking) selectAdjacentAvailableDate(target time.Time, template string, radius int) (string, bool) {
	day := target.Day()
	for _, candidate := range AdjacentDayCandidates(day, DaysInMonth(target), radius) {
		candidateDate := time.Date(target.Year(), target.Month(), candidate, 0, 0, 0, 0, target.Location())
		formatted := FormatDayMonthYear(candidateDate)
		selector := dayCellSelector(template, formatted, false)

		el, err := b.ctx.Sleeper(rod.NotFoundSleeper).Element(selector)
		if err != nil {
			continue
		}
		el.Click(proto.InputMouseButtonLeft, 1)
		fmt.Println(T("adjacent_date_selected", formatted))
		return FormatISODate(candidateDate), true
	}
	return "", false
}

// selectDate drives the widget's calendar toward the requested date and
// returns the ISO date that ended up selected. When no calendar template
// is configured, or the date cannot be parsed, it falls back to typing
// into a plain date input.
func (b *Booking) selectDate(requested string) string {
	template := b.sel.Get(selDatePickerDay)
	target, err := ParseISODate(requested)
	if template == "" || err != nil {
		b.fill(selDateInput, requested, T("label_date"))
		return requested
	}

	dayFormatted := FormatDayMonthYear(target)
	monthSuffix := fmt.Sprintf("/%02d/%04d", int(target.Month()), target.Year())
	anyCellSelector := dayCellSelector(template, dayFormatted, true)

	clicked := false
	terminal := false

	attemptInVisibleMonth := func() {
		sc := b.calendarScope(monthSuffix)
		if sc.el == nil {
			// Target month is not on screen yet; keep navigating.
			return
		}
		if b.tryClickDay(sc, anyCellSelector) {
			clicked = true
			return
		}
		if b.dayVisibleButDisabled(sc, template, dayFormatted) {
			// Right month, day unavailable: no amount of month
			// navigation will help.
			terminal = true
		}
	}

	attemptInVisibleMonth()
	for i := 0; i < monthAdvanceMax && !clicked && !terminal; i++ {
		if !b.clickMonthNav(selDatePickerNext) {
			break
		}
		attemptInVisibleMonth()
	}

	if !clicked && !terminal && b.sel.Get(selDatePickerPrev) != "" {
		for i := 0; i < monthRetreatMax; i++ {
			if !b.clickMonthNav(selDatePickerPrev) {
				break
			}
		}
		attemptInVisibleMonth()
		for i := 0; i < monthAdvanceMax && !clicked && !terminal; i++ {
			if !b.clickMonthNav(selDatePickerNext) {
				break
			}
			attemptInVisibleMonth()
		}
	}

	if clicked {
		fmt.Println(T("date_selected_calendar"))
		return requested
	}

	radius := b.config.DateAdjacentRadiusDays
	if selected, ok := b.selectAdjacentAvailableDate(target, template, radius); ok {
		return selected
	}

	fmt.Println(T("date_calendar_failed"))
	b.fill(selDateInput, requested, T("label_date"))
	return requested
}
