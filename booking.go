package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

const termsCheckboxSelector = "input[type='checkbox'][data-bind*='areRestaurantTermsAccepted'], input[type='checkbox'][data-bind*='TermsAccepted']"

// RunBooking drives one full reservation attempt: navigation, context
// resolution, party size, date, time, contact details, submission and
// payment. Every step is fail-soft; the widget's markup varies between
// restaurants and a missing step must not stop the ones after it.
func RunBooking(auto *Automation, config *Config) error {
	sel := NewSelectorTable(config.Selectors)

	// Direct widget URLs render the form at the top level; only embedded
	// pages need the iframe probe.
	iframeSel := sel.Get(selIframe)
	if strings.Contains(config.BookingURL, "/widget") {
		iframeSel = ""
	}

	finalURL := config.BookingURL
	if config.UseURLParams && config.Reservation != nil {
		finalURL = BuildBookingURL(config.BookingURL, config.Reservation)
	}

	fmt.Println(T("opening_url", finalURL))
	if err := auto.navigate(finalURL); err != nil {
		return err
	}

	ctx := ResolveBookingContext(auto.page, iframeSel, contextTimeout)
	b := NewBooking(auto, config, sel, ctx)

	b.waitForFormReady()

	selectedDate := ""
	if r := config.Reservation; r != nil {
		if r.PartySize > 0 {
			b.selectPartySize(r.PartySize)
		}
		auto.settle(1500 * time.Millisecond)
		if r.Date != "" {
			selectedDate = b.selectDate(r.Date)
		}
		b.selectTime(r.Time)

		// Advance only after a reservation step actually ran; without
		// one the widget is still on its first panel.
		auto.settle(settleAfterClick(b.clickButton(selNextButton)))
	}

	b.selectPromotionIfPresent()

	if config.Contact != nil {
		b.fillContact(config.Contact)
	}

	b.acceptTerms()

	if config.DryRun {
		fmt.Println(T("dry_run_stopping"))
		return nil
	}

	auto.settle(settleAfterClick(b.clickButton(selNextButton)))

	if config.Payment.Complete() {
		fmt.Println(T("payment_step_start"))
		auto.settle(100 * time.Millisecond)
		if b.fillCardDetails(config.Payment) {
			auto.settle(80 * time.Millisecond)
			b.clickButton(selNextButton)
			auto.settle(120 * time.Millisecond)
			b.clickButton(selNextButton)

			holdMs := config.WaitAfterPaymentConfirm
			if holdMs > 0 {
				fmt.Println(T("payment_waiting_confirm", holdMs/1000))
				auto.settle(time.Duration(holdMs) * time.Millisecond)
			}
		} else {
			fmt.Println(T("payment_form_not_found"))
		}
	}

	if r := config.Reservation; r != nil && selectedDate != "" && selectedDate != r.Date {
		fmt.Println(T("booked_date_differs", selectedDate))
	}

	fmt.Println(T("booking_flow_done"))
	return nil
}

// settleAfterClick is the pause applied after an advance attempt. A
// click that never landed re-renders nothing, so there is nothing to
// absorb.
func settleAfterClick(clicked bool) time.Duration {
	if clicked {
		return 120 * time.Millisecond
	}
	return 0
}

// formReadySelector returns the selector of the readiness control to
// wait on: the covers dropdown when configured, otherwise the time
// dropdown. At most one control is waited on.
func formReadySelector(sel SelectorTable) string {
	for _, key := range []string{selPartySizeDropdown, selTimeDropdown} {
		if s := sel.Get(key); s != "" {
			return s
		}
	}
	return ""
}

// waitForFormReady waits for the widget's readiness control to show up,
// bounded by the configured post-load wait. When it never appears a
// short settle still gives slow scripts a chance before the steps run.
func (b *Booking) waitForFormReady() {
	maxWait := time.Duration(b.config.WaitAfterPageLoad) * time.Millisecond
	if maxWait <= 0 {
		return
	}

	selector := formReadySelector(b.sel)
	if selector == "" {
		return
	}

	pt := b.ctx.Timeout(maxWait)
	_, err := pt.Element(firstAlternative(selector))
	pt.CancelTimeout()
	if err == nil {
		return
	}

	fallback := 800 * time.Millisecond
	if maxWait < fallback {
		fallback = maxWait
	}
	b.auto.settle(fallback)
}

// selectPartySize prefers the widget's custom covers dropdown; plain
// select elements are the fallback.
func (b *Booking) selectPartySize(partySize int) {
	trigger := b.sel.Get(selPartySizeDropdown)
	if trigger != "" {
		pt := b.ctx.Timeout(fieldTimeout)
		el, err := pt.Element(firstAlternative(trigger))
		if err == nil {
			err = el.WaitVisible()
		}
		if err == nil {
			err = el.Click(proto.InputMouseButtonLeft, 1)
		}
		if err == nil {
			b.auto.settle(60 * time.Millisecond)
			var item *rod.Element
			item, err = pt.ElementR("li", fmt.Sprintf(`\b%d\b`, partySize))
			if err == nil {
				err = item.Click(proto.InputMouseButtonLeft, 1)
			}
		}
		pt.CancelTimeout()
		if err == nil {
			fmt.Println("  " + T("party_selected_dropdown"))
			return
		}
		fmt.Printf("  "+T("party_dropdown_error")+"\n", err)
	}

	b.selectOption(selPartySizeSelect, strconv.Itoa(partySize), T("label_party_size"))
}

// selectPromotionIfPresent picks the first offered table type or
// promotion when the widget asks for one. Absence is silent; most
// restaurants skip this step entirely.
func (b *Booking) selectPromotionIfPresent() {
	container := b.sel.Get(selPromotionContainer)
	if container == "" {
		return
	}

	pt := b.ctx.Timeout(2 * time.Second)
	_, err := pt.Element(firstAlternative(container))
	pt.CancelTimeout()
	if err != nil {
		return
	}

	pt = b.ctx.Timeout(1500 * time.Millisecond)
	option, err := pt.Element(firstAlternative(b.sel.Get(selPromotionFirstOption)))
	if err == nil {
		err = option.WaitVisible()
	}
	if err == nil {
		err = option.Click(proto.InputMouseButtonLeft, 1)
	}
	pt.CancelTimeout()
	if err != nil {
		return
	}

	fmt.Println("  " + T("promotion_selected"))
	b.auto.settle(50 * time.Millisecond)
	b.clickButton(selNextButton)
	b.auto.settle(100 * time.Millisecond)
}

// fillContact fills the guest details. Widgets with split first/last
// name fields get the split values; the combined name field is the
// fallback.
func (b *Booking) fillContact(contact *ContactInfo) {
	first, last := contact.SplitName()

	firstDone := b.fill(selFirstNameInput, first, T("label_first_name"))
	lastDone := b.fill(selLastNameInput, last, T("label_last_name"))
	if firstDone != stepDone && lastDone != stepDone {
		b.fill(selNameInput, contact.Name, T("label_name"))
	}

	b.fill(selEmailInput, contact.Email, T("label_email"))

	phone := contact.Phone
	if phone == "" {
		phone = contact.Mobile
	}
	b.fill(selPhoneInput, phone, T("label_phone"))

	b.clickButton(selNextButton)
	b.auto.settle(100 * time.Millisecond)
}

// acceptTerms ticks the restaurant terms checkbox when present and not
// already checked.
func (b *Booking) acceptTerms() {
	pt := b.ctx.Timeout(2 * time.Second)
	defer pt.CancelTimeout()

	cb, err := pt.Element(termsCheckboxSelector)
	if err != nil {
		return
	}
	if checked, cerr := cb.Property("checked"); cerr == nil && checked.Bool() {
		return
	}
	if err := cb.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return
	}
	fmt.Println("  " + T("terms_accepted"))
}
