package main

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// fillCardDetails fills the Stripe card form. The form can be rendered
// inside the booking iframe or hoisted to the top-level page, so both
// scopes are tried: the booking context first, then the page, then the
// booking context once more after the page attempt has given the widget
// time to mount the frames.
func (b *Booking) fillCardDetails(card *PaymentConfig) bool {
	if b.ctx != b.auto.page {
		if b.fillCardInContext(b.ctx, card) {
			return true
		}
	}
	if b.fillCardInContext(b.auto.page, card) {
		return true
	}
	if b.ctx != b.auto.page {
		return b.fillCardInContext(b.ctx, card)
	}
	return false
}

// fillCardInContext attempts all card fields within one scope. Each
// Stripe field lives in its own cross-origin iframe and is resolved
// independently; any single field landing counts as progress.
func (b *Booking) fillCardInContext(ctx *rod.Page, card *PaymentConfig) bool {
	filled := false

	if b.fillFrameInput(ctx, selStripeCardFrame, selStripeCardInput, card.CardNumber, 1500*time.Millisecond, "card_number_filled") {
		filled = true
	}
	if b.fillFrameInput(ctx, selStripeExpiryFrame, selStripeExpiryInput, card.Expiry, 1200*time.Millisecond, "card_expiry_filled") {
		filled = true
	}
	if b.fillFrameInput(ctx, selStripeCvcFrame, selStripeCvcInput, card.CVC, 1200*time.Millisecond, "card_cvc_filled") {
		filled = true
	}

	// The cardholder name is a regular input outside the Stripe frames.
	if card.CardholderName != "" {
		selector := b.sel.Get(selCardholderNameInput)
		if selector != "" {
			pt := ctx.Timeout(1200 * time.Millisecond)
			el, err := pt.Element(firstAlternative(selector))
			if err == nil {
				err = el.WaitVisible()
			}
			if err == nil {
				err = el.SelectAllText()
			}
			if err == nil {
				err = el.Input(card.CardholderName)
			}
			pt.CancelTimeout()
			if err == nil {
				fmt.Println("  " + T("cardholder_filled"))
				filled = true
			}
		}
	}

	return filled
}

// fillFrameInput resolves a Stripe field frame inside ctx and types the
// value into its input.
func (b *Booking) fillFrameInput(ctx *rod.Page, frameKey, inputKey, value string, timeout time.Duration, doneMsg string) bool {
	if value == "" || b.sel.Get(frameKey) == "" {
		return false
	}
	frame, err := resolveFrame(ctx, firstAlternative(b.sel.Get(frameKey)), timeout)
	if err != nil {
		return false
	}

	pt := frame.Timeout(timeout)
	defer pt.CancelTimeout()

	el, err := pt.Element(firstAlternative(b.sel.Get(inputKey)))
	if err == nil {
		err = el.WaitVisible()
	}
	if err == nil {
		err = el.Input(value)
	}
	if err != nil {
		return false
	}
	fmt.Println("  " + T(doneMsg))
	return true
}
