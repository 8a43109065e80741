package main

import "strings"

// Logical field names understood by the booking engine. Each maps to a
// comma-separated list of selector alternatives in the SelectorTable.
const (
	selIframe                = "iframe"
	selDateInput             = "dateInput"
	selTimeSelect            = "timeSelect"
	selPartySizeSelect       = "partySizeSelect"
	selNameInput             = "nameInput"
	selFirstNameInput        = "firstNameInput"
	selLastNameInput         = "lastNameInput"
	selEmailInput            = "emailInput"
	selPhoneInput            = "phoneInput"
	selNextButton            = "nextButton"
	selPromotionContainer    = "promotionContainer"
	selPromotionFirstOption  = "promotionFirstOption"
	selPartySizeDropdown     = "partySizeDropdown"
	selDatePickerDay         = "datePickerDay"
	selDatePickerNext        = "datePickerNext"
	selDatePickerPrev        = "datePickerPrev"
	selTimeDropdown          = "timeDropdown"
	selTimeSlotRow           = "timeSlotRow"
	selTimeSlotText          = "timeSlotText"
	selStripeCardFrame       = "stripeCardFrame"
	selStripeExpiryFrame     = "stripeExpiryFrame"
	selStripeCvcFrame        = "stripeCvcFrame"
	selStripeCardInput       = "stripeCardInput"
	selStripeExpiryInput     = "stripeExpiryInput"
	selStripeCvcInput        = "stripeCvcInput"
	selCardholderNameInput   = "cardholderNameInput"
	selPayButton             = "payButton"
	selSearchAvailability    = "searchAvailabilityButton"
	selTimeSlotButton        = "timeSlotButton"
	selSubmitButton          = "submitButton"
	selConfirmButton         = "confirmButton"
)

// SelectorTable maps logical field names to selector-alternatives strings.
// It is built once at startup and never mutated afterward.
type SelectorTable map[string]string

// DefaultSelectors returns the built-in ResDiary widget selector table.
// The same structure is shared across ResDiary-hosted restaurants.
func DefaultSelectors() SelectorTable {
	return SelectorTable{
		selIframe:               "iframe[src*='resdiary'], iframe[src*='book.']",
		selDateInput:            "input[name='date'], input[id*='date'], input[type='date']",
		selTimeSelect:           "select[name='time'], select[id*='time']",
		selPartySizeSelect:      "select[name='partySize'], select[name='covers'], select[id*='party'], select[id*='covers']",
		selNameInput:            "input[name='name'], input[name='firstName'], input[id*='name']",
		selFirstNameInput:       "#firstName",
		selLastNameInput:        "#lastName",
		selEmailInput:           "#emailAddress",
		selPhoneInput:           "#mobile",
		selSearchAvailability:   "button[data-action='search'], a[data-action='search']",
		selTimeSlotButton:       "button[data-time], a[data-time], .time-slot, [class*='timeslot']",
		selSubmitButton:         "button[type='submit'], input[type='submit']",
		selConfirmButton:        "button[data-action='confirm'], input[type='submit']",
		selNextButton:           "button.btn-next",
		selPromotionContainer:   "#promotion .list-group-promotion, .list-group.list-group-promotion",
		selPromotionFirstOption: ".list-group-promotion .list-group-item, .list-group-promotion .clickable-promotion-text",
		selPartySizeDropdown:    "#party-size-input .covers-input, #party-size-input .dropdown-selected, #party-size-input",
		selDatePickerDay:        "td[data-action='selectDay'][data-day='__DATE__']:not(.disabled)",
		selDatePickerNext:       "th.next[data-action='next']:not(.disabled), .datepicker th.next:not(.disabled)",
		selDatePickerPrev:       "th.prev[data-action='previous']:not(.disabled), .datepicker th.prev:not(.disabled)",
		selTimeDropdown:         ".rd-time-dropdown .dropdown-selected, .time-dropdown-input, .selected-text",
		selTimeSlotRow:          "li.timeslot-row",
		selTimeSlotText:         ".timeslot-text",
		selStripeCardFrame:      "#card-number iframe",
		selStripeExpiryFrame:    "#card-expiry iframe",
		selStripeCvcFrame:       "#card-cvc iframe",
		selStripeCardInput:      "input[name='cardnumber']",
		selStripeExpiryInput:    "input[name='exp-date']",
		selStripeCvcInput:       "input[name='cvc']",
		selCardholderNameInput:  "input[data-id='cardholder-name-input']",
		selPayButton:            "button[data-id='btn-next'], button.btn-next",
	}
}

// NewSelectorTable overlays user overrides on the built-in defaults.
// An override replaces the whole alternatives string for its key; there is
// no element-wise merge. Both input maps are left untouched.
func NewSelectorTable(overrides map[string]string) SelectorTable {
	table := DefaultSelectors()
	for key, value := range overrides {
		table[key] = value
	}
	return table
}

// Get returns the alternatives string for a logical field, or "" when the
// field has no selector configured.
func (t SelectorTable) Get(key string) string {
	return t[key]
}

// firstAlternative returns the first selector of a comma-separated
// alternatives list. Only the first alternative is used to resolve a
// locator; the remaining entries are retained for forward compatibility.
// An empty list degrades to "body" so resolution itself never fails.
func firstAlternative(selectorString string) string {
	for _, part := range strings.Split(selectorString, ",") {
		if s := strings.TrimSpace(part); s != "" {
			return s
		}
	}
	return "body"
}
