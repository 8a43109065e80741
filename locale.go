package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

type Locale struct {
	translations map[string]string
}

var globalLocale *Locale

// InitLocale initializes the global locale system. The built-in English
// strings are always available; a lang/<locale>.yaml file next to the
// executable overlays them when present.
func InitLocale() error {
	locale := DetectSystemLocale()

	translations := builtinMessages()
	if overlay, err := loadLocaleOverlay(locale); err == nil {
		for key, value := range overlay {
			translations[key] = value
		}
	} else if locale != "en_US" {
		fmt.Printf("Note: no translation file for locale '%s', using English\n", locale)
	}

	globalLocale = &Locale{translations: translations}
	return nil
}

// DetectSystemLocale detects the user's system locale from the usual
// environment variables, defaulting to en_US.
func DetectSystemLocale() string {
	for _, name := range []string{"LANG", "LC_ALL", "LC_MESSAGES"} {
		if locale := os.Getenv(name); locale != "" {
			parts := strings.Split(locale, ".")
			if len(parts) > 0 && parts[0] != "" && parts[0] != "C" {
				return parts[0]
			}
		}
	}
	if runtime.GOOS == "windows" {
		if locale := os.Getenv("LANG"); locale != "" {
			return locale
		}
	}
	return "en_US"
}

// loadLocaleOverlay reads lang/<locale>.yaml from the directory of the
// executable, falling back to the working directory.
func loadLocaleOverlay(locale string) (map[string]string, error) {
	candidates := []string{filepath.Join("lang", locale+".yaml")}
	if exePath, err := os.Executable(); err == nil {
		candidates = append([]string{filepath.Join(filepath.Dir(exePath), "lang", locale+".yaml")}, candidates...)
	}

	for _, localeFile := range candidates {
		data, err := os.ReadFile(localeFile)
		if err != nil {
			continue
		}
		var translations map[string]string
		if err := yaml.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", localeFile, err)
		}
		return translations, nil
	}
	return nil, fmt.Errorf("no locale file for %s", locale)
}

// T translates a key with optional fmt.Sprintf parameters. Unknown keys
// are returned as-is.
func T(key string, params ...interface{}) string {
	if globalLocale == nil {
		return key
	}

	translation, ok := globalLocale.translations[key]
	if !ok {
		return key
	}

	if len(params) > 0 {
		return fmt.Sprintf(translation, params...)
	}
	return translation
}

func builtinMessages() map[string]string {
	return map[string]string{
		"opening_url":             "Opening URL: %s",
		"using_iframe":            "Using booking iframe content.",
		"no_iframe_found":         "No iframe found, using main page.",
		"filled_field":            "Filled %s",
		"cannot_fill_field":       "Could not fill %s: %v",
		"selected_field":          "Selected %s",
		"cannot_select_field":     "Could not select %s: %v",
		"clicked_button":          "Clicked %s",
		"label_date":              "date",
		"label_time":              "time",
		"label_name":              "name",
		"label_first_name":        "first name",
		"label_last_name":         "last name",
		"label_email":             "email",
		"label_phone":             "phone",
		"label_party_size":        "party size",
		"party_selected_dropdown": "Selected party size (dropdown)",
		"party_dropdown_error":    "Party size dropdown: %v",
		"date_selected_calendar":  "Selected date (calendar)",
		"adjacent_date_selected":  "Requested date unavailable, selected adjacent date: %s",
		"date_calendar_failed":    "Date calendar: day not found or not clickable",
		"booked_date_differs":     "Note: booked date differs from request: %s",
		"time_exact_dropdown":     "Selected requested time (dropdown)",
		"time_closest_dropdown":   "Requested time unavailable, selected closest time: %s",
		"time_exact_select":       "Selected requested time (select)",
		"time_closest_select":     "Closest available time (select): %s",
		"time_dropdown_error":     "Time dropdown: %v",
		"no_times_available":      "No times available in the dropdown",
		"promotion_selected":      "Selected first option (table type/promotion)",
		"terms_accepted":          "Accepted terms",
		"payment_step_start":      "Stripe payment step: filling in card...",
		"card_number_filled":      "Filled card number (Stripe)",
		"card_expiry_filled":      "Filled expiry (Stripe)",
		"card_cvc_filled":         "Filled CVC (Stripe)",
		"cardholder_filled":       "Filled cardholder name",
		"payment_waiting_confirm": "Waiting %ds for card confirmation (3D Secure / bank)... Complete the step on the page if asked.",
		"payment_form_not_found":  "Stripe form not found (this restaurant may not require a card at this step).",
		"booking_flow_done":       "Booking flow completed. Check the page for confirmation.",
		"dry_run_mode":            "DRY RUN MODE - Will stop before submitting",
		"dry_run_stopping":        "Dry run: stopping before submission.",
		"browser_launching":       "Launching browser...",
		"browser_launched":        "Browser launched",
		"browser_system_chrome":   "Using system Chrome",
		"browser_chrome_missing":  "System Chrome not found, downloading Chromium...",
		"windows_leakless_off":    "Leakless mode disabled on Windows",
		"cleaning_up":             "Cleaning up browser resources...",
		"browser_destroyed":       "Browser closed",
		"keeping_browser_open":    "Keeping browser open for %d seconds...",
		"done":                    "Done.",
		"schedule_syncing":        "Synchronizing clock for timed start...",
		"schedule_synced":         "Clock synchronized (offset: %v)",
		"schedule_sync_failed":    "Clock sync failed, using local time: %v",
		"schedule_waiting":        "Waiting %s until start time %s",
		"schedule_waiting_update": "Starting in %s...",
		"schedule_past_start":     "Start time already passed, starting now",
		"schedule_started":        "Start time reached, beginning booking flow",
	}
}
