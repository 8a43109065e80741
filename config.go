package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReservationRequest is the immutable reservation input. It is built once
// from configuration and consumed read-only by every step; the engine
// tracks the actually-selected date separately and never mutates it.
type ReservationRequest struct {
	Date      string `json:"date" yaml:"date"`
	Time      string `json:"time" yaml:"time"`
	PartySize int    `json:"partySize" yaml:"party_size"`
}

// ContactInfo holds the guest details filled into the contact step.
type ContactInfo struct {
	Name      string `json:"name" yaml:"name"`
	FirstName string `json:"firstName" yaml:"first_name"`
	LastName  string `json:"lastName" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Mobile    string `json:"mobile" yaml:"mobile"`
}

// SplitName returns the first and last name, deriving them from the
// combined Name field when the split fields are not set.
func (c *ContactInfo) SplitName() (string, string) {
	first, last := c.FirstName, c.LastName
	if first == "" && c.Name != "" {
		first = strings.Fields(c.Name)[0]
	}
	if last == "" && c.Name != "" {
		if fields := strings.Fields(c.Name); len(fields) > 1 {
			last = strings.Join(fields[1:], " ")
		}
	}
	return first, last
}

// PaymentConfig holds the card data for the Stripe payment step. Any
// field left empty in the configuration file can come from the
// STRIPE_* environment variables instead.
type PaymentConfig struct {
	CardNumber     string `json:"cardNumber" yaml:"card_number"`
	Expiry         string `json:"expiry" yaml:"expiry"`
	CVC            string `json:"cvc" yaml:"cvc"`
	CardholderName string `json:"cardholderName" yaml:"cardholder_name"`
}

// Complete reports whether enough card data is present for a payment
// attempt (number, expiry and CVC; the cardholder name is optional).
func (p *PaymentConfig) Complete() bool {
	return p != nil && p.CardNumber != "" && p.Expiry != "" && p.CVC != ""
}

type Config struct {
	BookingURL string `json:"bookingUrl" yaml:"booking_url"`

	Reservation *ReservationRequest `json:"reservation" yaml:"reservation"`
	Contact     *ContactInfo        `json:"contact" yaml:"contact"`
	Payment     *PaymentConfig      `json:"payment" yaml:"payment"`

	// Selectors overrides the built-in table key by key; an override
	// replaces the whole alternatives string for its key.
	Selectors map[string]string `json:"selectors" yaml:"selectors"`

	UseURLParams            bool   `json:"useUrlParams" yaml:"use_url_params"`
	WaitAfterPageLoad       int    `json:"waitAfterPageLoad" yaml:"wait_after_page_load"`
	WaitAfterPaymentConfirm int    `json:"waitAfterPaymentConfirm" yaml:"wait_after_payment_confirm"`
	DateAdjacentRadiusDays  int    `json:"dateAdjacentRadiusDays" yaml:"date_adjacent_radius_days"`
	Timeout                 int    `json:"timeout" yaml:"timeout"`
	WaitUntil               string `json:"waitUntil" yaml:"wait_until"`
	IgnoreHTTPSErrors       bool   `json:"ignoreHttpsErrors" yaml:"ignore_https_errors"`

	// RunAt delays the booking flow until a wall-clock instant, for
	// widgets that open availability at a fixed time of day.
	RunAt string `json:"runAt" yaml:"run_at"`

	BrowserProfilePath string `json:"browserProfilePath" yaml:"browser_profile_path"`
	Headless           bool   `json:"headless" yaml:"headless"`
	KeepBrowserOpen    bool   `json:"keepBrowserOpen" yaml:"keep_browser_open"`

	DryRun    bool `json:"dryRun" yaml:"dry_run"`
	DebugMode bool `json:"debugMode" yaml:"debug_mode"`
}

func DefaultConfig() *Config {
	return &Config{
		UseURLParams:            true,
		WaitAfterPageLoad:       5000,
		WaitAfterPaymentConfirm: 30000,
		DateAdjacentRadiusDays:  15,
		Timeout:                 30000,
		WaitUntil:               "load",
		BrowserProfilePath:      filepath.Join(getUserDataDir(), "browser-profile"),
		Headless:                false,
		KeepBrowserOpen:         false,
	}
}

// LoadConfig reads the configuration document at path over the built-in
// defaults. The document is YAML when the file ends in .yaml/.yml and
// JSON otherwise. A missing file is a fatal startup condition for the
// caller: no meaningful run is possible without a booking target.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file %s not found (copy config.example.json and fill in bookingUrl, reservation and contact)", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	config.applyEnvOverrides()
	return config, nil
}

// applyEnvOverrides fills missing payment fields from the environment, so
// card data can stay out of the configuration file.
func (c *Config) applyEnvOverrides() {
	overrides := map[string]*string{}
	if c.Payment == nil {
		c.Payment = &PaymentConfig{}
	}
	overrides["STRIPE_CARD_NUMBER"] = &c.Payment.CardNumber
	overrides["STRIPE_EXPIRY"] = &c.Payment.Expiry
	overrides["STRIPE_CVC"] = &c.Payment.CVC
	overrides["STRIPE_CARDHOLDER_NAME"] = &c.Payment.CardholderName

	for name, field := range overrides {
		if *field == "" {
			if v := os.Getenv(name); v != "" {
				*field = v
			}
		}
	}
}

// BuildBookingURL appends the reservation as query parameters understood
// by the widget. Without a date the base URL is returned unchanged.
// Parameter order matches the widget's own links: date, time, partySize.
func BuildBookingURL(baseURL string, r *ReservationRequest) string {
	if r == nil || r.Date == "" {
		return baseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}

	params := make([]string, 0, 3)
	params = append(params, "date="+url.QueryEscape(r.Date))
	if r.Time != "" {
		params = append(params, "time="+url.QueryEscape(r.Time))
	}
	if r.PartySize > 0 {
		params = append(params, "partySize="+strconv.Itoa(r.PartySize))
	}

	query := strings.Join(params, "&")
	if u.RawQuery != "" {
		u.RawQuery = u.RawQuery + "&" + query
	} else {
		u.RawQuery = query
	}
	return u.String()
}

func getUserDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./tavolo-data"
	}
	return filepath.Join(home, ".tavolo")
}
