package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if !config.UseURLParams {
		t.Error("UseURLParams should default to true")
	}
	if config.WaitAfterPageLoad != 5000 {
		t.Errorf("WaitAfterPageLoad = %d, want 5000", config.WaitAfterPageLoad)
	}
	if config.WaitAfterPaymentConfirm != 30000 {
		t.Errorf("WaitAfterPaymentConfirm = %d, want 30000", config.WaitAfterPaymentConfirm)
	}
	if config.DateAdjacentRadiusDays != 15 {
		t.Errorf("DateAdjacentRadiusDays = %d, want 15", config.DateAdjacentRadiusDays)
	}
	if config.Timeout != 30000 {
		t.Errorf("Timeout = %d, want 30000", config.Timeout)
	}
	if config.WaitUntil != "load" {
		t.Errorf("WaitUntil = %q, want load", config.WaitUntil)
	}
	if config.Headless {
		t.Error("Headless should default to false")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("json over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		data := `{
			"bookingUrl": "https://booking.example/widget/X",
			"reservation": {"date": "2026-09-15", "time": "19:30", "partySize": 2},
			"timeout": 10000
		}`
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.BookingURL != "https://booking.example/widget/X" {
			t.Errorf("BookingURL = %q", config.BookingURL)
		}
		if config.Reservation == nil || config.Reservation.PartySize != 2 {
			t.Errorf("Reservation = %+v", config.Reservation)
		}
		if config.Timeout != 10000 {
			t.Errorf("Timeout = %d, want 10000", config.Timeout)
		}
		// Absent keys keep their defaults.
		if config.WaitAfterPageLoad != 5000 {
			t.Errorf("WaitAfterPageLoad = %d, want default 5000", config.WaitAfterPageLoad)
		}
	})

	t.Run("yaml over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := `booking_url: https://booking.example/widget/Y
reservation:
  date: "2026-10-01"
  time: "20:00"
  party_size: 4
wait_until: networkidle
`
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.BookingURL != "https://booking.example/widget/Y" {
			t.Errorf("BookingURL = %q", config.BookingURL)
		}
		if config.Reservation == nil || config.Reservation.PartySize != 4 {
			t.Errorf("Reservation = %+v", config.Reservation)
		}
		if config.WaitUntil != "networkidle" {
			t.Errorf("WaitUntil = %q", config.WaitUntil)
		}
		if config.DateAdjacentRadiusDays != 15 {
			t.Errorf("DateAdjacentRadiusDays = %d, want default 15", config.DateAdjacentRadiusDays)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("stripe env overrides", func(t *testing.T) {
		t.Setenv("STRIPE_CARD_NUMBER", "4242424242424242")
		t.Setenv("STRIPE_EXPIRY", "12/30")
		t.Setenv("STRIPE_CVC", "123")
		t.Setenv("STRIPE_CARDHOLDER_NAME", "Mario Rossi")

		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{"bookingUrl": "https://x"}`), 0o644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Payment == nil || config.Payment.CardNumber != "4242424242424242" {
			t.Errorf("Payment = %+v", config.Payment)
		}
		if !config.Payment.Complete() {
			t.Error("payment should be complete from env")
		}
	})

	t.Run("config file wins over env", func(t *testing.T) {
		t.Setenv("STRIPE_CVC", "999")

		path := filepath.Join(t.TempDir(), "config.json")
		data := `{"payment": {"cardNumber": "4000", "expiry": "01/30", "cvc": "123"}}`
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Payment.CVC != "123" {
			t.Errorf("CVC = %q, want config value 123", config.Payment.CVC)
		}
	})
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name          string
		contact       ContactInfo
		expectedFirst string
		expectedLast  string
	}{
		{"explicit fields", ContactInfo{FirstName: "Mario", LastName: "Rossi"}, "Mario", "Rossi"},
		{"derived from name", ContactInfo{Name: "Mario Rossi"}, "Mario", "Rossi"},
		{"multi word last name", ContactInfo{Name: "Maria De Luca"}, "Maria", "De Luca"},
		{"single word name", ContactInfo{Name: "Mario"}, "Mario", ""},
		{"explicit beats combined", ContactInfo{Name: "X Y", FirstName: "Mario", LastName: "Rossi"}, "Mario", "Rossi"},
		{"empty", ContactInfo{}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := tt.contact.SplitName()
			if first != tt.expectedFirst || last != tt.expectedLast {
				t.Errorf("SplitName() = (%q, %q), want (%q, %q)", first, last, tt.expectedFirst, tt.expectedLast)
			}
		})
	}
}

func TestPaymentComplete(t *testing.T) {
	tests := []struct {
		name     string
		payment  *PaymentConfig
		expected bool
	}{
		{"nil", nil, false},
		{"empty", &PaymentConfig{}, false},
		{"missing cvc", &PaymentConfig{CardNumber: "4242", Expiry: "12/30"}, false},
		{"complete without holder", &PaymentConfig{CardNumber: "4242", Expiry: "12/30", CVC: "123"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.payment.Complete(); got != tt.expected {
				t.Errorf("Complete() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildBookingURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		request  *ReservationRequest
		expected string
	}{
		{
			"full reservation",
			"https://booking.example/widget/X",
			&ReservationRequest{Date: "2025-03-15", Time: "19:30", PartySize: 2},
			"https://booking.example/widget/X?date=2025-03-15&time=19%3A30&partySize=2",
		},
		{
			"no date returns base unchanged",
			"https://booking.example/widget/X",
			&ReservationRequest{Time: "19:30", PartySize: 2},
			"https://booking.example/widget/X",
		},
		{
			"nil request",
			"https://booking.example/widget/X",
			nil,
			"https://booking.example/widget/X",
		},
		{
			"party size zero omitted",
			"https://booking.example/widget/X",
			&ReservationRequest{Date: "2025-03-15"},
			"https://booking.example/widget/X?date=2025-03-15",
		},
		{
			"appends to existing query",
			"https://booking.example/widget/X?lang=it",
			&ReservationRequest{Date: "2025-03-15", PartySize: 4},
			"https://booking.example/widget/X?lang=it&date=2025-03-15&partySize=4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildBookingURL(tt.baseURL, tt.request); got != tt.expected {
				t.Errorf("BuildBookingURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}
