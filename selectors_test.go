package main

import "testing"

func TestNewSelectorTable(t *testing.T) {
	t.Run("no overrides keeps defaults", func(t *testing.T) {
		table := NewSelectorTable(nil)
		if table.Get(selFirstNameInput) != "#firstName" {
			t.Errorf("default firstNameInput = %q", table.Get(selFirstNameInput))
		}
	})

	t.Run("override replaces whole key", func(t *testing.T) {
		table := NewSelectorTable(map[string]string{
			selEmailInput: "input.custom-email",
		})
		if got := table.Get(selEmailInput); got != "input.custom-email" {
			t.Errorf("override lost: %q", got)
		}
		if got := table.Get(selFirstNameInput); got != "#firstName" {
			t.Errorf("untouched key changed: %q", got)
		}
	})

	t.Run("unknown override key is retained", func(t *testing.T) {
		table := NewSelectorTable(map[string]string{"customThing": ".x"})
		if got := table.Get("customThing"); got != ".x" {
			t.Errorf("custom key = %q", got)
		}
	})

	t.Run("input map not mutated", func(t *testing.T) {
		overrides := map[string]string{selEmailInput: "input.custom-email"}
		_ = NewSelectorTable(overrides)
		if len(overrides) != 1 {
			t.Errorf("overrides map mutated: %v", overrides)
		}
		fresh := DefaultSelectors()
		if fresh.Get(selEmailInput) != "#emailAddress" {
			t.Errorf("defaults mutated: %q", fresh.Get(selEmailInput))
		}
	})
}

func TestSelectorTableGet(t *testing.T) {
	table := NewSelectorTable(nil)
	if got := table.Get("noSuchKey"); got != "" {
		t.Errorf("Get(noSuchKey) = %q, want empty", got)
	}
}

func TestFirstAlternative(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single selector", "#firstName", "#firstName"},
		{"takes first of list", "input[name='date'], input[id*='date']", "input[name='date']"},
		{"trims whitespace", "  .a , .b", ".a"},
		{"empty string falls back to body", "", "body"},
		{"only commas falls back to body", ", ,", "body"},
		{"attribute value with no comma", "td[data-day='15/09/2026']:not(.disabled)", "td[data-day='15/09/2026']:not(.disabled)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstAlternative(tt.input); got != tt.expected {
				t.Errorf("firstAlternative(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
