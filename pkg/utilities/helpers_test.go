package utilities

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, time.August, 21, 0, 0, 0, 0, time.UTC).Unix()
	if got := FormatDate(ts); got != "21.08.2025" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestFormatFlightTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{3661, "1h 1m"},
		{7200, "2h 0m"},
		{330, "5:30 min"},
		{65, "1:05 min"},
		{45, "45s"},
		{0, "0s"},
	}
	for _, tt := range tests {
		if got := FormatFlightTime(tt.seconds); got != tt.want {
			t.Errorf("FormatFlightTime(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDaysCount(t *testing.T) {
	tests := []struct {
		days float64
		want string
	}{
		{0, "0 days"},
		{1, "1 day"},
		{10, "10 days"},
		{45, "1 month"},
		{90, "3 months"},
		{400, "1 year"},
		{800, "2 years"},
	}
	for _, tt := range tests {
		if got := FormatDaysCount(tt.days); got != tt.want {
			t.Errorf("FormatDaysCount(%v) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a.b!c", "a\\.b\\!c"},
		{"14:30 (2)", "14:30 \\(2\\)"},
		{"under_score*star", "under\\_score\\*star"},
	}
	for _, tt := range tests {
		if got := EscapeMarkdown(tt.in); got != tt.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"bob", "bob"},
		{"@bob", "bob"},
		{"  @Bob  ", "Bob"},
		{"@", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUsername(tt.in); got != tt.want {
			t.Errorf("NormalizeUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
