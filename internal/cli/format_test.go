package cli

import "testing"

func TestMoneyFormat(t *testing.T) {
	gb := NewMoney("£", "en-GB")
	de := NewMoney("€", "de-DE")
	bad := NewMoney("$", "not a locale!")

	tests := []struct {
		m    Money
		in   int64
		want string
	}{
		{gb, 0, "£0"},
		{gb, 950, "£950"},
		{gb, 1500, "£1,500"},
		{gb, 1234567, "£1,234,567"},
		{gb, -200, "-£200"},
		{de, 1500, "€1.500"},
		{bad, 12000, "$12,000"},
	}
	for _, tt := range tests {
		if got := tt.m.Format(tt.in); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMoneyFormatFloat(t *testing.T) {
	gb := NewMoney("£", "en-GB")
	if got := gb.FormatFloat(253.846); got != "£253.85" {
		t.Errorf("FormatFloat = %q, want %q", got, "£253.85")
	}
	if got := gb.FormatFloat(-1234.5); got != "-£1,234.50" {
		t.Errorf("FormatFloat = %q, want %q", got, "-£1,234.50")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"Credit Card Payments", 10, "Credit Ca…"},
		{"Café au lait", 5, "Café…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0f8fad5b-d9cb-469f-a165-70867728950e"); got != "0f8fad5b" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}
