// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money formats amounts with a currency symbol and locale-aware grouping.
type Money struct {
	Symbol  string
	printer *message.Printer
}

// NewMoney returns a formatter for the given symbol and BCP 47 locale.
// Unknown locales fall back to English grouping.
func NewMoney(symbol, locale string) Money {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Money{Symbol: symbol, printer: message.NewPrinter(tag)}
}

var money = NewMoney("£", "en-GB")

// SetCurrency replaces the formatter used by the package-level helpers.
func SetCurrency(symbol, locale string) {
	money = NewMoney(symbol, locale)
}

// Format renders a whole amount, e.g. 1500 -> "£1,500", -20 -> "-£20".
func (m Money) Format(v int64) string {
	if v < 0 {
		return "-" + m.Symbol + m.printer.Sprintf("%d", -v)
	}
	return m.Symbol + m.printer.Sprintf("%d", v)
}

// FormatFloat renders a fractional amount with two decimals.
func (m Money) FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return m.Symbol + "?"
	}
	if v < 0 {
		return "-" + m.Symbol + m.printer.Sprintf("%.2f", -v)
	}
	return m.Symbol + m.printer.Sprintf("%.2f", v)
}

// FormatMoney formats a whole amount with the configured currency.
func FormatMoney(v int64) string {
	return money.Format(v)
}

// FormatMoneyFloat formats a fractional amount with the configured currency.
func FormatMoneyFloat(v float64) string {
	return money.FormatFloat(v)
}

// FormatNumber adds locale grouping separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return money.printer.Sprintf("%d", n)
}

// FormatShare formats a 0-100 share as a percentage string.
func FormatShare(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats a signed amount with an explicit sign.
func FormatDelta(v int64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatActive renders an active flag as a short marker.
func FormatActive(active bool) string {
	if active {
		return "on"
	}
	return "off"
}

// ShortID returns the first eight characters of an id, enough to type back
// as a unique prefix.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
