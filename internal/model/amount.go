package model

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest magnitude an amount may hold. Yearly totals of
// many categories at this bound still fit in an int64.
const MaxAmount int64 = 1_000_000_000_000

var maxAmountDec = decimal.NewFromInt(MaxAmount)

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Round(0), true
}

// ParseAmount parses a decimal amount and rounds it half away from zero to
// whole units. Values beyond MaxAmount in magnitude saturate at the bound.
// Thousands separators are not accepted.
func ParseAmount(s string) (int64, bool) {
	d, ok := parseDecimal(s)
	if !ok {
		return 0, false
	}
	switch {
	case d.GreaterThan(maxAmountDec):
		return MaxAmount, true
	case d.LessThan(maxAmountDec.Neg()):
		return -MaxAmount, true
	}
	return d.IntPart(), true
}

// ExceedsMaxAmount reports whether s parses to an amount beyond MaxAmount in
// magnitude.
func ExceedsMaxAmount(s string) bool {
	d, ok := parseDecimal(s)
	return ok && d.Abs().GreaterThan(maxAmountDec)
}

// ParseFlag interprets the loose boolean spellings found in stored and
// imported data: "true" in any case or a non-zero number is true.
func ParseFlag(s string) bool {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "true") {
		return true
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return !d.IsZero()
	}
	return false
}

// FormatAmount renders an amount the way it is written to files.
func FormatAmount(v int64) string {
	return strconv.FormatInt(v, 10)
}
