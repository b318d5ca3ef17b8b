// Package model defines domain types for budgetflow categories and scenarios.
package model

import (
	"math"
	"strings"
	"unicode/utf8"
)

// CategoryType distinguishes money coming in from money going out.
type CategoryType string

const (
	Income      CategoryType = "income"
	Expenditure CategoryType = "expenditure"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	return t == Income || t == Expenditure
}

// ParseCategoryType maps s to a CategoryType, falling back to Expenditure.
func ParseCategoryType(s string) CategoryType {
	switch CategoryType(s) {
	case Income:
		return Income
	default:
		return Expenditure
	}
}

// Label returns the display name of the type.
func (t CategoryType) Label() string {
	if t == Income {
		return "Income"
	}
	return "Expenditure"
}

const (
	// MaxNameLength is the longest allowed category name, in characters.
	MaxNameLength = 50
	// MaxDescriptionLength is the longest allowed category description.
	MaxDescriptionLength = 200
)

// LimitText trims s and cuts it to at most n runes.
func LimitText(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}

// Category is one named budget line with a monthly amount and a slider ceiling.
// CurrentValue never exceeds MaxValue and neither is negative.
type Category struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	CurrentValue int64        `json:"currentValue"`
	MaxValue     int64        `json:"maxValue"`
	Icon         Icon         `json:"icon"`
	IsActive     bool         `json:"isActive"`
	IsPredefined bool         `json:"isPredefined"`
	Type         CategoryType `json:"type"`
}

// ClampValues returns current and max adjusted so that
// 0 <= current <= max <= MaxAmount.
func ClampValues(current, max int64) (int64, int64) {
	if max < 0 {
		max = 0
	}
	if max > MaxAmount {
		max = MaxAmount
	}
	if current < 0 {
		current = 0
	}
	if current > max {
		current = max
	}
	return current, max
}

// Clamp enforces the value invariant on c in place.
func (c *Category) Clamp() {
	c.CurrentValue, c.MaxValue = ClampValues(c.CurrentValue, c.MaxValue)
}

// RoundAmount rounds a user-entered amount half away from zero to whole units,
// saturating at MaxAmount in magnitude.
func RoundAmount(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	switch {
	case v > float64(MaxAmount):
		return MaxAmount
	case v < -float64(MaxAmount):
		return -MaxAmount
	}
	return int64(v)
}
