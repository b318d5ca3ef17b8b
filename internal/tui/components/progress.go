package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetflow/internal/tui/theme"
)

// Fraction returns current/max clamped to [0, 1]. A zero max yields 0.
func Fraction(current, maxValue int64) float64 {
	if maxValue <= 0 || current <= 0 {
		return 0
	}
	if current >= maxValue {
		return 1
	}
	return float64(current) / float64(maxValue)
}

// ColorForAllocation returns the slider color for a category: its type color
// until the allocation nears the maximum.
func ColorForAllocation(pct float64, income bool) string {
	t := theme.Active
	switch {
	case income:
		return string(t.Income)
	case pct >= 1:
		return string(t.Danger)
	case pct >= 0.85:
		return string(t.Warning)
	default:
		return string(t.Expense)
	}
}

// Slider renders a category's current value as a bar spanning 0..max.
func Slider(current, maxValue int64, width int, income bool) string {
	if width < 4 {
		width = 4
	}
	pct := Fraction(current, maxValue)

	bar := progress.New(
		progress.WithSolidFill(ColorForAllocation(pct, income)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Active.TextDim)
	return bar.ViewAs(pct)
}

// ShareBar renders a horizontal bar sized by value relative to peak.
func ShareBar(value, peak float64, width int, color lipgloss.Color) string {
	t := theme.Active
	if width < 1 || peak <= 0 {
		return ""
	}
	filled := int(value / peak * float64(width))
	filled = min(max(filled, 0), width)
	if value > 0 && filled == 0 {
		filled = 1
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render(strings.Repeat("░", width-filled))
}
