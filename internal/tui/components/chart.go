package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetflow/internal/tui/theme"
)

// Column is one bar of a ColumnChart.
type Column struct {
	Label string
	Value float64
	Color lipgloss.Color
}

// ColumnChart renders vertical bars with a labeled Y axis. Negative values
// are drawn as zero-height columns.
func ColumnChart(cols []Column, width, height int) string {
	if len(cols) == 0 || height < 2 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, c := range cols {
		peak = math.Max(peak, c.Value)
	}
	if peak == 0 {
		peak = 1
	}

	// Whole tick intervals, at least two rows each.
	step := chartTickStep(peak)
	for math.Ceil(peak/step) > float64(max(height/2, 2)) {
		step *= 2
	}
	ticks := max(int(math.Ceil(peak/step)), 1)
	ceiling := step * float64(ticks)
	rowsPerTick := max(height/ticks, 2)
	chartH := rowsPerTick * ticks

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	labels := make(map[int]string, ticks)
	for i := 1; i <= ticks; i++ {
		labels[i*rowsPerTick] = formatChartLabel(step * float64(i))
	}

	n := len(cols)
	gap := 2
	barW := (width - yLabelW - 1 - gap*(n-1)) / n
	barW = min(max(barW, 2), 14)
	axisLen := n*barW + (n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	bg := lipgloss.NewStyle().Background(t.Surface)
	axis := bg.Foreground(t.TextDim)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axis.Render(fmt.Sprintf("%*s│", yLabelW, labels[row])))
		for i, c := range cols {
			if i > 0 {
				b.WriteString(bg.Render(strings.Repeat(" ", gap)))
			}
			style := bg.Foreground(c.Color)
			switch {
			case c.Value >= top:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case c.Value > bottom:
				idx := int((c.Value - bottom) / (top - bottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(style.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(bg.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))
	b.WriteString("\n")
	b.WriteString(bg.Render(strings.Repeat(" ", yLabelW+1)))
	for i, c := range cols {
		if i > 0 {
			b.WriteString(bg.Render(strings.Repeat(" ", gap)))
		}
		lbl := c.Label
		if len([]rune(lbl)) > barW {
			lbl = string([]rune(lbl)[:barW])
		}
		b.WriteString(bg.Foreground(t.TextMuted).Render(lipgloss.PlaceHorizontal(barW, lipgloss.Center, lbl)))
	}
	return b.String()
}

// chartTickStep picks a 1/2/5 x 10^n interval giving roughly five ticks.
func chartTickStep(peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	rough := peak / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	scaled := func(div float64, suffix string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("%.0f%s", v/div, suffix)
		}
		return fmt.Sprintf("%.1f%s", v/div, suffix)
	}
	switch {
	case v >= 1e6:
		return scaled(1e6, "M")
	case v >= 1e3:
		return scaled(1e3, "k")
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
