package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetflow/internal/tui/theme"
)

// Notice is a transient message shown in the status bar.
type Notice struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// current notice (or the active scenario) on the right.
func RenderStatusBar(width int, hints, scenario string, notice Notice) string {
	t := theme.Active

	base := lipgloss.NewStyle().Background(t.Surface)
	left := base.Foreground(t.TextMuted).Render(" " + hints)

	var right string
	switch {
	case notice.Text != "" && notice.Error:
		right = base.Foreground(t.Danger).Bold(true).Render(notice.Text + " ")
	case notice.Text != "":
		right = base.Foreground(t.Income).Render(notice.Text + " ")
	case scenario != "":
		right = base.Foreground(t.TextDim).Render("Scenario: ") +
			base.Foreground(t.Accent).Render(scenario+" ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, base.Width(padding).Render(""), right)
}
