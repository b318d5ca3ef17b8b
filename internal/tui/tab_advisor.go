package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetflow/internal/advisor"
	"github.com/theirongolddev/budgetflow/internal/budget"
	"github.com/theirongolddev/budgetflow/internal/cli"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/tui/components"
	"github.com/theirongolddev/budgetflow/internal/tui/theme"
)

func (a App) updateAdvisorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, keys.Ask) && !key.Matches(msg, keys.Use) {
		return a, nil
	}
	if a.advisorPending {
		return a, nil
	}
	if a.opts.Advisor == nil {
		return a, a.setNotice("No advisor API key configured", true)
	}

	fields := &AdvisorFields{Income: model.FormatAmount(a.summary.Income.Monthly)}
	if a.advFields != nil {
		fields.Goal = a.advFields.Goal
	}
	a.advFields = fields
	return a.openForm(formAdvisor, newAdvisorForm(a.advFields))
}

// startAdvisor validates the request and runs it in the background.
func (a App) startAdvisor() (tea.Model, tea.Cmd) {
	income := -1.0 // active income total
	if strings.TrimSpace(a.advFields.Income) != "" {
		v, err := budget.ParseAmountField("income", a.advFields.Income)
		if err != nil {
			return a, a.setNotice(errorText(err), true)
		}
		income = v
	}
	goal, err := budget.ParseAmountField("savings goal", a.advFields.Goal)
	if err != nil {
		return a, a.setNotice(errorText(err), true)
	}

	in := advisor.BuildInput(a.scenario, income, goal)
	if err := in.Validate(); err != nil {
		return a, a.setNotice(strings.TrimPrefix(err.Error(), "advisor: "), true)
	}

	a.advisorPending = true
	a.advisorInput = in
	a.advisorOut, a.advisorErr = nil, nil
	return a, tea.Batch(a.spinner.Tick, optimizeCmd(a.ctx, a.opts.Advisor, in, a.opts.AdvisorTimeout))
}

// optimizeCmd makes one advisor request off the UI goroutine.
func optimizeCmd(ctx context.Context, opt advisor.Optimizer, in advisor.Input, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		out, err := opt.Optimize(ctx, in)
		return AdvisorResultMsg{Output: out, Err: err}
	}
}

func (a App) renderAdvisorTab(cw int) string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)
	muted := base.Foreground(t.TextMuted)
	inner := components.CardInnerWidth(cw)

	var b strings.Builder
	switch {
	case a.opts.Advisor == nil:
		b.WriteString(muted.Render("The advisor needs an API key. Run `budgetflow setup` or set BUDGETFLOW_ADVISOR_KEY."))
	case a.advisorPending:
		b.WriteString(a.spinner.View())
		b.WriteString(muted.Render(fmt.Sprintf(" Asking for suggestions on %d expenses...", len(a.advisorInput.Expenses))))
	case a.advisorErr != nil:
		b.WriteString(base.Foreground(t.Danger).Bold(true).Render("Failed to get optimization suggestions."))
		b.WriteString("\n")
		b.WriteString(base.Foreground(t.TextDim).Render(truncStr(a.advisorErr.Error(), inner)))
		b.WriteString("\n\n")
		b.WriteString(muted.Render("Press [o] to try again."))
	case a.advisorOut != nil:
		b.WriteString(a.renderSuggestions(inner))
	default:
		b.WriteString(muted.Render("Press [o] to ask for ways to reach a monthly savings goal."))
		b.WriteString("\n")
		b.WriteString(base.Foreground(t.TextDim).Render(fmt.Sprintf("Uses the %d active expenditure categories of %s.",
			a.summary.ActiveExpenditure, a.scenario.Name)))
	}

	return components.ContentCard("Budget advisor", b.String(), cw, true)
}

func (a App) renderSuggestions(w int) string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)
	out := a.advisorOut

	if len(out.Suggestions) == 0 {
		return base.Foreground(t.TextMuted).Render("No suggestions returned.")
	}

	var b strings.Builder
	total := out.TotalSavings()
	goal := a.advisorInput.SavingsGoal
	b.WriteString(base.Foreground(t.TextMuted).Render("Potential monthly savings: "))
	b.WriteString(base.Foreground(t.Income).Bold(true).Render(cli.FormatMoneyFloat(total)))
	b.WriteString(base.Foreground(t.TextMuted).Render(" of a " + cli.FormatMoneyFloat(goal) + " goal"))
	if goal > 0 && total < goal {
		b.WriteString(base.Foreground(t.Warning).Render(fmt.Sprintf("  (%s short)", cli.FormatMoneyFloat(goal-total))))
	}
	b.WriteString("\n")

	wrap := base.Foreground(t.TextDim).Width(max(w-4, 20)).PaddingLeft(4)
	for _, s := range out.Suggestions {
		b.WriteString("\n")
		b.WriteString(base.Foreground(t.TextPrimary).Bold(true).Render(s.Category))
		b.WriteString(base.Foreground(t.Income).Render("  save " + cli.FormatMoneyFloat(s.PotentialSavings)))
		if current, ok := a.advisorInput.Expenses[s.Category]; ok {
			b.WriteString(base.Foreground(t.TextMuted).Render(" of " + cli.FormatMoneyFloat(current)))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(s.Justification))
	}
	return b.String()
}
