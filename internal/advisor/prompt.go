package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/pipeline"
)

const systemPrompt = `You are a personal finance advisor. Given the user's income, expenses, and savings goal, provide specific and actionable suggestions for budget optimization.

Focus on suggesting cuts to discretionary spending, or finding better deals on fixed expenses, not cutting essentials. Be encouraging and supportive.

Respond with JSON only, in this shape:
{"suggestions": [{"category": "<expense name>", "potentialSavings": <monthly amount as a number>, "justification": "<one or two sentences>"}]}`

// BuildInput derives advisor input from a scenario. Expenses are the active
// expenditure categories by name. A negative income means "use the
// scenario's active income total".
func BuildInput(s model.Scenario, income, savingsGoal float64) Input {
	in := Input{
		Income:      income,
		Expenses:    map[string]float64{},
		SavingsGoal: savingsGoal,
	}
	if income < 0 {
		in.Income = float64(pipeline.Totals(pipeline.ActiveOfType(s.Categories, model.Income)).Monthly)
	}
	for _, c := range pipeline.ActiveOfType(s.Categories, model.Expenditure) {
		in.Expenses[c.Name] += float64(c.CurrentValue)
	}
	return in
}

// Validate checks the input before a request is made.
func (in Input) Validate() error {
	if in.Income < 0 {
		return fmt.Errorf("%w: income cannot be negative", ErrInvalidInput)
	}
	if in.SavingsGoal < 0 {
		return fmt.Errorf("%w: savings goal cannot be negative", ErrInvalidInput)
	}
	if len(in.Expenses) == 0 {
		return fmt.Errorf("%w: no active expenses to optimize", ErrInvalidInput)
	}
	return nil
}

func userPrompt(in Input) (string, error) {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("Here is my monthly budget:\n\n")
	b.Write(data)
	b.WriteString("\n\nSuggest where I can save to reach my savings goal.")
	return b.String(), nil
}
