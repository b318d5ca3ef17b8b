package advisor

import (
	"encoding/json"
	"sort"
)

// Input is what the advisor is told about the budget.
type Input struct {
	Income      float64            `json:"income"`
	Expenses    map[string]float64 `json:"expenses"`
	SavingsGoal float64            `json:"savingsGoal"`
}

// Suggestion is one proposed change to the budget.
type Suggestion struct {
	Category         string  `json:"category"`
	PotentialSavings float64 `json:"potentialSavings"`
	Justification    string  `json:"justification"`
}

// Output is the advisor's answer.
type Output struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// TotalSavings sums PotentialSavings over every suggestion.
func (o Output) TotalSavings() float64 {
	var total float64
	for _, s := range o.Suggestions {
		total += s.PotentialSavings
	}
	return total
}

// ExpenseNames returns the expense keys sorted, for stable prompts and output.
func (in Input) ExpenseNames() []string {
	names := make([]string, 0, len(in.Expenses))
	for name := range in.Expenses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// messagesRequest is the body of a Messages API call.
type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the subset of the Messages API response we read.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// rawSuggestion tolerates savings given as a number or a string such as "£45".
type rawSuggestion struct {
	Category         string          `json:"category"`
	PotentialSavings json.RawMessage `json:"potentialSavings"`
	Justification    string          `json:"justification"`
}
