package store

import (
	"encoding/json"
	"strings"

	"github.com/theirongolddev/budgetflow/internal/model"
)

// FallbackMaxValue is the slider ceiling given to stored expenditure
// categories that predate the maxValue field.
const FallbackMaxValue = 1000

const (
	unnamedCategory = "Unnamed Category"
	unnamedScenario = "Unnamed Scenario"
)

// rawCategory mirrors the stored category shape with every field optional so
// older records can be told apart from explicit zero values.
type rawCategory struct {
	ID           *string         `json:"id"`
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	CurrentValue json.RawMessage `json:"currentValue"`
	MaxValue     json.RawMessage `json:"maxValue"`
	Icon         *string         `json:"icon"`
	IsActive     json.RawMessage `json:"isActive"`
	IsPredefined json.RawMessage `json:"isPredefined"`
	Type         *string         `json:"type"`
}

type rawScenario struct {
	ID         *string       `json:"id"`
	Name       *string       `json:"name"`
	Categories []rawCategory `json:"categories"`
}

// upgrade converts stored scenarios to the current shape: missing fields get
// defaults, values become rounded non-negative integers with current <= max,
// and missing or repeated ids are replaced with fresh ones.
func upgrade(raw []rawScenario, newID model.IDFunc) []model.Scenario {
	out := make([]model.Scenario, 0, len(raw))
	seenScenario := make(map[string]bool, len(raw))

	for _, rs := range raw {
		s := model.Scenario{
			ID:   str(rs.ID),
			Name: model.LimitText(str(rs.Name), model.MaxNameLength),
		}
		if s.ID == "" || seenScenario[s.ID] {
			s.ID = newID()
		}
		seenScenario[s.ID] = true
		if s.Name == "" {
			s.Name = unnamedScenario
		}

		seen := make(map[string]bool, len(rs.Categories))
		s.Categories = make([]model.Category, 0, len(rs.Categories))
		for _, rc := range rs.Categories {
			c := upgradeCategory(rc)
			if c.ID == "" || seen[c.ID] {
				c.ID = newID()
			}
			seen[c.ID] = true
			s.Categories = append(s.Categories, c)
		}
		out = append(out, s)
	}
	return out
}

func upgradeCategory(rc rawCategory) model.Category {
	c := model.Category{
		ID:           str(rc.ID),
		Name:         model.LimitText(str(rc.Name), model.MaxNameLength),
		Description:  model.LimitText(str(rc.Description), model.MaxDescriptionLength),
		Icon:         model.ResolveIcon(str(rc.Icon)),
		IsActive:     flag(rc.IsActive, true),
		IsPredefined: flag(rc.IsPredefined, false),
		Type:         model.ParseCategoryType(str(rc.Type)),
	}
	if c.Name == "" {
		c.Name = unnamedCategory
	}

	c.CurrentValue, _ = amount(rc.CurrentValue)
	if max, ok := amount(rc.MaxValue); ok {
		c.MaxValue = max
	} else if c.Type == model.Income {
		c.MaxValue = c.CurrentValue
	} else {
		c.MaxValue = FallbackMaxValue
	}
	c.Clamp()
	return c
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// scalar unwraps a JSON number, string or bool into its text form. null and
// absent values report false.
func scalar(raw json.RawMessage) (string, bool) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return "", false
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	return text, true
}

func amount(raw json.RawMessage) (int64, bool) {
	s, ok := scalar(raw)
	if !ok {
		return 0, false
	}
	return model.ParseAmount(s)
}

func flag(raw json.RawMessage, def bool) bool {
	s, ok := scalar(raw)
	if !ok {
		return def
	}
	return model.ParseFlag(s)
}
