// Package pipeline derives totals and chart breakdowns from budget categories.
package pipeline

import (
	"sort"

	"github.com/theirongolddev/budgetflow/internal/model"
)

// WeeksPerMonth converts monthly amounts to weekly ones (52 weeks / 12 months).
const WeeksPerMonth = 52.0 / 12.0

// MonthsPerYear converts monthly amounts to yearly ones.
const MonthsPerYear = 12

// Totals sums CurrentValue over categories and projects the sum to weekly
// and yearly figures. Callers filter to the categories they want first.
func Totals(categories []model.Category) model.Totals {
	var monthly int64
	for _, c := range categories {
		monthly += c.CurrentValue
	}
	return FromMonthly(monthly)
}

// FromMonthly projects a single monthly amount.
func FromMonthly(monthly int64) model.Totals {
	return model.Totals{
		Weekly:  float64(monthly) / WeeksPerMonth,
		Monthly: monthly,
		Yearly:  monthly * MonthsPerYear,
	}
}

// NetTotals subtracts expenditure from income period by period.
func NetTotals(income, expenditure model.Totals) model.Totals {
	return model.Totals{
		Weekly:  income.Weekly - expenditure.Weekly,
		Monthly: income.Monthly - expenditure.Monthly,
		Yearly:  income.Yearly - expenditure.Yearly,
	}
}

// ActiveOfType returns the active categories of the given type, in order.
func ActiveOfType(categories []model.Category, typ model.CategoryType) []model.Category {
	var out []model.Category
	for _, c := range categories {
		if c.IsActive && c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// Summarize computes the income, expenditure and net totals of a scenario.
func Summarize(s model.Scenario) model.Summary {
	income := ActiveOfType(s.Categories, model.Income)
	spend := ActiveOfType(s.Categories, model.Expenditure)

	sum := model.Summary{
		ScenarioID:        s.ID,
		ScenarioName:      s.Name,
		Income:            Totals(income),
		Expenditure:       Totals(spend),
		ActiveIncome:      len(income),
		ActiveExpenditure: len(spend),
	}
	sum.Net = NetTotals(sum.Income, sum.Expenditure)

	for _, c := range s.Categories {
		if c.IsActive {
			continue
		}
		sum.InactiveCategories++
		if c.IsPredefined {
			sum.PredefinedInactive++
		}
	}
	return sum
}

// Breakdown returns each category's share of the combined CurrentValue,
// largest first. Zero-valued categories are dropped.
func Breakdown(categories []model.Category) []model.CategoryShare {
	var total int64
	for _, c := range categories {
		total += c.CurrentValue
	}

	out := make([]model.CategoryShare, 0, len(categories))
	for _, c := range categories {
		if c.CurrentValue == 0 {
			continue
		}
		share := model.CategoryShare{
			ID:    c.ID,
			Name:  c.Name,
			Icon:  c.Icon,
			Type:  c.Type,
			Value: c.CurrentValue,
		}
		if total > 0 {
			share.Percent = float64(c.CurrentValue) / float64(total) * 100
		}
		out = append(out, share)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// SortForDisplay orders categories by type (income first) and then by name,
// the order used by the category management views.
func SortForDisplay(categories []model.Category) []model.Category {
	out := append([]model.Category(nil), categories...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type == model.Income
		}
		return out[i].Name < out[j].Name
	})
	return out
}
