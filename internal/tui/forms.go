package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/budgetflow/internal/budget"
	"github.com/theirongolddev/budgetflow/internal/model"
)

type formKind int

const (
	formNone formKind = iota
	formAddCategory
	formEditCategory
	formNewScenario
	formRenameScenario
	formDeleteScenario
	formAdvisor
)

// CategoryFields holds the raw text of the category form while it is edited.
type CategoryFields struct {
	Name        string
	Description string
	Current     string
	Max         string
	Icon        string
	Type        model.CategoryType
}

// FieldsFromCategory fills form fields from an existing category.
func FieldsFromCategory(c model.Category) CategoryFields {
	return CategoryFields{
		Name:        c.Name,
		Description: c.Description,
		Current:     model.FormatAmount(c.CurrentValue),
		Max:         model.FormatAmount(c.MaxValue),
		Icon:        string(c.Icon),
		Type:        c.Type,
	}
}

// Form converts the fields into a validated-ready budget form.
func (v CategoryFields) Form() (budget.CategoryForm, error) {
	cur, err := budget.ParseAmountField("current value", v.Current)
	if err != nil {
		return budget.CategoryForm{}, err
	}
	maxValue, err := budget.ParseAmountField("max value", v.Max)
	if err != nil {
		return budget.CategoryForm{}, err
	}
	f := budget.CategoryForm{
		Name:         v.Name,
		Description:  v.Description,
		CurrentValue: cur,
		MaxValue:     maxValue,
		Icon:         v.Icon,
		Type:         v.Type,
	}
	return f, f.Validate()
}

func amountValidator(field string) func(string) error {
	return func(s string) error {
		_, err := budget.ParseAmountField(field, s)
		return err
	}
}

func iconOptions() []huh.Option[string] {
	icons := model.Icons()
	opts := make([]huh.Option[string], len(icons))
	for i, ic := range icons {
		opts[i] = huh.NewOption(ic.Glyph()+"  "+string(ic), string(ic))
	}
	return opts
}

// NewCategoryForm builds the add/edit form bound to v. The CLI runs it
// standalone; the dashboard embeds it.
func NewCategoryForm(title string, v *CategoryFields) *huh.Form {
	if v.Icon == "" {
		v.Icon = string(model.DefaultIcon)
	}
	if !v.Type.Valid() {
		v.Type = model.Expenditure
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Name").
				CharLimit(model.MaxNameLength).
				Value(&v.Name).
				Validate(budget.ValidateName),
			huh.NewInput().
				Title("Description").
				CharLimit(model.MaxDescriptionLength).
				Value(&v.Description).
				Validate(budget.ValidateDescription),
			huh.NewSelect[model.CategoryType]().
				Title("Type").
				Options(
					huh.NewOption(model.Expenditure.Label(), model.Expenditure),
					huh.NewOption(model.Income.Label(), model.Income),
				).
				Value(&v.Type),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Current monthly value").
				Value(&v.Current).
				Validate(amountValidator("current value")),
			huh.NewInput().
				Title("Maximum value").
				Value(&v.Max).
				Validate(func(s string) error {
					if err := amountValidator("max value")(s); err != nil {
						return err
					}
					_, err := v.Form()
					return err
				}),
			huh.NewSelect[string]().
				Title("Icon").
				Options(iconOptions()...).
				Height(8).
				Value(&v.Icon),
		),
	).WithShowHelp(true)
}

// newScenarioNameForm asks for a scenario name.
func newScenarioNameForm(title string, name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				CharLimit(model.MaxNameLength).
				Value(name).
				Validate(budget.ValidateScenarioName),
		),
	).WithShowHelp(true)
}

// newConfirmForm asks a yes/no question.
func newConfirmForm(title, description string, ok *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Delete").
				Negative("Cancel").
				Value(ok),
		),
	)
}

// AdvisorFields holds the raw text of the advisor request form.
type AdvisorFields struct {
	Income string
	Goal   string
}

var errGoalRequired = errors.New("savings goal is required")

func newAdvisorForm(v *AdvisorFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly income").
				Description("Defaults to the scenario's active income").
				Value(&v.Income).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					return amountValidator("income")(s)
				}),
			huh.NewInput().
				Title("Monthly savings goal").
				Value(&v.Goal).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errGoalRequired
					}
					return amountValidator("savings goal")(s)
				}),
		),
	).WithShowHelp(true)
}
