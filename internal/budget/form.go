package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/budgetflow/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CategoryForm is the user-entered data for creating or editing a category.
// Values are accepted as entered and rounded when applied.
type CategoryForm struct {
	Name         string             `validate:"required,max=50"`
	Description  string             `validate:"max=200"`
	CurrentValue float64            `validate:"gte=0,lte=1000000000000"`
	MaxValue     float64            `validate:"gte=0,lte=1000000000000"`
	Icon         string             `validate:"-"`
	Type         model.CategoryType `validate:"oneof=income expenditure"`
}

// ValidationError reports the first invalid field of a form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// FormFromCategory fills a form with the category's current data.
func FormFromCategory(c model.Category) CategoryForm {
	return CategoryForm{
		Name:         c.Name,
		Description:  c.Description,
		CurrentValue: float64(c.CurrentValue),
		MaxValue:     float64(c.MaxValue),
		Icon:         string(c.Icon),
		Type:         c.Type,
	}
}

// Normalize trims the text fields in place.
func (f *CategoryForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Icon = strings.TrimSpace(f.Icon)
}

// Validate normalizes the form and checks it.
func (f *CategoryForm) Validate() error {
	f.Normalize()
	if err := validate.Struct(f); err != nil {
		return translate(err)
	}
	if model.RoundAmount(f.CurrentValue) > model.RoundAmount(f.MaxValue) {
		return &ValidationError{Field: "current value", Message: "cannot exceed the maximum value"}
	}
	return nil
}

// ValidateName checks a category name on its own, for interactive fields.
func ValidateName(name string) error {
	return translateVar(validate.Var(strings.TrimSpace(name), "required,max=50"), "name")
}

// ValidateDescription checks a category description on its own.
func ValidateDescription(desc string) error {
	return translateVar(validate.Var(strings.TrimSpace(desc), "max=200"), "description")
}

// ValidateScenarioName checks a scenario name.
func ValidateScenarioName(name string) error {
	return translateVar(validate.Var(strings.TrimSpace(name), "required,max=50"), "scenario name")
}

// ParseAmountField parses a non-negative amount typed into a form field.
func ParseAmountField(field, s string) (float64, error) {
	v, ok := model.ParseAmount(s)
	if !ok {
		return 0, &ValidationError{Field: field, Message: "must be a number"}
	}
	if v < 0 {
		return 0, &ValidationError{Field: field, Message: "cannot be negative"}
	}
	if model.ExceedsMaxAmount(s) {
		return 0, &ValidationError{Field: field, Message: tooLarge}
	}
	return float64(v), nil
}

var fieldNames = map[string]string{
	"Name":         "name",
	"Description":  "description",
	"CurrentValue": "current value",
	"MaxValue":     "max value",
	"Type":         "type",
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name := fieldNames[fe.Field()]
	if name == "" {
		name = strings.ToLower(fe.Field())
	}
	return &ValidationError{Field: name, Message: message(fe)}
}

func translateVar(err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return &ValidationError{Field: field, Message: message(verrs[0])}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return "cannot be negative"
	case "lte":
		return tooLarge
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

var tooLarge = "must be at most " + model.FormatAmount(model.MaxAmount)

func trimmed(s string) string { return strings.TrimSpace(s) }
