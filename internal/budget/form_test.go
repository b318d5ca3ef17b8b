package budget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFormValidate(t *testing.T) {
	tests := []struct {
		name      string
		form      CategoryForm
		wantField string
	}{
		{"valid", CategoryForm{Name: "Rent", CurrentValue: 10, MaxValue: 20, Type: "expenditure"}, ""},
		{"blank name", CategoryForm{Name: "   ", MaxValue: 20, Type: "income"}, "name"},
		{"long name", CategoryForm{Name: strings.Repeat("x", 51), Type: "income"}, "name"},
		{"long description", CategoryForm{Name: "a", Description: strings.Repeat("d", 201), Type: "income"}, "description"},
		{"negative current", CategoryForm{Name: "a", CurrentValue: -1, MaxValue: 5, Type: "income"}, "current value"},
		{"bad type", CategoryForm{Name: "a", Type: "savings"}, "type"},
		{"current over max", CategoryForm{Name: "a", CurrentValue: 10.6, MaxValue: 10.4, Type: "income"}, "current value"},
		{"rounds equal", CategoryForm{Name: "a", CurrentValue: 10.4, MaxValue: 10.2, Type: "income"}, ""},
		{"at ceiling", CategoryForm{Name: "a", CurrentValue: 1e12, MaxValue: 1e12, Type: "income"}, ""},
		{"huge current", CategoryForm{Name: "a", CurrentValue: 1e19, MaxValue: 1e30, Type: "income"}, "current value"},
		{"huge max", CategoryForm{Name: "a", CurrentValue: 5, MaxValue: 1e30, Type: "income"}, "max value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestFieldValidators(t *testing.T) {
	assert.NoError(t, ValidateName("Rent"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(strings.Repeat("é", 51)))
	assert.NoError(t, ValidateName(strings.Repeat("é", 50)))
	assert.NoError(t, ValidateDescription(""))
	assert.Error(t, ValidateScenarioName("  "))

	v, err := ParseAmountField("max value", "12.7")
	require.NoError(t, err)
	assert.Equal(t, 13.0, v)

	_, err = ParseAmountField("max value", "-3")
	assert.Error(t, err)
	_, err = ParseAmountField("max value", "lots")
	assert.Error(t, err)
	_, err = ParseAmountField("max value", "1e30")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at most 1000000000000", verr.Message)
}
