package budget

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetflow/internal/model"
)

func seqIDs() model.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func groceries() model.Category {
	return model.Category{
		ID: "g", Name: "Groceries", Description: "Food and household supplies",
		CurrentValue: 400, MaxValue: 800, Icon: "ShoppingCart",
		IsActive: true, IsPredefined: true, Type: model.Expenditure,
	}
}

func TestAddCategoryClampsAndDefaults(t *testing.T) {
	s := &model.Scenario{ID: "s"}
	c := AddCategory(s, CategoryForm{
		Name: "  Hobbies ", CurrentValue: 120.6, MaxValue: 99.4, Icon: "NoSuchIcon", Type: "bogus",
	}, seqIDs())

	assert.Equal(t, "new-1", c.ID)
	assert.Equal(t, "Hobbies", c.Name)
	assert.EqualValues(t, 99, c.MaxValue)
	assert.EqualValues(t, 99, c.CurrentValue)
	assert.Equal(t, model.DefaultIcon, c.Icon)
	assert.Equal(t, model.Expenditure, c.Type)
	assert.True(t, c.IsActive)
	assert.False(t, c.IsPredefined)
	assert.Len(t, s.Categories, 1)
}

func TestEditPredefinedRenameForks(t *testing.T) {
	s := &model.Scenario{ID: "s", Categories: []model.Category{groceries()}}
	form := FormFromCategory(s.Categories[0])
	form.Name = "Food Shop"
	form.CurrentValue = 450

	got, err := EditCategory(s, "g", form, seqIDs())
	require.NoError(t, err)
	require.Len(t, s.Categories, 2)

	orig := s.Categories[0]
	assert.Equal(t, "Groceries", orig.Name)
	assert.False(t, orig.IsActive)
	assert.True(t, orig.IsPredefined)
	assert.EqualValues(t, 400, orig.CurrentValue)

	assert.Equal(t, got, s.Categories[1])
	assert.Equal(t, "Food Shop", got.Name)
	assert.NotEqual(t, "g", got.ID)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsPredefined)
	assert.EqualValues(t, 450, got.CurrentValue)
	assert.EqualValues(t, 800, got.MaxValue)
}

func TestEditPredefinedSameNameInPlace(t *testing.T) {
	s := &model.Scenario{ID: "s", Categories: []model.Category{groceries()}}
	form := FormFromCategory(s.Categories[0])
	form.MaxValue = 300

	got, err := EditCategory(s, "g", form, seqIDs())
	require.NoError(t, err)
	require.Len(t, s.Categories, 1)
	assert.Equal(t, "g", got.ID)
	assert.True(t, got.IsPredefined)
	assert.EqualValues(t, 300, got.MaxValue)
	assert.EqualValues(t, 300, got.CurrentValue, "current clamped to new max")
}

func TestEditCustomInPlace(t *testing.T) {
	s := &model.Scenario{ID: "s"}
	c := AddCategory(s, CategoryForm{Name: "Gym", CurrentValue: 30, MaxValue: 60, Type: model.Expenditure}, seqIDs())

	got, err := EditCategory(s, c.ID, CategoryForm{Name: "Climbing", CurrentValue: 45, MaxValue: 80, Icon: "Dumbbell", Type: model.Expenditure}, seqIDs())
	require.NoError(t, err)
	require.Len(t, s.Categories, 1)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, "Climbing", got.Name)
	assert.Equal(t, model.Icon("Dumbbell"), got.Icon)
}

func TestEditUnknown(t *testing.T) {
	_, err := EditCategory(&model.Scenario{}, "nope", CategoryForm{Name: "x"}, seqIDs())
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateValuesClamps(t *testing.T) {
	s := &model.Scenario{Categories: []model.Category{groceries()}}

	got, err := UpdateValues(s, "g", 950, 800)
	require.NoError(t, err)
	assert.EqualValues(t, 800, got.CurrentValue)

	got, err = UpdateValues(s, "g", -10, 800)
	require.NoError(t, err)
	assert.Zero(t, got.CurrentValue)

	got, err = UpdateValues(s, "g", 200, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 100, got.CurrentValue)
	assert.EqualValues(t, 100, got.MaxValue)
}

func TestDeleteCategory(t *testing.T) {
	s := &model.Scenario{Categories: []model.Category{groceries()}}
	custom := AddCategory(s, CategoryForm{Name: "Snacks", MaxValue: 50, Type: model.Expenditure}, seqIDs())

	removed, err := DeleteCategory(s, "g")
	require.NoError(t, err)
	assert.False(t, removed)
	require.Len(t, s.Categories, 2)
	assert.False(t, s.Categories[0].IsActive)

	removed, err = DeleteCategory(s, custom.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, s.Categories, 1)

	_, err = DeleteCategory(s, custom.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestToggleActive(t *testing.T) {
	s := &model.Scenario{Categories: []model.Category{groceries()}}
	got, err := ToggleActive(s, "g", false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	got, err = ToggleActive(s, "g", true)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestCopyScenarioFreshIDs(t *testing.T) {
	src := model.SeedScenario(model.NewID)
	cp := CopyScenario(src, "  Lean ", seqIDs())

	assert.Equal(t, "Lean", cp.Name)
	assert.NotEqual(t, src.ID, cp.ID)
	require.Len(t, cp.Categories, len(src.Categories))

	srcIDs := map[string]bool{}
	for _, c := range src.Categories {
		srcIDs[c.ID] = true
	}
	for i, c := range cp.Categories {
		assert.False(t, srcIDs[c.ID], "id %s shared with source", c.ID)
		assert.Equal(t, src.Categories[i].Name, c.Name)
	}

	cp.Categories[0].CurrentValue = 1
	assert.NotEqual(t, int64(1), src.Categories[0].CurrentValue, "copy is deep")
}

func TestFindCategory(t *testing.T) {
	retired := groceries()
	retired.IsActive = false
	s := model.Scenario{Categories: []model.Category{
		retired,
		{ID: "abc123", Name: "Groceries", IsActive: true},
		{ID: "abd999", Name: "Rent", IsActive: true},
	}}

	c, err := FindCategory(s, "groceries")
	require.NoError(t, err)
	assert.Equal(t, "abc123", c.ID, "active match preferred")

	c, err = FindCategory(s, "abd")
	require.NoError(t, err)
	assert.Equal(t, "Rent", c.Name)

	_, err = FindCategory(s, "ab")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = FindCategory(s, "zzz")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
