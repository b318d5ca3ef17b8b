// Package budget applies user edits to categories and scenarios and keeps the
// persisted state in step with them.
package budget

import (
	"errors"
	"strings"

	"github.com/theirongolddev/budgetflow/internal/model"
)

var (
	// ErrCategoryNotFound is returned when no category matches an id.
	ErrCategoryNotFound = errors.New("budget: category not found")
	// ErrScenarioNotFound is returned when no scenario matches an id.
	ErrScenarioNotFound = errors.New("budget: scenario not found")
	// ErrAmbiguous is returned when a reference matches more than one item.
	ErrAmbiguous = errors.New("budget: reference matches more than one item")
)

func (f CategoryForm) values() (int64, int64) {
	max := model.RoundAmount(f.MaxValue)
	current := model.RoundAmount(f.CurrentValue)
	if current > max {
		current = max
	}
	return model.ClampValues(current, max)
}

// AddCategory appends a new active custom category built from the form.
func AddCategory(s *model.Scenario, f CategoryForm, newID model.IDFunc) model.Category {
	f.Normalize()
	c := model.Category{
		ID:           newID(),
		Name:         f.Name,
		Description:  f.Description,
		Icon:         model.ResolveIcon(f.Icon),
		IsActive:     true,
		IsPredefined: false,
		Type:         model.ParseCategoryType(string(f.Type)),
	}
	c.CurrentValue, c.MaxValue = f.values()
	s.Categories = append(s.Categories, c)
	return c
}

// EditCategory applies the form to the category with the given id. Renaming
// a predefined category leaves the original in place, deactivated, and
// appends the edited data as a new custom category, which is returned.
func EditCategory(s *model.Scenario, id string, f CategoryForm, newID model.IDFunc) (model.Category, error) {
	i := s.Find(id)
	if i < 0 {
		return model.Category{}, ErrCategoryNotFound
	}
	f.Normalize()

	orig := &s.Categories[i]
	if orig.IsPredefined && f.Name != orig.Name {
		orig.IsActive = false
		return AddCategory(s, f, newID), nil
	}

	orig.Name = f.Name
	orig.Description = f.Description
	orig.Icon = model.ResolveIcon(f.Icon)
	orig.Type = model.ParseCategoryType(string(f.Type))
	orig.CurrentValue, orig.MaxValue = f.values()
	return *orig, nil
}

// UpdateValues sets the current and maximum values of a category, clamping
// current into [0, max].
func UpdateValues(s *model.Scenario, id string, current, max int64) (model.Category, error) {
	i := s.Find(id)
	if i < 0 {
		return model.Category{}, ErrCategoryNotFound
	}
	c := &s.Categories[i]
	c.CurrentValue, c.MaxValue = model.ClampValues(current, max)
	return *c, nil
}

// DeleteCategory removes a custom category. Predefined categories are only
// deactivated. It reports whether the category was removed.
func DeleteCategory(s *model.Scenario, id string) (bool, error) {
	i := s.Find(id)
	if i < 0 {
		return false, ErrCategoryNotFound
	}
	if s.Categories[i].IsPredefined {
		s.Categories[i].IsActive = false
		return false, nil
	}
	s.Categories = append(s.Categories[:i], s.Categories[i+1:]...)
	return true, nil
}

// ToggleActive sets whether a category counts towards totals.
func ToggleActive(s *model.Scenario, id string, active bool) (model.Category, error) {
	i := s.Find(id)
	if i < 0 {
		return model.Category{}, ErrCategoryNotFound
	}
	s.Categories[i].IsActive = active
	return s.Categories[i], nil
}

// FindCategory resolves a user reference to a category: an exact id, a
// unique id prefix, or a case-insensitive name.
func FindCategory(s model.Scenario, ref string) (model.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Category{}, ErrCategoryNotFound
	}
	if i := s.Find(ref); i >= 0 {
		return s.Categories[i], nil
	}

	var byName, byPrefix []model.Category
	for _, c := range s.Categories {
		if strings.EqualFold(c.Name, ref) {
			byName = append(byName, c)
		}
		if strings.HasPrefix(c.ID, ref) {
			byPrefix = append(byPrefix, c)
		}
	}
	// An active match is preferred when a name is shared with a retired
	// predefined category.
	if len(byName) > 1 {
		var active []model.Category
		for _, c := range byName {
			if c.IsActive {
				active = append(active, c)
			}
		}
		byName = active
	}
	switch {
	case len(byName) == 1:
		return byName[0], nil
	case len(byName) > 1:
		return model.Category{}, ErrAmbiguous
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) > 1:
		return model.Category{}, ErrAmbiguous
	}
	return model.Category{}, ErrCategoryNotFound
}
