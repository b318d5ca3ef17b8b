package budget

import (
	"strings"

	"github.com/theirongolddev/budgetflow/internal/model"
)

// CopyScenario deep-copies src under a new name. The copy and each of its
// categories get fresh ids.
func CopyScenario(src model.Scenario, name string, newID model.IDFunc) model.Scenario {
	out := src.Clone()
	out.ID = newID()
	out.Name = strings.TrimSpace(name)
	for i := range out.Categories {
		out.Categories[i].ID = newID()
	}
	return out
}

// FindScenario resolves a reference to a scenario: an exact id, a unique id
// prefix, or a case-insensitive name.
func FindScenario(st model.State, ref string) (model.Scenario, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Scenario{}, ErrScenarioNotFound
	}
	if i := st.IndexOf(ref); i >= 0 {
		return st.Scenarios[i], nil
	}

	var byName, byPrefix []model.Scenario
	for _, s := range st.Scenarios {
		if strings.EqualFold(s.Name, ref) {
			byName = append(byName, s)
		}
		if strings.HasPrefix(s.ID, ref) {
			byPrefix = append(byPrefix, s)
		}
	}
	switch {
	case len(byName) == 1:
		return byName[0], nil
	case len(byName) > 1:
		return model.Scenario{}, ErrAmbiguous
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) > 1:
		return model.Scenario{}, ErrAmbiguous
	}
	return model.Scenario{}, ErrScenarioNotFound
}
