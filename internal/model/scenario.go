package model

// DefaultScenarioName is used for scenarios seeded from the catalog.
const DefaultScenarioName = "Default Scenario"

// Scenario is a named, independent collection of categories.
type Scenario struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

// Find returns the index of the category with the given id, or -1.
func (s *Scenario) Find(id string) int {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

// State is the whole persisted budget: every scenario and which one is active.
type State struct {
	Scenarios []Scenario
	ActiveID  string
}

// Empty reports whether the state holds no scenarios.
func (st State) Empty() bool {
	return len(st.Scenarios) == 0
}

// IndexOf returns the index of the scenario with the given id, or -1.
func (st State) IndexOf(id string) int {
	for i := range st.Scenarios {
		if st.Scenarios[i].ID == id {
			return i
		}
	}
	return -1
}

// Active returns a pointer to the active scenario, or nil if there is none.
func (st *State) Active() *Scenario {
	if i := st.IndexOf(st.ActiveID); i >= 0 {
		return &st.Scenarios[i]
	}
	return nil
}

// FixActive points ActiveID at the first scenario when it does not reference
// a member of the collection.
func (st *State) FixActive() {
	if st.IndexOf(st.ActiveID) >= 0 {
		return
	}
	if len(st.Scenarios) == 0 {
		st.ActiveID = ""
		return
	}
	st.ActiveID = st.Scenarios[0].ID
}

// Clone returns a deep copy of the scenario.
func (s Scenario) Clone() Scenario {
	out := s
	out.Categories = append([]Category(nil), s.Categories...)
	return out
}
