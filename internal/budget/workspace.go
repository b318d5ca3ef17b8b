package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/store"
)

var (
	// ErrNotLoaded is returned when saving before the initial load finished.
	ErrNotLoaded = errors.New("budget: state not loaded")
	// ErrEmptyImport rejects an import that yields no scenarios.
	ErrEmptyImport = errors.New("budget: import contains no scenarios")
	// ErrNoActiveScenario is returned when there is nothing to edit.
	ErrNoActiveScenario = errors.New("budget: no active scenario")
)

// Workspace holds the in-memory budget state for a session and writes the
// whole of it through the gateway after every change. When a save fails the
// change is kept in memory and the error is returned.
type Workspace struct {
	gw     store.Gateway
	state  model.State
	newID  model.IDFunc
	loaded bool
	seeded bool
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithIDFunc overrides id generation.
func WithIDFunc(fn model.IDFunc) Option {
	return func(w *Workspace) { w.newID = fn }
}

// Open loads the stored state, seeding a default scenario from the catalog
// when nothing usable is stored.
func Open(ctx context.Context, gw store.Gateway, opts ...Option) (*Workspace, error) {
	w := &Workspace{gw: gw, newID: model.NewID}
	for _, opt := range opts {
		opt(w)
	}

	st, found, err := gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading budget: %w", err)
	}
	w.loaded = true

	if !found {
		w.state = w.seedState()
		w.seeded = true
		log.Debug().Msg("seeded default scenario")
		if err := w.persist(ctx); err != nil {
			return w, err
		}
		return w, nil
	}

	w.state = st
	return w, nil
}

func (w *Workspace) seedState() model.State {
	s := model.SeedScenario(w.newID)
	return model.State{Scenarios: []model.Scenario{s}, ActiveID: s.ID}
}

// Seeded reports whether Open created the default scenario.
func (w *Workspace) Seeded() bool { return w.seeded }

// State returns a deep copy of the current state.
func (w *Workspace) State() model.State {
	out := model.State{ActiveID: w.state.ActiveID}
	out.Scenarios = make([]model.Scenario, len(w.state.Scenarios))
	for i, s := range w.state.Scenarios {
		out.Scenarios[i] = s.Clone()
	}
	return out
}

// Scenarios returns copies of every scenario.
func (w *Workspace) Scenarios() []model.Scenario {
	return w.State().Scenarios
}

// Active returns a copy of the active scenario.
func (w *Workspace) Active() (model.Scenario, bool) {
	s := w.state.Active()
	if s == nil {
		return model.Scenario{}, false
	}
	return s.Clone(), true
}

// NewID returns a fresh identifier from the workspace's generator.
func (w *Workspace) NewID() string { return w.newID() }

func (w *Workspace) persist(ctx context.Context) error {
	if !w.loaded {
		return ErrNotLoaded
	}
	if err := w.gw.Save(ctx, w.state); err != nil {
		log.Error().Err(err).Msg("budget changes kept in memory only")
		return err
	}
	log.Debug().Int("scenarios", len(w.state.Scenarios)).Str("active", w.state.ActiveID).Msg("saved budget")
	return nil
}

func (w *Workspace) active() (*model.Scenario, error) {
	s := w.state.Active()
	if s == nil {
		return nil, ErrNoActiveScenario
	}
	return s, nil
}

// AddCategory validates the form and adds a custom category to the active scenario.
func (w *Workspace) AddCategory(ctx context.Context, f CategoryForm) (model.Category, error) {
	if err := f.Validate(); err != nil {
		return model.Category{}, err
	}
	s, err := w.active()
	if err != nil {
		return model.Category{}, err
	}
	c := AddCategory(s, f, w.newID)
	return c, w.persist(ctx)
}

// EditCategory validates the form and applies it to a category of the active scenario.
func (w *Workspace) EditCategory(ctx context.Context, id string, f CategoryForm) (model.Category, error) {
	if err := f.Validate(); err != nil {
		return model.Category{}, err
	}
	s, err := w.active()
	if err != nil {
		return model.Category{}, err
	}
	c, err := EditCategory(s, id, f, w.newID)
	if err != nil {
		return c, err
	}
	return c, w.persist(ctx)
}

// UpdateValues sets a category's current and max values, clamped.
func (w *Workspace) UpdateValues(ctx context.Context, id string, current, max int64) (model.Category, error) {
	s, err := w.active()
	if err != nil {
		return model.Category{}, err
	}
	c, err := UpdateValues(s, id, current, max)
	if err != nil {
		return c, err
	}
	return c, w.persist(ctx)
}

// DeleteCategory removes or deactivates a category of the active scenario.
func (w *Workspace) DeleteCategory(ctx context.Context, id string) (bool, error) {
	s, err := w.active()
	if err != nil {
		return false, err
	}
	removed, err := DeleteCategory(s, id)
	if err != nil {
		return false, err
	}
	return removed, w.persist(ctx)
}

// ToggleActive sets the active flag of a category of the active scenario.
func (w *Workspace) ToggleActive(ctx context.Context, id string, active bool) (model.Category, error) {
	s, err := w.active()
	if err != nil {
		return model.Category{}, err
	}
	c, err := ToggleActive(s, id, active)
	if err != nil {
		return c, err
	}
	return c, w.persist(ctx)
}

// CreateScenario copies the scenario identified by fromID (the active one
// when empty) under a new name and makes the copy active.
func (w *Workspace) CreateScenario(ctx context.Context, name, fromID string) (model.Scenario, error) {
	if err := ValidateScenarioName(name); err != nil {
		return model.Scenario{}, err
	}
	if fromID == "" {
		fromID = w.state.ActiveID
	}
	i := w.state.IndexOf(fromID)
	if i < 0 {
		return model.Scenario{}, ErrScenarioNotFound
	}

	s := CopyScenario(w.state.Scenarios[i], name, w.newID)
	w.state.Scenarios = append(w.state.Scenarios, s)
	w.state.ActiveID = s.ID
	return s.Clone(), w.persist(ctx)
}

// RenameScenario changes a scenario's name.
func (w *Workspace) RenameScenario(ctx context.Context, id, name string) error {
	if err := ValidateScenarioName(name); err != nil {
		return err
	}
	i := w.state.IndexOf(id)
	if i < 0 {
		return ErrScenarioNotFound
	}
	w.state.Scenarios[i].Name = trimmed(name)
	return w.persist(ctx)
}

// DeleteScenario removes a scenario. Deleting the active one activates the
// first remaining scenario; deleting the last one seeds a fresh default.
func (w *Workspace) DeleteScenario(ctx context.Context, id string) error {
	i := w.state.IndexOf(id)
	if i < 0 {
		return ErrScenarioNotFound
	}
	w.state.Scenarios = append(w.state.Scenarios[:i], w.state.Scenarios[i+1:]...)

	if len(w.state.Scenarios) == 0 {
		w.state = w.seedState()
		log.Info().Msg("last scenario deleted, seeded a new default")
	}
	w.state.FixActive()
	return w.persist(ctx)
}

// SwitchScenario makes the scenario with the given id active.
func (w *Workspace) SwitchScenario(ctx context.Context, id string) error {
	if w.state.IndexOf(id) < 0 {
		return ErrScenarioNotFound
	}
	w.state.ActiveID = id
	return w.persist(ctx)
}

// ReplaceAll swaps the whole collection for imported scenarios. The active
// scenario is kept when the import contains it, otherwise the first imported
// scenario becomes active. An empty import leaves the state untouched.
func (w *Workspace) ReplaceAll(ctx context.Context, scenarios []model.Scenario) error {
	if len(scenarios) == 0 {
		return ErrEmptyImport
	}
	next := model.State{ActiveID: w.state.ActiveID}
	next.Scenarios = make([]model.Scenario, len(scenarios))
	for i, s := range scenarios {
		s = s.Clone()
		for j := range s.Categories {
			s.Categories[j].Clamp()
		}
		next.Scenarios[i] = s
	}
	next.FixActive()

	w.state = next
	log.Info().Int("scenarios", len(scenarios)).Msg("replaced budget from import")
	return w.persist(ctx)
}
