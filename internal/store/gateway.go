package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/theirongolddev/budgetflow/internal/model"
)

// Storage keys. The legacy key held a bare category list before scenarios
// existed; it is read once and removed on the next save.
const (
	KeyScenarios        = "budgetFlowScenarios"
	KeyActiveScenario   = "budgetFlowActiveScenarioId"
	KeySchemaVersion    = "budgetFlowSchemaVersion"
	KeyLegacyCategories = "budgetFlowCategories"
)

// SchemaVersion is written alongside every save.
const SchemaVersion = 2

var (
	// ErrMalformedState marks stored data that could not be decoded.
	ErrMalformedState = errors.New("store: malformed budget state")
	// ErrClosed is returned by a closed store.
	ErrClosed = errors.New("store: closed")
	// ErrWriteFailed is returned by MemoryKV when writes are disabled.
	ErrWriteFailed = errors.New("store: write failed")
)

// Gateway loads and saves the complete budget state.
type Gateway interface {
	// Load returns the stored state. The bool is false when nothing usable
	// is stored, in which case the caller seeds defaults.
	Load(ctx context.Context) (model.State, bool, error)
	Save(ctx context.Context, st model.State) error
}

// KVGateway persists state as JSON under fixed keys of a KV.
type KVGateway struct {
	kv    KV
	newID model.IDFunc
}

// NewGateway returns a gateway over kv. A nil newID uses model.NewID.
func NewGateway(kv KV, newID model.IDFunc) *KVGateway {
	if newID == nil {
		newID = model.NewID
	}
	return &KVGateway{kv: kv, newID: newID}
}

// Load reads, upgrades and reconciles the stored state. Malformed data is
// discarded and reported as absent.
func (g *KVGateway) Load(ctx context.Context) (model.State, bool, error) {
	scenarios, found, err := g.readScenarios(ctx)
	if errors.Is(err, ErrMalformedState) {
		log.Warn().Err(err).Msg("discarding stored budget state")
		if derr := g.discard(ctx); derr != nil {
			return model.State{}, false, derr
		}
		return model.State{}, false, nil
	}
	if err != nil {
		return model.State{}, false, err
	}
	if !found {
		return model.State{}, false, nil
	}

	if v, ok, err := g.kv.Get(ctx, KeySchemaVersion); err == nil && ok {
		if n, _ := strconv.Atoi(v); n > SchemaVersion {
			log.Warn().Int("stored", n).Int("supported", SchemaVersion).
				Msg("budget state was written by a newer version")
		}
	}

	st := model.State{Scenarios: upgrade(scenarios, g.newID)}
	if len(st.Scenarios) == 0 {
		return model.State{}, false, nil
	}

	for i := range st.Scenarios {
		if n := model.Reconcile(&st.Scenarios[i], g.newID); n > 0 {
			log.Debug().Str("scenario", st.Scenarios[i].Name).Int("added", n).
				Msg("reconciled catalog categories")
		}
	}

	active, _, err := g.kv.Get(ctx, KeyActiveScenario)
	if err != nil {
		return model.State{}, false, err
	}
	st.ActiveID = active
	st.FixActive()

	return st, true, nil
}

// readScenarios returns the raw stored scenarios, falling back to the legacy
// single-list layout.
func (g *KVGateway) readScenarios(ctx context.Context) ([]rawScenario, bool, error) {
	data, ok, err := g.kv.Get(ctx, KeyScenarios)
	if err != nil {
		return nil, false, err
	}
	if ok {
		var out []rawScenario
		if err := json.Unmarshal([]byte(data), &out); err != nil {
			return nil, false, fmt.Errorf("%w: %s: %v", ErrMalformedState, KeyScenarios, err)
		}
		return out, true, nil
	}

	data, ok, err = g.kv.Get(ctx, KeyLegacyCategories)
	if err != nil || !ok {
		return nil, false, err
	}
	var cats []rawCategory
	if err := json.Unmarshal([]byte(data), &cats); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrMalformedState, KeyLegacyCategories, err)
	}
	log.Info().Int("categories", len(cats)).Msg("migrating legacy category list into a scenario")
	name := model.DefaultScenarioName
	return []rawScenario{{Name: &name, Categories: cats}}, true, nil
}

func (g *KVGateway) discard(ctx context.Context) error {
	err := g.kv.Apply(ctx, Batch{Delete: []string{
		KeyScenarios, KeyActiveScenario, KeySchemaVersion, KeyLegacyCategories,
	}})
	if err != nil {
		return fmt.Errorf("discarding budget state: %w", err)
	}
	return nil
}

// Save writes the scenarios, the active pointer and the schema version in
// one batch.
func (g *KVGateway) Save(ctx context.Context, st model.State) error {
	scenarios := st.Scenarios
	if scenarios == nil {
		scenarios = []model.Scenario{}
	}
	data, err := json.Marshal(scenarios)
	if err != nil {
		return fmt.Errorf("encoding scenarios: %w", err)
	}

	err = g.kv.Apply(ctx, Batch{
		Set: map[string]string{
			KeyScenarios:      string(data),
			KeyActiveScenario: st.ActiveID,
			KeySchemaVersion:  strconv.Itoa(SchemaVersion),
		},
		Delete: []string{KeyLegacyCategories},
	})
	if err != nil {
		return fmt.Errorf("saving budget state: %w", err)
	}
	return nil
}
