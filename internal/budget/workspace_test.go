package budget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/store"
)

func openWorkspace(t *testing.T, kv *store.MemoryKV) *Workspace {
	t.Helper()
	ws, err := Open(context.Background(), store.NewGateway(kv, nil))
	require.NoError(t, err)
	return ws
}

func reload(t *testing.T, kv *store.MemoryKV) model.State {
	t.Helper()
	st, found, err := store.NewGateway(kv, nil).Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	return st
}

func TestOpenSeedsAndPersists(t *testing.T) {
	kv := store.NewMemoryKV()
	ws := openWorkspace(t, kv)

	assert.True(t, ws.Seeded())
	active, ok := ws.Active()
	require.True(t, ok)
	assert.Equal(t, model.DefaultScenarioName, active.Name)
	assert.Len(t, active.Categories, len(model.Catalog()))

	assert.Equal(t, ws.State(), reload(t, kv))

	again := openWorkspace(t, kv)
	assert.False(t, again.Seeded())
	assert.Equal(t, ws.State(), again.State())
}

func TestMutationsPersist(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	ws := openWorkspace(t, kv)

	c, err := ws.AddCategory(ctx, CategoryForm{Name: "Coffee", CurrentValue: 40, MaxValue: 80, Icon: "Coffee", Type: model.Expenditure})
	require.NoError(t, err)

	_, err = ws.UpdateValues(ctx, c.ID, 95, 80)
	require.NoError(t, err)

	st := reload(t, kv)
	s := st.Active()
	require.NotNil(t, s)
	got := s.Categories[s.Find(c.ID)]
	assert.EqualValues(t, 80, got.CurrentValue)

	removed, err := ws.DeleteCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	st = reload(t, kv)
	assert.Equal(t, -1, st.Active().Find(c.ID))
}

func TestAddCategoryRejectsInvalid(t *testing.T) {
	ws := openWorkspace(t, store.NewMemoryKV())
	before := ws.State()

	_, err := ws.AddCategory(context.Background(), CategoryForm{Name: "", Type: model.Expenditure})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, ws.State())
}

func TestScenarioLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	ws := openWorkspace(t, kv)
	first, _ := ws.Active()

	lean, err := ws.CreateScenario(ctx, "Lean", "")
	require.NoError(t, err)
	assert.Equal(t, lean.ID, ws.State().ActiveID)
	assert.Len(t, ws.Scenarios(), 2)

	require.NoError(t, ws.RenameScenario(ctx, lean.ID, "Lean Year"))
	st := reload(t, kv)
	assert.Equal(t, "Lean Year", st.Active().Name)

	assert.Error(t, ws.RenameScenario(ctx, lean.ID, "  "))
	assert.ErrorIs(t, ws.RenameScenario(ctx, "missing", "x"), ErrScenarioNotFound)

	require.NoError(t, ws.SwitchScenario(ctx, first.ID))
	assert.Equal(t, first.ID, reload(t, kv).ActiveID)

	require.NoError(t, ws.DeleteScenario(ctx, first.ID))
	assert.Equal(t, lean.ID, ws.State().ActiveID, "first remaining becomes active")
}

func TestDeleteLastScenarioReseeds(t *testing.T) {
	ctx := context.Background()
	ws := openWorkspace(t, store.NewMemoryKV())
	only, _ := ws.Active()

	require.NoError(t, ws.DeleteScenario(ctx, only.ID))

	st := ws.State()
	require.Len(t, st.Scenarios, 1)
	assert.NotEqual(t, only.ID, st.Scenarios[0].ID)
	assert.Equal(t, st.Scenarios[0].ID, st.ActiveID)
	assert.Equal(t, model.DefaultScenarioName, st.Scenarios[0].Name)
}

func TestReplaceAll(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	ws := openWorkspace(t, kv)
	before := ws.State()

	assert.ErrorIs(t, ws.ReplaceAll(ctx, nil), ErrEmptyImport)
	assert.Equal(t, before, ws.State())

	imported := []model.Scenario{{ID: "imp", Name: "Imported", Categories: []model.Category{
		{ID: "c", Name: "Rent", CurrentValue: 900, MaxValue: 500, IsActive: true, Type: model.Expenditure},
	}}}
	require.NoError(t, ws.ReplaceAll(ctx, imported))

	st := ws.State()
	require.Len(t, st.Scenarios, 1)
	assert.Equal(t, "imp", st.ActiveID)
	assert.EqualValues(t, 500, st.Scenarios[0].Categories[0].CurrentValue)
	assert.EqualValues(t, 900, imported[0].Categories[0].CurrentValue, "input not mutated")
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	ws := openWorkspace(t, kv)
	kv.FailWrites = true

	c, err := ws.AddCategory(ctx, CategoryForm{Name: "Books", MaxValue: 30, Type: model.Expenditure})
	assert.ErrorIs(t, err, store.ErrWriteFailed)

	active, _ := ws.Active()
	assert.NotEqual(t, -1, active.Find(c.ID))
}

func TestZeroWorkspaceDoesNotSave(t *testing.T) {
	var ws Workspace
	assert.ErrorIs(t, ws.persist(context.Background()), ErrNotLoaded)
}
