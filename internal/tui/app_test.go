package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/budgetflow/internal/advisor"
	"github.com/theirongolddev/budgetflow/internal/budget"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/store"
	"github.com/theirongolddev/budgetflow/internal/tui/components"
)

func seqIDs() model.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type stubOptimizer struct {
	out   *advisor.Output
	err   error
	calls int
}

func (s *stubOptimizer) Optimize(_ context.Context, _ advisor.Input) (*advisor.Output, error) {
	s.calls++
	return s.out, s.err
}

func newTestApp(t *testing.T, opts Options) (App, *budget.Workspace) {
	t.Helper()
	ctx := context.Background()
	ws, err := budget.Open(ctx, store.NewGateway(store.NewMemoryKV(), nil), budget.WithIDFunc(seqIDs()))
	if err != nil {
		t.Fatalf("open workspace: %v", err)
	}
	a := NewApp(ctx, ws, opts)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App), ws
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func findByName(t *testing.T, ws *budget.Workspace, name string) model.Category {
	t.Helper()
	s, _ := ws.Active()
	for _, c := range s.Categories {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q not found", name)
	return model.Category{}
}

func TestBudgetRowsIncomeFirst(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	if len(a.rows) == 0 {
		t.Fatal("seeded scenario should have active rows")
	}
	if a.rows[0].Type != model.Income {
		t.Errorf("first row = %s (%s), want an income category", a.rows[0].Name, a.rows[0].Type)
	}
	for _, c := range a.rows {
		if !c.IsActive {
			t.Errorf("inactive category %s listed on the budget tab", c.Name)
		}
	}
}

func TestAdjustValueKeys(t *testing.T) {
	a, ws := newTestApp(t, Options{})
	first := a.rows[0]

	a = press(t, a, "h", "h", "H")
	got := findByName(t, ws, first.Name)
	want, _ := model.ClampValues(first.CurrentValue-2*valueStep-bigValueStep, first.MaxValue)
	if got.CurrentValue != want {
		t.Errorf("current = %d, want %d", got.CurrentValue, want)
	}

	// Raising current beyond max clamps to max.
	a = press(t, a, "L", "L", "L", "L", "L", "L", "L", "L", "L", "L")
	got = findByName(t, ws, first.Name)
	if got.CurrentValue != got.MaxValue {
		t.Errorf("current = %d, want clamped to max %d", got.CurrentValue, got.MaxValue)
	}

	// Lowering max below current drags current down with it.
	before := got
	press(t, a, "[")
	got = findByName(t, ws, first.Name)
	if got.MaxValue != before.MaxValue-maxStep || got.CurrentValue != got.MaxValue {
		t.Errorf("after max decrease: current=%d max=%d", got.CurrentValue, got.MaxValue)
	}
}

func TestCursorMovementStaysInBounds(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	a = press(t, a, "k", "k")
	if a.budgetList.cursor != 0 {
		t.Errorf("cursor = %d, want 0", a.budgetList.cursor)
	}
	a = press(t, a, "G")
	if a.budgetList.cursor != len(a.rows)-1 {
		t.Errorf("cursor = %d, want %d", a.budgetList.cursor, len(a.rows)-1)
	}
	a = press(t, a, "j")
	if a.budgetList.cursor != len(a.rows)-1 {
		t.Errorf("cursor moved past the end: %d", a.budgetList.cursor)
	}
}

func TestToggleFromManageTab(t *testing.T) {
	a, ws := newTestApp(t, Options{})
	a = press(t, a, "4")
	if a.activeTab != tabManage {
		t.Fatalf("activeTab = %d, want manage", a.activeTab)
	}

	target := a.managed[0]
	a = press(t, a, " ")
	if got := findByName(t, ws, target.Name); got.IsActive == target.IsActive {
		t.Errorf("%s active flag not toggled", target.Name)
	}
	if a.notice.Text == "" || a.notice.Error {
		t.Errorf("expected a success notice, got %+v", a.notice)
	}
}

func TestDeleteDeactivatesPredefined(t *testing.T) {
	a, ws := newTestApp(t, Options{})
	target := a.rows[0]
	if !target.IsPredefined {
		t.Fatalf("expected a predefined first row, got %s", target.Name)
	}

	a = press(t, a, "d")
	got := findByName(t, ws, target.Name)
	if got.IsActive {
		t.Error("deleting a predefined category should deactivate it")
	}
	for _, c := range a.rows {
		if c.ID == target.ID {
			t.Error("deactivated category still listed on the budget tab")
		}
	}
}

func TestAddCategoryOpensForm(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	a = press(t, a, "a")
	if a.form == nil || a.formKind != formAddCategory {
		t.Fatal("expected the add category form")
	}
	if !strings.Contains(a.View(), "New category") {
		t.Error("form title not rendered")
	}

	a = press(t, a, "esc")
	if a.form != nil {
		t.Error("esc should close the form")
	}
}

func TestSubmitAddCategory(t *testing.T) {
	a, ws := newTestApp(t, Options{})
	a.catFields = &CategoryFields{Name: "Streaming", Current: "15", Max: "30", Icon: "Music", Type: model.Expenditure}

	m, _ := a.submitForm(formAddCategory, "")
	a = m.(App)

	got := findByName(t, ws, "Streaming")
	if got.IsPredefined || !got.IsActive || got.CurrentValue != 15 || got.MaxValue != 30 {
		t.Errorf("unexpected category: %+v", got)
	}
	if a.notice.Text != "Added Streaming" {
		t.Errorf("notice = %q", a.notice.Text)
	}
}

func TestSubmitInvalidCategoryShowsError(t *testing.T) {
	a, ws := newTestApp(t, Options{})
	before := len(ws.State().Scenarios[0].Categories)
	a.catFields = &CategoryFields{Name: "Too much", Current: "50", Max: "10", Type: model.Expenditure}

	m, _ := a.submitForm(formAddCategory, "")
	a = m.(App)

	if !a.notice.Error {
		t.Errorf("expected an error notice, got %+v", a.notice)
	}
	if after := len(ws.State().Scenarios[0].Categories); after != before {
		t.Errorf("invalid form changed the scenario: %d -> %d categories", before, after)
	}
}

func TestScenarioCreateAndSwitch(t *testing.T) {
	a, ws := newTestApp(t, Options{})
	first, _ := ws.Active()

	name := "Lean month"
	a.nameField = &name
	m, _ := a.submitForm(formNewScenario, "")
	a = m.(App)

	if len(a.scenarios) != 2 {
		t.Fatalf("scenarios = %d, want 2", len(a.scenarios))
	}
	if a.scenario.Name != "Lean month" {
		t.Errorf("active = %q, want the new copy", a.scenario.Name)
	}

	a = press(t, a, "3", "g", "enter")
	if active, _ := ws.Active(); active.ID != first.ID {
		t.Errorf("enter on the first scenario should switch back, active = %s", active.Name)
	}
}

func TestDeleteLastScenarioReseeds(t *testing.T) {
	a, ws := newTestApp(t, Options{})
	only, _ := ws.Active()

	yes := true
	a.confirm = &yes
	m, _ := a.submitForm(formDeleteScenario, only.ID)
	a = m.(App)

	if len(a.scenarios) != 1 || a.scenarios[0].ID == only.ID {
		t.Fatalf("expected a fresh default scenario, got %+v", a.scenarios)
	}
	if a.scenario.Name != model.DefaultScenarioName {
		t.Errorf("reseeded name = %q", a.scenario.Name)
	}
}

func TestAdvisorWithoutKey(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	a = press(t, a, "5", "o")
	if a.form != nil {
		t.Error("advisor form should not open without a client")
	}
	if !a.notice.Error {
		t.Error("expected an error notice")
	}
}

func TestAdvisorRequestLifecycle(t *testing.T) {
	stub := &stubOptimizer{out: &advisor.Output{Suggestions: []advisor.Suggestion{
		{Category: "Groceries", PotentialSavings: 50, Justification: "Plan meals."},
	}}}
	a, _ := newTestApp(t, Options{Advisor: stub})

	a = press(t, a, "5", "o")
	if a.formKind != formAdvisor {
		t.Fatal("expected the advisor form")
	}
	a.advFields.Goal = "200"
	kind := a.formKind
	a.closeForm()

	m, cmd := a.submitForm(kind, "")
	a = m.(App)
	if !a.advisorPending || cmd == nil {
		t.Fatal("request should be pending with a command")
	}

	// The trigger is disabled while a request is in flight.
	a = press(t, a, "o")
	if a.form != nil {
		t.Error("advisor form opened while a request is pending")
	}

	msg := optimizeCmd(context.Background(), stub, a.advisorInput, a.opts.AdvisorTimeout)()
	m, _ = a.Update(msg)
	a = m.(App)

	if a.advisorPending || a.advisorOut == nil || stub.calls != 1 {
		t.Fatalf("pending=%v out=%v calls=%d", a.advisorPending, a.advisorOut, stub.calls)
	}
	if a.advisorInput.Income != 3000 || a.advisorInput.SavingsGoal != 200 {
		t.Errorf("input = %+v", a.advisorInput)
	}
	if !strings.Contains(a.View(), "Plan meals.") {
		t.Error("suggestion not rendered")
	}
}

func TestAdvisorFailureNotice(t *testing.T) {
	a, _ := newTestApp(t, Options{Advisor: &stubOptimizer{}})
	a.advisorPending = true

	m, _ := a.Update(AdvisorResultMsg{Err: errors.New("boom")})
	a = m.(App)
	if a.advisorPending || !a.notice.Error {
		t.Errorf("pending=%v notice=%+v", a.advisorPending, a.notice)
	}
}

func TestNoticeExpiry(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	a.setNotice("first", false)
	stale := a.noticeSeq
	a.setNotice("second", false)

	m, _ := a.Update(noticeExpiredMsg{seq: stale})
	a = m.(App)
	if a.notice.Text != "second" {
		t.Errorf("stale expiry cleared the current notice: %+v", a.notice)
	}

	m, _ = a.Update(noticeExpiredMsg{seq: a.noticeSeq})
	a = m.(App)
	if a.notice.Text != "" {
		t.Errorf("notice not cleared: %+v", a.notice)
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	for i := range components.Tabs {
		a.activeTab = i
		if out := a.View(); out == "" {
			t.Errorf("tab %d rendered nothing", i)
		}
	}

	a.width = 40
	if !strings.Contains(a.View(), "too narrow") {
		t.Error("expected the narrow terminal message")
	}
}
