// Package tui provides the interactive Bubble Tea dashboard for budgetflow.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetflow/internal/advisor"
	"github.com/theirongolddev/budgetflow/internal/budget"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/pipeline"
	"github.com/theirongolddev/budgetflow/internal/tui/components"
	"github.com/theirongolddev/budgetflow/internal/tui/theme"
)

// AdvisorResultMsg is sent when an advisor request finishes.
type AdvisorResultMsg struct {
	Output *advisor.Output
	Err    error
}

type noticeExpiredMsg struct{ seq int }

const (
	tabBudget = iota
	tabCharts
	tabScenarios
	tabManage
	tabAdvisor
)

const (
	minTerminalWidth = 70
	maxContentWidth  = 160
	minContentHeight = 5

	valueStep    = 10
	bigValueStep = 100
	maxStep      = 100

	noticeDuration = 3 * time.Second
)

// Options configure the dashboard.
type Options struct {
	// Advisor is nil when no API key is configured.
	Advisor advisor.Optimizer
	// AdvisorTimeout bounds one advisor request.
	AdvisorTimeout time.Duration
}

// listState is a cursor into a scrolling list.
type listState struct {
	cursor int
	offset int
}

func (l *listState) clamp(n int) {
	l.cursor = min(l.cursor, n-1)
	l.cursor = max(l.cursor, 0)
}

// follow scrolls so the cursor stays inside a window of h rows.
func (l *listState) follow(h int) {
	if h < 1 {
		h = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+h {
		l.offset = l.cursor - h + 1
	}
}

// App is the root Bubble Tea model.
type App struct {
	ctx  context.Context
	ws   *budget.Workspace
	opts Options

	// Derived from the workspace after every change
	scenario  model.Scenario
	summary   model.Summary
	rows      []model.Category // active categories, income first
	managed   []model.Category // all categories, predefined first
	scenarios []model.Scenario

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	budgetList   listState
	manageList   listState
	scenarioList listState

	// Embedded huh form; the bound values live on the heap so copies of
	// App share them.
	form      *huh.Form
	formKind  formKind
	catFields *CategoryFields
	nameField *string
	confirm   *bool
	advFields *AdvisorFields
	targetID  string

	// Advisor
	spinner        spinner.Model
	advisorPending bool
	advisorInput   advisor.Input
	advisorOut     *advisor.Output
	advisorErr     error

	notice    components.Notice
	noticeSeq int
}

// NewApp creates the dashboard over an opened workspace.
func NewApp(ctx context.Context, ws *budget.Workspace, opts Options) App {
	if opts.AdvisorTimeout <= 0 {
		opts.AdvisorTimeout = advisor.DefaultTimeout
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{ctx: ctx, ws: ws, opts: opts, spinner: sp}
	a.refresh()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// refresh recomputes everything derived from the workspace.
func (a *App) refresh() {
	a.scenarios = a.ws.Scenarios()
	a.scenario, _ = a.ws.Active()
	a.summary = pipeline.Summarize(a.scenario)

	a.rows = pipeline.ActiveOfType(a.scenario.Categories, model.Income)
	a.rows = append(a.rows, pipeline.ActiveOfType(a.scenario.Categories, model.Expenditure)...)
	a.rows = pipeline.SortForDisplay(a.rows)

	a.managed = append([]model.Category(nil), a.scenario.Categories...)
	sort.SliceStable(a.managed, func(i, j int) bool {
		if a.managed[i].IsPredefined != a.managed[j].IsPredefined {
			return a.managed[i].IsPredefined
		}
		return a.managed[i].Name < a.managed[j].Name
	})

	a.budgetList.clamp(len(a.rows))
	a.manageList.clamp(len(a.managed))
	a.scenarioList.clamp(len(a.scenarios))
}

// setNotice shows a transient message and schedules its removal.
func (a *App) setNotice(text string, isErr bool) tea.Cmd {
	a.noticeSeq++
	a.notice = components.Notice{Text: text, Error: isErr}
	seq := a.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// result refreshes derived state and reports the outcome of a mutation.
func (a *App) result(ok string, err error) tea.Cmd {
	a.refresh()
	if err != nil {
		return a.setNotice(errorText(err), true)
	}
	if ok == "" {
		return nil
	}
	return a.setNotice(ok, false)
}

func errorText(err error) string {
	var verr *budget.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, budget.ErrCategoryNotFound), errors.Is(err, budget.ErrScenarioNotFound):
		return "That item no longer exists"
	default:
		return "Could not save changes: " + err.Error()
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth()).WithHeight(msg.Height - 4)
		}
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			if key.Matches(msg, keys.Cancel) {
				a.closeForm()
				return a, nil
			}
			return a.updateForm(msg)
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
		return a.updateKeys(msg)

	case noticeExpiredMsg:
		if msg.seq == a.noticeSeq {
			a.notice = components.Notice{}
		}
		return a, nil

	case AdvisorResultMsg:
		a.advisorPending = false
		if msg.Err == nil && msg.Output == nil {
			msg.Output = &advisor.Output{}
		}
		a.advisorOut, a.advisorErr = msg.Output, msg.Err
		if msg.Err != nil {
			return a, a.setNotice("Failed to get optimization suggestions", true)
		}
		return a, a.setNotice(fmt.Sprintf("%d suggestions received", len(msg.Output.Suggestions)), false)

	case spinner.TickMsg:
		if !a.advisorPending {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = true
		return a, nil
	case key.Matches(msg, keys.NextTab):
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case key.Matches(msg, keys.PrevTab):
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	}
	if runes := msg.Runes; len(runes) == 1 {
		if idx := components.TabIdxByKey(runes[0]); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	switch a.activeTab {
	case tabBudget:
		return a.updateBudgetKeys(msg)
	case tabScenarios:
		return a.updateScenarioKeys(msg)
	case tabManage:
		return a.updateManageKeys(msg)
	case tabAdvisor:
		return a.updateAdvisorKeys(msg)
	}
	return a, nil
}

func moveCursor(l *listState, msg tea.KeyMsg, n int) bool {
	switch {
	case key.Matches(msg, keys.Up):
		l.cursor--
	case key.Matches(msg, keys.Down):
		l.cursor++
	case key.Matches(msg, keys.Top):
		l.cursor = 0
	case key.Matches(msg, keys.Bottom):
		l.cursor = n - 1
	default:
		return false
	}
	l.clamp(n)
	return true
}

// ─── Forms ──────────────────────────────────────────────────────

func (a App) formWidth() int {
	return min(max(a.contentWidth()-8, 30), 72)
}

func (a App) openForm(kind formKind, f *huh.Form) (tea.Model, tea.Cmd) {
	a.formKind = kind
	a.form = f.WithTheme(huh.ThemeCharm()).WithWidth(a.formWidth())
	if a.height > 0 {
		a.form = a.form.WithHeight(a.height - 4)
	}
	return a, a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.targetID = ""
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind, target := a.formKind, a.targetID
		a.closeForm()
		return a.submitForm(kind, target)
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

func (a App) submitForm(kind formKind, target string) (tea.Model, tea.Cmd) {
	ctx := a.ctx
	switch kind {
	case formAddCategory, formEditCategory:
		f, err := a.catFields.Form()
		if err != nil {
			return a, a.setNotice(errorText(err), true)
		}
		if kind == formAddCategory {
			c, err := a.ws.AddCategory(ctx, f)
			return a, a.result(fmt.Sprintf("Added %s", c.Name), err)
		}
		c, err := a.ws.EditCategory(ctx, target, f)
		return a, a.result(fmt.Sprintf("Updated %s", c.Name), err)

	case formNewScenario:
		s, err := a.ws.CreateScenario(ctx, *a.nameField, "")
		return a, a.result(fmt.Sprintf("Created scenario %s", s.Name), err)

	case formRenameScenario:
		err := a.ws.RenameScenario(ctx, target, *a.nameField)
		return a, a.result("Scenario renamed", err)

	case formDeleteScenario:
		if !*a.confirm {
			return a, nil
		}
		err := a.ws.DeleteScenario(ctx, target)
		return a, a.result("Scenario deleted", err)

	case formAdvisor:
		return a.startAdvisor()
	}
	return a, nil
}

// ─── Mouse Support ──────────────────────────────────────────────

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var l *listState
	var n int
	switch a.activeTab {
	case tabBudget:
		l, n = &a.budgetList, len(a.rows)
	case tabManage:
		l, n = &a.manageList, len(a.managed)
	case tabScenarios:
		l, n = &a.scenarioList, len(a.scenarios)
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if l != nil {
			l.cursor--
			l.clamp(n)
		}
	case tea.MouseButtonWheelDown:
		if l != nil {
			l.cursor++
			l.clamp(n)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

// ─── View ───────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  budgetflow needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("Tabs"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", "1-5")), descStyle.Render("Jump to tab"))

	for _, sec := range keys.helpSections() {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			h := bind.Help()
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", h.Key)),
				descStyle.Render(h.Desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch a.activeTab {
	case tabBudget:
		return "[h/l]value [[/]]max [a]dd [e]dit [d]elete [?]help [q]uit"
	case tabScenarios:
		return "[enter]use [n]ew [r]ename [d]elete [?]help [q]uit"
	case tabManage:
		return "[space]toggle [a]dd [e]dit [d]elete [?]help [q]uit"
	case tabAdvisor:
		return "[o]ask [?]help [q]uit"
	default:
		return "[?]help [q]uit"
	}
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.scenario.Name, a.notice)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabBudget:
		content = a.renderBudgetTab(cw, contentH)
	case tabCharts:
		content = a.renderChartsTab(cw)
	case tabScenarios:
		content = a.renderScenariosTab(cw, contentH)
	case tabManage:
		content = a.renderManageTab(cw, contentH)
	case tabAdvisor:
		content = a.renderAdvisorTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
