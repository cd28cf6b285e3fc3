package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"checkin-cli/internal/app"
	"checkin-cli/internal/model"
	"checkin-cli/internal/store"
	"checkin-cli/internal/timeline"
)

type view int

const (
	viewPlanner view = iota
	viewNotes
	viewTodos
	viewAuth
)

func (v view) String() string {
	switch v {
	case viewNotes:
		return "notes"
	case viewTodos:
		return "todos"
	case viewAuth:
		return "account"
	default:
		return "planner"
	}
}

type modalKind int

const (
	modalNone modalKind = iota
	modalItemForm
	modalConfirmRemove
)

type notesLoadedMsg struct{ err error }

type appModel struct {
	app *app.App
	cfg *store.GlobalConfig

	width  int
	height int
	// The first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	view  view
	modal modalKind

	// Planner state. The grid is rebuilt on resize and orientation toggle;
	// the drag controller follows it.
	grid   timeline.Grid
	drag   *timeline.DragController
	selIdx int

	form         *itemForm
	confirmFocus confirmModalFocus

	// Notes state.
	notesList list.Model
	noteMode  noteMode
	noteTitle textinput.Model
	noteBody  textarea.Model
	noteFocus noteComposeFocus
	readBody  string
	readTitle string
	readLine  int
	spin      spinner.Model

	// Todos state.
	todos      []model.Todo
	todoIdx    int
	todoInput  textinput.Model
	addingTodo bool

	// Auth state.
	login loginForm

	notice string
}

func newAppModel(a *app.App, cfg *store.GlobalConfig) appModel {
	if cfg != nil && cfg.TUI != nil && cfg.TUI.Orientation == timeline.Horizontal.String() {
		a.SetOrientation(timeline.Horizontal)
	}

	nl := list.New([]list.Item{}, noteDelegate{}, 0, 0)
	nl.Title = "Notes"
	nl.SetShowHelp(false)
	nl.SetShowStatusBar(false)
	nl.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Placeholder = "Note title (optional)"
	ti.CharLimit = 120

	ta := textarea.New()
	ta.Placeholder = "Write your note (markdown)…"

	todoInput := textinput.New()
	todoInput.Placeholder = "New task…"
	todoInput.CharLimit = 200

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleMuted()))

	m := appModel{
		app:       a,
		cfg:       cfg,
		drag:      timeline.NewDragController(timeline.Grid{Slot: 1, Cross: 1}),
		notesList: nl,
		noteTitle: ti,
		noteBody:  ta,
		todoInput: todoInput,
		spin:      sp,
		login:     newLoginForm(),
	}
	m.refreshTodos()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, fetchNotesCmd(m.app))
}

func fetchNotesCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		return notesLoadedMsg{err: a.FetchNotes(context.Background())}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.rebuildGrid()
		m.notesList.SetSize(msg.Width, msg.Height-5)
		m.noteBody.SetWidth(msg.Width - 8)
		m.noteBody.SetHeight(max(4, msg.Height-10))
		return m, nil

	case notesLoadedMsg:
		m.pullNotice()
		m.refreshNotesList()
		return m, nil

	case spinner.TickMsg:
		if !m.app.LoadingNotes() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.view == viewPlanner && m.modal == modalNone {
			return m.updatePlannerMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.modal {
		case modalItemForm:
			return m.updateItemForm(msg)
		case modalConfirmRemove:
			return m.updateConfirmRemove(msg)
		}
		switch m.view {
		case viewPlanner:
			return m.updatePlannerKey(msg)
		case viewNotes:
			return m.updateNotes(msg)
		case viewTodos:
			return m.updateTodos(msg)
		case viewAuth:
			return m.updateAuth(msg)
		}
	}
	return m, nil
}

// handleGlobalKey processes keys shared by every view when no text input has
// focus. The bool reports whether the key was consumed.
func (m appModel) handleGlobalKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "tab":
		m.setView(view((int(m.view) + 1) % 4))
		return m, nil, true
	case "shift+tab":
		m.setView(view((int(m.view) + 3) % 4))
		return m, nil, true
	case "1":
		m.setView(viewPlanner)
		return m, nil, true
	case "2":
		m.setView(viewNotes)
		return m, nil, true
	case "3":
		m.setView(viewTodos)
		return m, nil, true
	case "4":
		m.setView(viewAuth)
		return m, nil, true
	case "ctrl+t":
		dark := m.app.ToggleDarkMode()
		lipgloss.SetHasDarkBackground(dark)
		m.saveTUIPrefs()
		return m, nil, true
	}
	return m, nil, false
}

func (m *appModel) setView(v view) {
	m.view = v
	if act := m.drag.Cancel(); act.Kind == timeline.ActionResize {
		m.app.Day().Resize(act.ItemID, act.Hour)
	}
	if v == viewTodos {
		m.refreshTodos()
	}
}

// pullNotice drains the app's transient message into the footer.
func (m *appModel) pullNotice() {
	if n := m.app.Notice(); n != "" {
		m.notice = n
	}
}

func (m *appModel) saveTUIPrefs() {
	if m.cfg == nil {
		return
	}
	if m.cfg.TUI == nil {
		m.cfg.TUI = &store.TUIConfig{}
	}
	dark := m.app.DarkMode()
	m.cfg.TUI.DarkMode = &dark
	m.cfg.TUI.Orientation = m.app.Orientation().String()
	// Preference writes are best-effort; the session stays usable without.
	_ = store.SaveConfig(m.cfg)
}

func (m appModel) View() string {
	if !m.seenWindowSize {
		return "loading…"
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	switch m.modal {
	case modalItemForm:
		b.WriteString(m.form.view(m.width))
	case modalConfirmRemove:
		b.WriteString(m.confirmRemoveView())
	default:
		switch m.view {
		case viewPlanner:
			b.WriteString(m.plannerView())
		case viewNotes:
			b.WriteString(m.notesView())
		case viewTodos:
			b.WriteString(m.todosView())
		case viewAuth:
			b.WriteString(m.authView())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m appModel) headerView() string {
	tabs := make([]string, 0, 4)
	for _, v := range []view{viewPlanner, viewNotes, viewTodos, viewAuth} {
		tabs = append(tabs, styleTab(v == m.view).Render(v.String()))
	}
	who := "local only"
	if s := m.app.Session(); s.Valid() {
		who = s.Email
		if who == "" {
			who = s.UserID
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	right := styleMuted().Render(fmt.Sprintf("%s · %s", m.app.SelectedDate(), who))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) footerView() string {
	if m.notice != "" {
		return styleNotice().Render(m.notice)
	}
	var help string
	switch {
	case m.modal == modalItemForm:
		help = "tab: next field   enter: save   esc: cancel"
	case m.modal == modalConfirmRemove:
		help = "tab: focus   enter: select   esc: keep"
	case m.view == viewPlanner:
		help = "j/k: select   J/K: move   +/-: resize   drag: move/resize   o: flip   h/l: day   n: new   e: edit   d: delete   q: quit"
	case m.view == viewNotes:
		help = "enter: read   n: new   d: delete   r: refresh   tab: next view   q: quit"
	case m.view == viewTodos:
		help = "a: add   space: toggle   d: delete   h/l: day   tab: next view   q: quit"
	case m.app.Authenticated():
		help = "ctrl+o: logout   tab: next view   q: quit"
	default:
		help = "↑/↓: switch field   enter: submit   ctrl+r: login/register   tab: next view"
	}
	return styleMuted().Render(help)
}
