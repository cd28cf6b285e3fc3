package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"checkin-cli/internal/store"
)

type loginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	register bool
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginForm{email: email, password: password}
}

func (f *loginForm) cycleFocus() tea.Cmd {
	if f.focus == 0 {
		f.focus = 1
		f.email.Blur()
		return f.password.Focus()
	}
	f.focus = 0
	f.password.Blur()
	return f.email.Focus()
}

func (m appModel) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if m.app.Authenticated() {
		if nm, cmd, ok := m.handleGlobalKey(msg); ok {
			return nm, cmd
		}
		if msg.String() == "ctrl+o" {
			if err := m.app.SignOut(ctx); err != nil {
				m.notice = err.Error()
				return m, nil
			}
			if m.cfg != nil {
				m.cfg.Session = nil
				_ = store.SaveConfig(m.cfg)
			}
			m.notice = "signed out — local cache is now the active store"
			m.refreshTodos()
			return m, fetchNotesCmd(m.app)
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.setView(viewPlanner)
		return m, nil
	case "tab", "shift+tab":
		// Tab keeps its global meaning (next/previous view); the arrow keys
		// switch between the email and password fields.
		if nm, cmd, ok := m.handleGlobalKey(msg); ok {
			return nm, cmd
		}
		return m, nil
	case "up", "down":
		return m, m.login.cycleFocus()
	case "ctrl+r":
		m.login.register = !m.login.register
		return m, nil
	case "enter":
		return m.submitAuth(ctx)
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m appModel) submitAuth(ctx context.Context) (tea.Model, tea.Cmd) {
	if m.app.Remote == nil {
		m.notice = "no remote store configured; run `checkin auth configure` first"
		return m, nil
	}
	email := strings.TrimSpace(m.login.email.Value())
	password := m.login.password.Value()

	if m.login.register {
		if err := m.app.Remote.SignUp(ctx, email, password); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.login.register = false
		m.notice = "account created — sign in to continue"
		return m, nil
	}

	session, err := m.app.SignIn(ctx, email, password)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	if m.cfg != nil {
		m.cfg.Session = session
		_ = store.SaveConfig(m.cfg)
	}
	m.login.password.Reset()
	m.pullNotice()
	m.setView(viewPlanner)
	m.refreshTodos()
	return m, fetchNotesCmd(m.app)
}

func (m appModel) authView() string {
	if s := m.app.Session(); s.Valid() {
		who := s.Email
		if who == "" {
			who = s.UserID
		}
		return strings.Join([]string{
			styleTitle().Render("Account"),
			"",
			"Signed in as " + who,
			"",
			styleMuted().Render("Notes, todos and the agenda sync to the remote store."),
			styleMuted().Render("ctrl+o: sign out"),
		}, "\n")
	}

	title := "Sign in"
	action := "create an account instead"
	if m.login.register {
		title = "Register"
		action = "sign in instead"
	}
	return strings.Join([]string{
		styleTitle().Render(title),
		"",
		m.login.email.View(),
		m.login.password.View(),
		"",
		styleMuted().Render("enter: submit   ↑/↓: switch field   ctrl+r: " + action),
	}, "\n")
}
