package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *appModel) refreshTodos() {
	todos, err := m.app.Todos(context.Background())
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.todos = todos
	if m.todoIdx >= len(todos) {
		m.todoIdx = len(todos) - 1
	}
	if m.todoIdx < 0 {
		m.todoIdx = 0
	}
}

func (m appModel) updateTodos(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if m.addingTodo {
		switch msg.String() {
		case "esc":
			m.addingTodo = false
			m.todoInput.Blur()
			return m, nil
		case "enter":
			if _, err := m.app.AddTodo(ctx, m.todoInput.Value()); err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.todoInput.Reset()
			m.addingTodo = false
			m.todoInput.Blur()
			m.refreshTodos()
			m.pullNotice()
			return m, nil
		}
		var cmd tea.Cmd
		m.todoInput, cmd = m.todoInput.Update(msg)
		return m, cmd
	}

	if nm, cmd, ok := m.handleGlobalKey(msg); ok {
		return nm, cmd
	}
	switch msg.String() {
	case "j", "down":
		if m.todoIdx < len(m.todos)-1 {
			m.todoIdx++
		}
	case "k", "up":
		if m.todoIdx > 0 {
			m.todoIdx--
		}
	case "a", "n":
		m.addingTodo = true
		m.todoInput.Reset()
		return m, m.todoInput.Focus()
	case " ", "enter":
		if m.todoIdx < len(m.todos) {
			t := m.todos[m.todoIdx]
			if err := m.app.ToggleTodo(ctx, t.ID, t.Done); err != nil {
				m.notice = err.Error()
			}
			m.refreshTodos()
			m.pullNotice()
		}
	case "d", "x":
		if m.todoIdx < len(m.todos) {
			if err := m.app.RemoveTodo(ctx, m.todos[m.todoIdx].ID); err != nil {
				m.notice = err.Error()
			}
			m.refreshTodos()
			m.pullNotice()
		}
	case "h", "left":
		m.shiftDay(ctx, -1)
		m.refreshTodos()
	case "l", "right":
		m.shiftDay(ctx, 1)
		m.refreshTodos()
	}
	return m, nil
}

func (m appModel) todosView() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Todos · " + m.app.SelectedDate()))
	b.WriteString("\n\n")

	if len(m.todos) == 0 && !m.addingTodo {
		b.WriteString(styleMuted().Render("no tasks for this day — press a to add one"))
	}

	width := m.width - 6
	if width < 10 {
		width = 10
	}
	for i, t := range m.todos {
		box := "[ ]"
		task := ansi.Truncate(t.Task, width, "…")
		line := fmt.Sprintf("%s %s", box, task)
		if t.Done {
			line = fmt.Sprintf("[x] %s", task)
			line = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true).Render(line)
		}
		if i == m.todoIdx && !m.addingTodo {
			line = lipgloss.NewStyle().Foreground(colorAccent).Render("▌ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.addingTodo {
		b.WriteString("\n")
		b.WriteString(m.todoInput.View())
	}
	return b.String()
}
