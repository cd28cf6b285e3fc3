package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"checkin-cli/internal/model"
)

type noteMode int

const (
	noteModeList noteMode = iota
	noteModeRead
	noteModeCompose
)

type noteComposeFocus int

const (
	composeFocusTitle noteComposeFocus = iota
	composeFocusBody
)

type noteRow struct{ note model.Note }

func (r noteRow) FilterValue() string { return r.note.Title + " " + r.note.Text }

func (r noteRow) displayTitle() string {
	if r.note.Title != "" {
		return r.note.Title
	}
	line, _, _ := strings.Cut(strings.TrimSpace(r.note.Text), "\n")
	if line == "" {
		return "(untitled)"
	}
	return line
}

// noteDelegate renders a compact two-line row: title plus creation time and
// sync status.
type noteDelegate struct{}

func (noteDelegate) Height() int                         { return 2 }
func (noteDelegate) Spacing() int                        { return 0 }
func (noteDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d noteDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	r, ok := item.(noteRow)
	if !ok {
		return
	}
	width := l.Width() - 4
	if width < 8 {
		width = 8
	}

	title := ansi.Truncate(r.displayTitle(), width, "…")
	meta := r.note.CreatedAt.Local().Format("Mon 02 Jan 15:04")
	if !r.note.Synced {
		meta += " · pending sync"
	}
	meta = ansi.Truncate(meta, width, "…")

	if index == l.Index() {
		bar := lipgloss.NewStyle().Foreground(colorAccent).Render("▌ ")
		fmt.Fprintf(w, "%s%s\n%s%s", bar, styleTitle().Render(title), bar, styleMuted().Render(meta))
		return
	}
	fmt.Fprintf(w, "  %s\n  %s", title, styleMuted().Render(meta))
}

func (m *appModel) refreshNotesList() {
	notes := m.app.Notes()
	items := make([]list.Item, 0, len(notes))
	for _, n := range notes {
		items = append(items, noteRow{note: n})
	}
	m.notesList.SetItems(items)
}

func (m appModel) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch m.noteMode {
	case noteModeCompose:
		switch msg.String() {
		case "esc":
			m.noteMode = noteModeList
			return m, nil
		case "tab":
			if m.noteFocus == composeFocusTitle {
				m.noteFocus = composeFocusBody
				m.noteTitle.Blur()
				return m, m.noteBody.Focus()
			}
			m.noteFocus = composeFocusTitle
			m.noteBody.Blur()
			return m, m.noteTitle.Focus()
		case "ctrl+s":
			if _, err := m.app.CreateNote(ctx, m.noteTitle.Value(), m.noteBody.Value()); err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.noteTitle.Reset()
			m.noteBody.Reset()
			m.noteMode = noteModeList
			m.refreshNotesList()
			m.pullNotice()
			return m, nil
		}
		var cmd tea.Cmd
		if m.noteFocus == composeFocusTitle {
			m.noteTitle, cmd = m.noteTitle.Update(msg)
		} else {
			m.noteBody, cmd = m.noteBody.Update(msg)
		}
		return m, cmd

	case noteModeRead:
		switch msg.String() {
		case "esc", "q":
			m.noteMode = noteModeList
		case "j", "down":
			m.readLine++
		case "k", "up":
			if m.readLine > 0 {
				m.readLine--
			}
		}
		return m, nil
	}

	if nm, cmd, ok := m.handleGlobalKey(msg); ok {
		return nm, cmd
	}
	switch msg.String() {
	case "n":
		m.noteMode = noteModeCompose
		m.noteFocus = composeFocusTitle
		m.noteTitle.Reset()
		m.noteBody.Reset()
		m.noteBody.Blur()
		return m, m.noteTitle.Focus()
	case "enter":
		if r, ok := m.notesList.SelectedItem().(noteRow); ok {
			m.readTitle = r.displayTitle()
			m.readBody = renderMarkdown(r.note.Text, m.width-4)
			m.readLine = 0
			m.noteMode = noteModeRead
		}
		return m, nil
	case "d":
		if r, ok := m.notesList.SelectedItem().(noteRow); ok {
			if err := m.app.DeleteNote(ctx, r.note.ID); err != nil {
				m.notice = err.Error()
			}
			m.refreshNotesList()
			m.pullNotice()
		}
		return m, nil
	case "r":
		return m, tea.Batch(m.spin.Tick, fetchNotesCmd(m.app))
	}

	var cmd tea.Cmd
	m.notesList, cmd = m.notesList.Update(msg)
	return m, cmd
}

func (m appModel) notesView() string {
	switch m.noteMode {
	case noteModeCompose:
		title := "New note"
		return strings.Join([]string{
			styleTitle().Render(title),
			"",
			m.noteTitle.View(),
			"",
			m.noteBody.View(),
			"",
			styleMuted().Render("ctrl+s: save   tab: switch field   esc: cancel"),
		}, "\n")

	case noteModeRead:
		lines := strings.Split(m.readBody, "\n")
		visible := m.height - 5
		if visible < 3 {
			visible = 3
		}
		top := m.readLine
		if top > len(lines)-1 {
			top = len(lines) - 1
		}
		if top < 0 {
			top = 0
		}
		end := top + visible
		if end > len(lines) {
			end = len(lines)
		}
		return styleTitle().Render(m.readTitle) + "\n" + strings.Join(lines[top:end], "\n")
	}

	if m.app.LoadingNotes() {
		return m.spin.View() + styleMuted().Render(" fetching notes…") + "\n" + m.notesList.View()
	}
	return m.notesList.View()
}
