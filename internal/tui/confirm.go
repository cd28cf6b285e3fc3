package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// updateConfirmRemove drives the two-phase removal modal: nothing is deleted
// until the remove button is chosen; esc or the keep button leaves the item
// untouched.
func (m appModel) updateConfirmRemove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.app.CancelRemoveAgendaItem()
		m.modal = modalNone
		return m, nil
	case "tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.confirmRemoval()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.confirmRemoval()
		}
		m.app.CancelRemoveAgendaItem()
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

func (m appModel) confirmRemoval() (tea.Model, tea.Cmd) {
	if _, err := m.app.ConfirmRemoveAgendaItem(context.Background()); err != nil {
		m.notice = err.Error()
	}
	m.pullNotice()
	m.modal = modalNone
	return m, nil
}

func (m appModel) confirmRemoveView() string {
	item, ok := m.app.Day().PendingRemove()
	if !ok {
		return ""
	}

	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	remove := btnBase.Render("Remove")
	keep := btnBase.Render("Keep")
	if m.confirmFocus == confirmFocusConfirm {
		remove = btnActive.Render("Remove")
	} else {
		keep = btnActive.Render("Keep")
	}

	content := strings.Join([]string{
		styleTitle().Render("Remove agenda item?"),
		"",
		item.Title,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, remove, " ", keep),
	}, "\n")

	boxW := m.width - 8
	if boxW > 48 {
		boxW = 48
	}
	if boxW < 24 {
		boxW = 24
	}
	return styleModalBox(boxW).Render(content)
}
