package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"checkin-cli/internal/model"
)

// itemForm is the create/edit modal for agenda items. Editing preserves the
// item's id and color; only the typed fields change.
type itemForm struct {
	id    string
	color string

	inputs [4]textinput.Model // title, description, start, end
	focus  int
	err    string
}

const (
	formFieldTitle = iota
	formFieldDesc
	formFieldStart
	formFieldEnd
)

func newItemForm(it *model.AgendaItem) *itemForm {
	f := &itemForm{}

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 500

	start := textinput.New()
	start.Placeholder = "9"
	start.CharLimit = 2
	start.Width = 4

	end := textinput.New()
	end.Placeholder = "10"
	end.CharLimit = 2
	end.Width = 4

	if it != nil {
		f.id = it.ID
		f.color = it.Color
		title.SetValue(it.Title)
		desc.SetValue(it.Description)
		start.SetValue(strconv.Itoa(it.StartHour))
		end.SetValue(strconv.Itoa(it.EndHour))
	} else {
		start.SetValue("9")
		end.SetValue("10")
	}

	f.inputs = [4]textinput.Model{title, desc, start, end}
	return f
}

func (f *itemForm) cycleFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *itemForm) item() (model.AgendaItem, string) {
	start, err := strconv.Atoi(strings.TrimSpace(f.inputs[formFieldStart].Value()))
	if err != nil {
		return model.AgendaItem{}, "start hour must be a number"
	}
	end, err := strconv.Atoi(strings.TrimSpace(f.inputs[formFieldEnd].Value()))
	if err != nil {
		return model.AgendaItem{}, "end hour must be a number"
	}
	return model.AgendaItem{
		ID:          f.id,
		Color:       f.color,
		Title:       f.inputs[formFieldTitle].Value(),
		Description: f.inputs[formFieldDesc].Value(),
		StartHour:   start,
		EndHour:     end,
	}, ""
}

func (m appModel) updateItemForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.form = nil
		return m, nil
	case "tab", "down":
		f.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		f.cycleFocus(-1)
		return m, nil
	case "enter":
		item, problem := f.item()
		if problem != "" {
			f.err = problem
			return m, nil
		}
		ctx := context.Background()
		var err error
		if f.id == "" {
			_, err = m.app.CreateAgendaItem(ctx, item)
		} else {
			_, err = m.app.EditAgendaItem(ctx, item)
		}
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.modal = modalNone
		m.form = nil
		m.pullNotice()
		return m, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

func (f *itemForm) view(width int) string {
	title := "New agenda item"
	if f.id != "" {
		title = "Edit agenda item"
	}

	lines := []string{
		styleTitle().Render(title),
		"",
		f.inputs[formFieldTitle].View(),
		f.inputs[formFieldDesc].View(),
		"start " + f.inputs[formFieldStart].View() + "  end " + f.inputs[formFieldEnd].View(),
	}
	if f.err != "" {
		lines = append(lines, "", styleNotice().Render(f.err))
	}

	boxW := width - 8
	if boxW > 60 {
		boxW = 60
	}
	if boxW < 24 {
		boxW = 24
	}
	return styleModalBox(boxW).Render(strings.Join(lines, "\n"))
}
