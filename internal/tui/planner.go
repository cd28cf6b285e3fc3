package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"checkin-cli/internal/datekey"
	"checkin-cli/internal/model"
	"checkin-cli/internal/timeline"
)

// Planner layout constants. The grid's origin must match where the hour-0
// slot actually lands on screen, so mouse coordinates map onto it directly:
// row 0 is the header, the planner starts right below.
const (
	plannerLabelW   = 6 // "09 │  "
	plannerTopV     = 1
	plannerTopH     = 2 // header + hour scale line
	plannerHourSlot = 3 // columns per hour when horizontal
)

func (m *appModel) rebuildGrid() {
	o := m.app.Orientation()
	if o == timeline.Vertical {
		cross := m.width - plannerLabelW
		if cross < 10 {
			cross = 10
		}
		g := timeline.NewGrid(o, 1, cross)
		g.OriginX, g.OriginY = plannerLabelW, plannerTopV
		m.grid = g
	} else {
		cross := m.height - plannerTopH - 2
		if cross < 2 {
			cross = 2
		}
		g := timeline.NewGrid(o, plannerHourSlot, cross)
		g.OriginX, g.OriginY = 0, plannerTopH
		m.grid = g
	}
	// The grid swap cancels any active gesture; undo its live resize
	// preview so the item reverts to the end hour it had at press.
	if act := m.drag.SetGrid(m.grid); act.Kind == timeline.ActionResize {
		m.app.Day().Resize(act.ItemID, act.Hour)
	}
}

// laneLayout is the per-render projection: display order, lane assignment
// and the number of parallel lanes.
type laneLayout struct {
	ordered []model.AgendaItem
	lanes   map[string]int
	count   int
}

func (m appModel) laneLayout() laneLayout {
	ordered := m.app.Day().Ordered()
	lanes := timeline.AssignLanes(ordered)
	count := 1
	for _, l := range lanes {
		if l+1 > count {
			count = l + 1
		}
	}
	return laneLayout{ordered: ordered, lanes: lanes, count: count}
}

// screenRect narrows an item's grid rectangle to its lane so overlapping
// items sit side by side.
func (m appModel) screenRect(it model.AgendaItem, lay laneLayout) timeline.Rect {
	r := m.grid.ItemRect(it)
	size := m.grid.Cross / lay.count
	if size < 1 {
		size = 1
	}
	lane := lay.lanes[it.ID]
	if m.grid.Orientation == timeline.Vertical {
		r.X += lane * size
		r.W = size
	} else {
		r.Y += lane * size
		r.H = size
	}
	return r
}

func trailingEdgeOf(r timeline.Rect, o timeline.Orientation) timeline.Rect {
	if o == timeline.Vertical {
		return timeline.Rect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1}
	}
	return timeline.Rect{X: r.X + r.W - 1, Y: r.Y, W: 1, H: r.H}
}

func (m appModel) updatePlannerMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch {
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		lay := m.laneLayout()
		for i, it := range lay.ordered {
			r := m.screenRect(it, lay)
			if trailingEdgeOf(r, m.grid.Orientation).Contains(msg.X, msg.Y) {
				m.selIdx = i
				m.drag.BeginResize(it.ID, it.EndHour, msg.X, msg.Y)
				return m, nil
			}
			if r.Contains(msg.X, msg.Y) {
				m.selIdx = i
				m.drag.BeginMove(it.ID)
				return m, nil
			}
		}

	case msg.Action == tea.MouseActionMotion:
		// Live resize preview: in-memory only, the release persists.
		if act := m.drag.Motion(msg.X, msg.Y); act.Kind == timeline.ActionResize {
			m.app.Day().Resize(act.ItemID, act.Hour)
		}

	case msg.Action == tea.MouseActionRelease:
		act := m.drag.Release(msg.X, msg.Y)
		if act.Kind != timeline.ActionNone {
			if err := m.app.ApplyGesture(ctx, act); err != nil {
				m.notice = err.Error()
			}
			m.pullNotice()
		}
	}
	return m, nil
}

func (m appModel) updatePlannerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if nm, cmd, ok := m.handleGlobalKey(msg); ok {
		return nm, cmd
	}
	ctx := context.Background()
	ordered := m.app.Day().Ordered()
	if m.selIdx >= len(ordered) {
		m.selIdx = len(ordered) - 1
	}
	if m.selIdx < 0 {
		m.selIdx = 0
	}
	var sel model.AgendaItem
	hasSel := len(ordered) > 0
	if hasSel {
		sel = ordered[m.selIdx]
	}

	switch msg.String() {
	case "j", "down":
		if m.selIdx < len(ordered)-1 {
			m.selIdx++
		}
	case "k", "up":
		if m.selIdx > 0 {
			m.selIdx--
		}
	case "J":
		if hasSel {
			m.moveSelected(ctx, sel, sel.StartHour+1)
		}
	case "K":
		if hasSel {
			m.moveSelected(ctx, sel, sel.StartHour-1)
		}
	case "+", "=":
		if hasSel {
			m.resizeSelected(ctx, sel, sel.EndHour+1)
		}
	case "-":
		if hasSel {
			m.resizeSelected(ctx, sel, sel.EndHour-1)
		}
	case "o":
		m.app.ToggleOrientation()
		m.rebuildGrid()
		m.saveTUIPrefs()
	case "h", "left":
		m.shiftDay(ctx, -1)
	case "l", "right":
		m.shiftDay(ctx, 1)
	case "t":
		if err := m.app.SetSelectedDate(ctx, datekey.Today()); err != nil {
			m.notice = err.Error()
		}
		m.pullNotice()
		m.selIdx = 0
	case "n":
		m.form = newItemForm(nil)
		m.modal = modalItemForm
	case "e", "enter":
		if hasSel {
			m.form = newItemForm(&sel)
			m.modal = modalItemForm
		}
	case "d", "x":
		if hasSel && m.app.RequestRemoveAgendaItem(sel.ID) {
			m.modal = modalConfirmRemove
			m.confirmFocus = confirmFocusCancel
		}
	}
	return m, nil
}

func (m *appModel) moveSelected(ctx context.Context, it model.AgendaItem, newStart int) {
	moved, err := m.app.MoveAgendaItem(ctx, it.ID, newStart)
	if err != nil {
		m.notice = err.Error()
	} else if !moved {
		m.notice = "item cannot leave the day"
	}
	m.pullNotice()
}

func (m *appModel) resizeSelected(ctx context.Context, it model.AgendaItem, candidate int) {
	if err := m.app.ResizeAgendaItem(ctx, it.ID, candidate); err != nil {
		m.notice = err.Error()
	}
	m.pullNotice()
}

func (m *appModel) shiftDay(ctx context.Context, n int) {
	if err := m.app.ShiftSelectedDate(ctx, n); err != nil {
		m.notice = err.Error()
	}
	m.pullNotice()
	m.selIdx = 0
}

func (m appModel) plannerView() string {
	if m.grid.Orientation == timeline.Vertical {
		return m.plannerViewVertical()
	}
	return m.plannerViewHorizontal()
}

func (m appModel) plannerViewVertical() string {
	lay := m.laneLayout()
	laneW := m.grid.Cross / lay.count
	if laneW < 1 {
		laneW = 1
	}

	// Occupancy per hour and lane; -1 means empty. An item occupies every
	// hour it spans but renders its title only on the start row.
	occ := make([][]int, 24)
	for h := range occ {
		occ[h] = make([]int, lay.count)
		for l := range occ[h] {
			occ[h][l] = -1
		}
	}
	for i, it := range lay.ordered {
		lane := lay.lanes[it.ID]
		for h := it.StartHour; h < it.EndHour && h < 24; h++ {
			occ[h][lane] = i
		}
	}

	blank := lipgloss.NewStyle().Foreground(colorGridDots).Render("·" + strings.Repeat(" ", laneW-1))
	rows := make([]string, 0, 24)
	for h := 0; h < 24; h++ {
		var sb strings.Builder
		sb.WriteString(styleMuted().Render(fmt.Sprintf("%02d │  ", h)))
		for lane := 0; lane < lay.count; lane++ {
			i := occ[h][lane]
			if i < 0 {
				sb.WriteString(blank)
				continue
			}
			it := lay.ordered[i]
			var text string
			switch {
			case h == it.StartHour:
				text = ansi.Truncate(" "+it.Title, laneW, "…")
			case h == it.EndHour-1:
				if laneW >= 2 {
					text = strings.Repeat(" ", laneW-2) + "⇕ "
				}
			}
			if pad := laneW - ansi.StringWidth(text); pad > 0 {
				text += strings.Repeat(" ", pad)
			}
			sb.WriteString(itemBlockStyle(it.Color, i == m.selIdx).Render(text))
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}

func (m appModel) plannerViewHorizontal() string {
	lay := m.laneLayout()
	laneH := m.grid.Cross / lay.count
	if laneH < 1 {
		laneH = 1
	}

	var scale strings.Builder
	for h := 0; h < 24; h++ {
		scale.WriteString(fmt.Sprintf("%02d ", h))
	}
	out := []string{styleMuted().Render(scale.String())}

	blankStyle := lipgloss.NewStyle().Foreground(colorGridDots)
	for lane := 0; lane < lay.count; lane++ {
		for row := 0; row < laneH; row++ {
			var sb strings.Builder
			cursor := 0
			for i, it := range lay.ordered {
				if lay.lanes[it.ID] != lane {
					continue
				}
				if it.StartHour > cursor {
					sb.WriteString(blankStyle.Render(strings.Repeat("·  ", it.StartHour-cursor)))
				}
				span := it.Duration() * plannerHourSlot
				var text string
				if row == 0 {
					text = ansi.Truncate(" "+it.Title, span-1, "…")
				}
				if pad := span - 1 - ansi.StringWidth(text); pad > 0 {
					text += strings.Repeat(" ", pad)
				}
				text += "⇕"
				sb.WriteString(itemBlockStyle(it.Color, i == m.selIdx).Render(text))
				cursor = it.EndHour
			}
			if cursor < 24 {
				sb.WriteString(blankStyle.Render(strings.Repeat("·  ", 24-cursor)))
			}
			out = append(out, sb.String())
		}
	}
	return strings.Join(out, "\n")
}
