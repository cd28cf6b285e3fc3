package timeline

import "checkin-cli/internal/model"

const hoursPerDay = 24

// Orientation selects how the 24 hour slots are laid out: vertical stacks
// hour rows top-to-bottom, horizontal lines hour columns left-to-right.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Toggled returns the other orientation.
func (o Orientation) Toggled() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

// Rect is a screen rectangle in grid units. X grows rightward, Y downward.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Grid projects (startHour, endHour) spans onto screen rectangles for one
// orientation. Every hour slot has a fixed main-axis span; the cross-axis
// extent is shared by all slots. Toggling orientation swaps the geometry
// only — the projected items are untouched.
type Grid struct {
	Orientation Orientation

	// Slot is the main-axis size of one hour slot: slot height when
	// vertical, slot width when horizontal.
	Slot int

	// Cross is the cross-axis extent available to items.
	Cross int

	// OriginX, OriginY offset the hour-0 slot (room for hour labels).
	OriginX, OriginY int
}

// NewGrid returns a grid with the given slot and cross-axis sizes.
func NewGrid(o Orientation, slot, cross int) Grid {
	if slot < 1 {
		slot = 1
	}
	if cross < 1 {
		cross = 1
	}
	return Grid{Orientation: o, Slot: slot, Cross: cross}
}

// SlotRect returns the rectangle of one hour slot.
func (g Grid) SlotRect(hour int) Rect {
	if g.Orientation == Vertical {
		return Rect{X: g.OriginX, Y: g.OriginY + hour*g.Slot, W: g.Cross, H: g.Slot}
	}
	return Rect{X: g.OriginX + hour*g.Slot, Y: g.OriginY, W: g.Slot, H: g.Cross}
}

// ItemRect returns the single rectangle for an item: anchored at its
// start-hour slot and sized proportionally to its duration. An item is
// rendered exactly once from this rectangle; hour slots it overlaps never
// draw it again.
func (g Grid) ItemRect(it model.AgendaItem) Rect {
	span := it.Duration() * g.Slot
	if g.Orientation == Vertical {
		return Rect{X: g.OriginX, Y: g.OriginY + it.StartHour*g.Slot, W: g.Cross, H: span}
	}
	return Rect{X: g.OriginX + it.StartHour*g.Slot, Y: g.OriginY, W: span, H: g.Cross}
}

// HourAt returns the hour slot containing the point, or false when the point
// is outside the 24-slot band.
func (g Grid) HourAt(x, y int) (int, bool) {
	var along int
	if g.Orientation == Vertical {
		if x < g.OriginX || x >= g.OriginX+g.Cross {
			return 0, false
		}
		along = y - g.OriginY
	} else {
		if y < g.OriginY || y >= g.OriginY+g.Cross {
			return 0, false
		}
		along = x - g.OriginX
	}
	if along < 0 {
		return 0, false
	}
	hour := along / g.Slot
	if hour >= hoursPerDay {
		return 0, false
	}
	return hour, true
}

// TrailingEdge returns the resize-handle rectangle on the item's trailing
// edge: the last row of the item when vertical, the last column when
// horizontal.
func (g Grid) TrailingEdge(it model.AgendaItem) Rect {
	r := g.ItemRect(it)
	if g.Orientation == Vertical {
		return Rect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1}
	}
	return Rect{X: r.X + r.W - 1, Y: r.Y, W: 1, H: r.H}
}

// Extent returns the full band size along the main axis (24 slots).
func (g Grid) Extent() int { return hoursPerDay * g.Slot }

// AssignLanes spreads overlapping items across parallel lanes so each item
// can render once without covering its neighbours. Items are considered in
// display order; each takes the first lane whose previous occupant has
// ended. The result maps item id to lane index (0-based).
func AssignLanes(items []model.AgendaItem) map[string]int {
	day := NewDay("", items)
	ordered := day.Ordered()

	lanes := map[string]int{}
	laneEnds := []int{}
	for _, it := range ordered {
		placed := false
		for lane, end := range laneEnds {
			if it.StartHour >= end {
				lanes[it.ID] = lane
				laneEnds[lane] = it.EndHour
				placed = true
				break
			}
		}
		if !placed {
			lanes[it.ID] = len(laneEnds)
			laneEnds = append(laneEnds, it.EndHour)
		}
	}
	return lanes
}
