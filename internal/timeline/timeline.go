package timeline

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"checkin-cli/internal/model"
)

// Day holds one calendar day's agenda items and implements every mutation
// the planner offers: create, move, resize, edit, and two-phase removal.
//
// Day is purely in-memory; callers persist the full item collection after
// each successful mutation (the day is the unit of atomicity).
type Day struct {
	Date string

	items []model.AgendaItem

	// pendingRemoveID is the id awaiting removal confirmation, "" when none.
	pendingRemoveID string
}

// NewDay wraps an existing item collection. Items keep their stored
// (insertion) order.
func NewDay(date string, items []model.AgendaItem) *Day {
	return &Day{Date: date, items: append([]model.AgendaItem(nil), items...)}
}

// Items returns the collection in insertion order.
func (d *Day) Items() []model.AgendaItem {
	return append([]model.AgendaItem(nil), d.items...)
}

// Ordered returns the collection in display order: ascending start hour,
// insertion order breaking ties.
func (d *Day) Ordered() []model.AgendaItem {
	out := d.Items()
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartHour < out[j].StartHour })
	return out
}

func (d *Day) Len() int { return len(d.items) }

// Find returns the item with the given id.
func (d *Day) Find(id string) (model.AgendaItem, bool) {
	for _, it := range d.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.AgendaItem{}, false
}

func (d *Day) index(id string) int {
	for i := range d.items {
		if d.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Create validates the new item, assigns it a random display color, and
// appends it to the day.
func (d *Day) Create(item model.AgendaItem) (model.AgendaItem, error) {
	if err := validate(item); err != nil {
		return model.AgendaItem{}, err
	}
	item.Title = strings.TrimSpace(item.Title)
	item.Date = d.Date
	item.Color = randomColor()
	d.items = append(d.items, item)
	return item, nil
}

// Move shifts the item so it starts at newStart, preserving its duration.
// A target that would push the end past hour 24 (or before hour 0) leaves
// the item unmoved and reports false.
func (d *Day) Move(id string, newStart int) (model.AgendaItem, bool) {
	i := d.index(id)
	if i < 0 {
		return model.AgendaItem{}, false
	}
	dur := d.items[i].Duration()
	if newStart < 0 || newStart+dur > hoursPerDay {
		return model.AgendaItem{}, false
	}
	d.items[i].StartHour = newStart
	d.items[i].EndHour = newStart + dur
	return d.items[i], true
}

// Resize sets the item's end hour to candidate clamped into
// [startHour+1, 24]. Out-of-range candidates are clamped, never rejected.
func (d *Day) Resize(id string, candidate int) (model.AgendaItem, bool) {
	i := d.index(id)
	if i < 0 {
		return model.AgendaItem{}, false
	}
	lo := d.items[i].StartHour + 1
	if candidate < lo {
		candidate = lo
	}
	if candidate > hoursPerDay {
		candidate = hoursPerDay
	}
	d.items[i].EndHour = candidate
	return d.items[i], true
}

// Edit replaces the item's mutable fields (title, description, start/end
// hour) in place, preserving id and color. The updated fields are validated
// like a fresh create.
func (d *Day) Edit(updated model.AgendaItem) (model.AgendaItem, error) {
	i := d.index(updated.ID)
	if i < 0 {
		return model.AgendaItem{}, notFoundError{id: updated.ID}
	}
	if err := validate(updated); err != nil {
		return model.AgendaItem{}, err
	}
	d.items[i].Title = strings.TrimSpace(updated.Title)
	d.items[i].Description = updated.Description
	d.items[i].StartHour = updated.StartHour
	d.items[i].EndHour = updated.EndHour
	return d.items[i], nil
}

// RequestRemove starts the two-phase removal of an item. Nothing is removed
// until ConfirmRemove.
func (d *Day) RequestRemove(id string) bool {
	if d.index(id) < 0 {
		return false
	}
	d.pendingRemoveID = id
	return true
}

// PendingRemove returns the item awaiting removal confirmation, if any.
func (d *Day) PendingRemove() (model.AgendaItem, bool) {
	if d.pendingRemoveID == "" {
		return model.AgendaItem{}, false
	}
	return d.Find(d.pendingRemoveID)
}

// ConfirmRemove deletes the pending item and returns it.
func (d *Day) ConfirmRemove() (model.AgendaItem, bool) {
	id := d.pendingRemoveID
	d.pendingRemoveID = ""
	i := d.index(id)
	if i < 0 {
		return model.AgendaItem{}, false
	}
	removed := d.items[i]
	d.items = append(d.items[:i], d.items[i+1:]...)
	return removed, true
}

// CancelRemove abandons a pending removal, leaving the item set unchanged.
func (d *Day) CancelRemove() {
	d.pendingRemoveID = ""
}

func validate(item model.AgendaItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return ValidationError{Field: "title", Msg: "title must not be empty"}
	}
	if item.StartHour < 0 || item.StartHour > hoursPerDay-1 {
		return ValidationError{Field: "startHour", Msg: fmt.Sprintf("start hour %d out of range 0-23", item.StartHour)}
	}
	if item.EndHour <= item.StartHour || item.EndHour > hoursPerDay {
		return ValidationError{Field: "endHour", Msg: fmt.Sprintf("end hour %d must be within %d-24", item.EndHour, item.StartHour+1)}
	}
	return nil
}

// ValidationError is surfaced inline next to the offending form field and is
// raised before any store interaction.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string { return e.Field + ": " + e.Msg }

type notFoundError struct {
	id string
}

func (e notFoundError) Error() string { return "agenda item not found: " + e.id }

// Display colors for new items. Picked at random on create; stable for the
// item's lifetime.
var colorPalette = []string{
	"#f87171", // red
	"#fb923c", // orange
	"#facc15", // yellow
	"#4ade80", // green
	"#2dd4bf", // teal
	"#60a5fa", // blue
	"#a78bfa", // violet
	"#f472b6", // pink
}

func randomColor() string {
	return colorPalette[rand.Intn(len(colorPalette))]
}

// IsPaletteColor reports whether c is one of the assignable display colors.
func IsPaletteColor(c string) bool {
	for _, p := range colorPalette {
		if p == c {
			return true
		}
	}
	return false
}
