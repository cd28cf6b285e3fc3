package app

import (
	"context"

	"github.com/google/uuid"

	"checkin-cli/internal/model"
	"checkin-cli/internal/timeline"
)

// AgendaRepository is the capability both agenda stores implement. The local
// cache always satisfies it; the remote store does when a session exists.
type AgendaRepository interface {
	LoadDay(ctx context.Context, date string) (model.AgendaDay, error)
	SaveDay(ctx context.Context, day model.AgendaDay) error
}

// Day returns the loaded agenda day for the selected date.
func (a *App) Day() *timeline.Day { return a.day }

func (a *App) reloadDay(ctx context.Context) error {
	if a.Authenticated() && a.Remote != nil {
		day, err := a.Remote.LoadDay(ctx, a.session, a.selectedDate)
		if err == nil {
			a.day = timeline.NewDay(day.Date, day.Items)
			return nil
		}
		// Remote is authoritative when present, but a failed read falls back
		// to the local mirror so the planner stays usable.
		a.setNotice("Error loading agenda: %v", err)
	}
	day, err := a.agendas.LoadDay(ctx, a.selectedDate)
	if err != nil {
		return err
	}
	a.day = timeline.NewDay(day.Date, day.Items)
	return nil
}

// persistDay writes the full current day's collection to the local cache
// unconditionally and, when a session exists, upserts the same collection to
// the remote store keyed by (date, user). The remote write is best-effort:
// a failure is surfaced as a notice and never rolls back local state.
func (a *App) persistDay(ctx context.Context) error {
	day := model.AgendaDay{Date: a.day.Date, Items: a.day.Items()}
	if err := a.agendas.SaveDay(ctx, day); err != nil {
		return err
	}
	if a.Authenticated() && a.Remote != nil {
		if err := a.Remote.UpsertDay(ctx, a.session, day); err != nil {
			a.setNotice("Error saving agenda: %v", err)
		}
	}
	return nil
}

// CreateAgendaItem validates and appends a new item to the selected day,
// then persists the day.
func (a *App) CreateAgendaItem(ctx context.Context, item model.AgendaItem) (model.AgendaItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	created, err := a.day.Create(item)
	if err != nil {
		return model.AgendaItem{}, err
	}
	return created, a.persistDay(ctx)
}

// MoveAgendaItem moves an item to a new start hour, preserving duration.
// Returns false (and persists nothing) when the move would cross midnight.
func (a *App) MoveAgendaItem(ctx context.Context, id string, newStart int) (bool, error) {
	if _, ok := a.day.Move(id, newStart); !ok {
		return false, nil
	}
	return true, a.persistDay(ctx)
}

// ResizeAgendaItem sets an item's end hour (clamped) and persists.
func (a *App) ResizeAgendaItem(ctx context.Context, id string, candidate int) error {
	if _, ok := a.day.Resize(id, candidate); !ok {
		return nil
	}
	return a.persistDay(ctx)
}

// EditAgendaItem replaces an item's mutable fields and persists.
func (a *App) EditAgendaItem(ctx context.Context, item model.AgendaItem) (model.AgendaItem, error) {
	updated, err := a.day.Edit(item)
	if err != nil {
		return model.AgendaItem{}, err
	}
	return updated, a.persistDay(ctx)
}

// RequestRemoveAgendaItem starts two-phase removal. Nothing persists until
// ConfirmRemoveAgendaItem.
func (a *App) RequestRemoveAgendaItem(id string) bool {
	return a.day.RequestRemove(id)
}

// ConfirmRemoveAgendaItem completes a pending removal and persists.
func (a *App) ConfirmRemoveAgendaItem(ctx context.Context) (model.AgendaItem, error) {
	removed, ok := a.day.ConfirmRemove()
	if !ok {
		return model.AgendaItem{}, nil
	}
	return removed, a.persistDay(ctx)
}

// CancelRemoveAgendaItem abandons a pending removal; the item set and the
// stores are untouched.
func (a *App) CancelRemoveAgendaItem() {
	a.day.CancelRemove()
}

// ApplyGesture routes a drag-gesture action to the matching mutation.
func (a *App) ApplyGesture(ctx context.Context, act timeline.Action) error {
	switch act.Kind {
	case timeline.ActionMove:
		_, err := a.MoveAgendaItem(ctx, act.ItemID, act.Hour)
		return err
	case timeline.ActionResize:
		return a.ResizeAgendaItem(ctx, act.ItemID, act.Hour)
	default:
		return nil
	}
}
