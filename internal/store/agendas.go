package store

import (
	"context"
	"encoding/json"
	"fmt"

	"checkin-cli/internal/model"
)

// LocalAgendaRepository persists agenda days in the cache's `agendas` key:
// one JSON blob mapping date key to that day's item array. There is at most
// one entry per date key, and a day is always written whole.
type LocalAgendaRepository struct {
	Cache Cache
}

func (r LocalAgendaRepository) loadAll(ctx context.Context) (map[string][]model.AgendaItem, error) {
	raw, ok, err := r.Cache.Get(ctx, KeyAgendas)
	if err != nil {
		return nil, err
	}
	all := map[string][]model.AgendaItem{}
	if !ok || raw == "" {
		return all, nil
	}
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, fmt.Errorf("decode cached agendas: %w", err)
	}
	return all, nil
}

func (r LocalAgendaRepository) saveAll(ctx context.Context, all map[string][]model.AgendaItem) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return r.Cache.Set(ctx, KeyAgendas, string(raw))
}

// LoadDay returns the stored day for the date key. An unknown date yields an
// empty day, not an error.
func (r LocalAgendaRepository) LoadDay(ctx context.Context, date string) (model.AgendaDay, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return model.AgendaDay{}, err
	}
	items := all[date]
	if items == nil {
		items = []model.AgendaItem{}
	}
	return model.AgendaDay{Date: date, Items: items}, nil
}

// SaveDay replaces the stored collection for the day's date key. Other days
// are untouched.
func (r LocalAgendaRepository) SaveDay(ctx context.Context, day model.AgendaDay) error {
	all, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	items := day.Items
	if items == nil {
		items = []model.AgendaItem{}
	}
	all[day.Date] = items
	return r.saveAll(ctx, all)
}

// Dates returns every date key with a stored day.
func (r LocalAgendaRepository) Dates(ctx context.Context) ([]string, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for k := range all {
		out = append(out, k)
	}
	return out, nil
}
