package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"checkin-cli/internal/model"
)

// LocalNoteRepository keeps locally created notes in the cache's `notes`
// key as one JSON array. These are the anonymous/pre-authentication notes
// pending sync; once a note is confirmed remote its Synced flag is set.
type LocalNoteRepository struct {
	Cache Cache
}

func (r LocalNoteRepository) load(ctx context.Context) ([]model.Note, error) {
	raw, ok, err := r.Cache.Get(ctx, KeyNotes)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []model.Note{}, nil
	}
	var notes []model.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("decode cached notes: %w", err)
	}
	return notes, nil
}

func (r LocalNoteRepository) save(ctx context.Context, notes []model.Note) error {
	if notes == nil {
		notes = []model.Note{}
	}
	raw, err := json.Marshal(notes)
	if err != nil {
		return err
	}
	return r.Cache.Set(ctx, KeyNotes, string(raw))
}

// List returns local notes newest-first.
func (r LocalNoteRepository) List(ctx context.Context) ([]model.Note, error) {
	notes, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].CreatedAt.After(notes[j].CreatedAt) })
	return notes, nil
}

// Add appends a note to the local list.
func (r LocalNoteRepository) Add(ctx context.Context, note model.Note) error {
	notes, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(notes, note))
}

// MarkSynced flags a note as confirmed present remotely.
func (r LocalNoteRepository) MarkSynced(ctx context.Context, id string) error {
	notes, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range notes {
		if notes[i].ID == id {
			notes[i].Synced = true
			return r.save(ctx, notes)
		}
	}
	return nil
}

// Delete removes a note by id. Removing an unknown id is a no-op.
func (r LocalNoteRepository) Delete(ctx context.Context, id string) error {
	notes, err := r.load(ctx)
	if err != nil {
		return err
	}
	out := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return r.save(ctx, out)
}
