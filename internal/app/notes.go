package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"checkin-cli/internal/model"
	"checkin-cli/internal/timeline"
)

// Notes returns the in-memory note list (set by FetchNotes).
func (a *App) Notes() []model.Note { return a.noteList }

// LoadingNotes reports whether a note fetch is in flight.
func (a *App) LoadingNotes() bool { return a.loadingNotes }

// FetchNotes refreshes the note list: from the remote store (newest first)
// when a session exists, from the local pending-sync cache otherwise. A
// remote failure keeps the prior in-memory list and raises a notice.
func (a *App) FetchNotes(ctx context.Context) error {
	if !a.Authenticated() || a.Remote == nil {
		notes, err := a.notes.List(ctx)
		if err != nil {
			return err
		}
		a.noteList = notes
		return nil
	}

	a.loadingNotes = true
	defer func() { a.loadingNotes = false }()

	notes, err := a.Remote.ListNotes(ctx, a.session)
	if err != nil {
		a.setNotice("Error fetching notes: %v", err)
		return err
	}
	a.noteList = notes
	return nil
}

// CreateNote stores a new note: remotely when a session exists (the server
// assigns the id), otherwise in the local cache's pending-sync list with a
// client-generated id. No remote call is made when logged out.
func (a *App) CreateNote(ctx context.Context, title, text string) (model.Note, error) {
	if strings.TrimSpace(text) == "" {
		return model.Note{}, timeline.ValidationError{Field: "text", Msg: "note text must not be empty"}
	}
	note := model.Note{
		Title:     strings.TrimSpace(title),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if a.Authenticated() && a.Remote != nil {
		created, err := a.Remote.InsertNote(ctx, a.session, note)
		if err != nil {
			return model.Note{}, err
		}
		a.noteList = append([]model.Note{created}, a.noteList...)
		return created, nil
	}

	note.ID = uuid.New().String()
	if err := a.notes.Add(ctx, note); err != nil {
		return model.Note{}, err
	}
	a.noteList = append([]model.Note{note}, a.noteList...)
	return note, nil
}

// DeleteNote removes a note from the active store and the in-memory list.
func (a *App) DeleteNote(ctx context.Context, id string) error {
	if a.Authenticated() && a.Remote != nil {
		if err := a.Remote.DeleteNote(ctx, a.session, id); err != nil {
			return err
		}
	} else if err := a.notes.Delete(ctx, id); err != nil {
		return err
	}

	out := a.noteList[:0]
	for _, n := range a.noteList {
		if n.ID != id {
			out = append(out, n)
		}
	}
	a.noteList = out
	return nil
}
