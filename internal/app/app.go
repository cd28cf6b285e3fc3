// Package app holds the shared application state and the services behind
// every view: one explicit state object (session, selected date, dark mode,
// notes, loading flags, the loaded agenda day) with a defined mutation API,
// instead of setters scattered per view.
//
// All mutations run on the single UI event loop; no locking is needed. The
// only suspension points are remote store calls.
package app

import (
	"context"
	"fmt"

	"checkin-cli/internal/datekey"
	"checkin-cli/internal/model"
	"checkin-cli/internal/remote"
	"checkin-cli/internal/store"
	"checkin-cli/internal/timeline"
)

// App is the shared application state.
type App struct {
	Cache  store.Cache
	Remote *remote.Client // nil in local-only mode

	agendas store.LocalAgendaRepository
	notes   store.LocalNoteRepository
	todos   store.LocalTodoRepository

	session      *model.Session
	selectedDate string
	darkMode     bool

	noteList     []model.Note
	loadingNotes bool

	day         *timeline.Day
	orientation timeline.Orientation

	// notice is the transient user-facing message from the last best-effort
	// failure (remote errors never interrupt the flow).
	notice string
}

// New builds the application state over a cache dir and an optional remote
// client. The selected date starts at today with that day's items loaded
// from the active store.
func New(ctx context.Context, cache store.Cache, client *remote.Client, session *model.Session) (*App, error) {
	a := &App{
		Cache:   cache,
		Remote:  client,
		agendas: store.LocalAgendaRepository{Cache: cache},
		notes:   store.LocalNoteRepository{Cache: cache},
		todos:   store.LocalTodoRepository{Cache: cache},
		session: session,
	}
	if err := a.SetSelectedDate(ctx, datekey.Today()); err != nil {
		return nil, err
	}
	return a, nil
}

// Session returns the current session, nil when logged out.
func (a *App) Session() *model.Session { return a.session }

// Authenticated reports whether a usable session exists.
func (a *App) Authenticated() bool { return a.session.Valid() }

// SetSession installs (or clears, with nil) the authenticated identity and
// reloads the selected day from the now-active store.
func (a *App) SetSession(ctx context.Context, s *model.Session) error {
	a.session = s
	if a.selectedDate == "" {
		return nil
	}
	return a.reloadDay(ctx)
}

// SelectedDate returns the current date key.
func (a *App) SelectedDate() string { return a.selectedDate }

// SetSelectedDate switches the calendar day and loads that day's agenda
// items. Other days stay persisted and are retrievable by reselecting them.
func (a *App) SetSelectedDate(ctx context.Context, date string) error {
	if !datekey.Valid(date) {
		return timeline.ValidationError{Field: "date", Msg: fmt.Sprintf("invalid date key %q (want DD/MM/YYYY)", date)}
	}
	a.selectedDate = date
	return a.reloadDay(ctx)
}

// ShiftSelectedDate moves the selected day by n days.
func (a *App) ShiftSelectedDate(ctx context.Context, n int) error {
	next, err := datekey.Shift(a.selectedDate, n)
	if err != nil {
		return err
	}
	return a.SetSelectedDate(ctx, next)
}

// DarkMode returns the dark-mode flag.
func (a *App) DarkMode() bool { return a.darkMode }

// SetDarkMode sets the dark-mode flag. Purely presentational.
func (a *App) SetDarkMode(on bool) { a.darkMode = on }

// ToggleDarkMode flips the dark-mode flag and returns the new value.
func (a *App) ToggleDarkMode() bool {
	a.darkMode = !a.darkMode
	return a.darkMode
}

// Orientation returns the planner layout orientation.
func (a *App) Orientation() timeline.Orientation { return a.orientation }

// SetOrientation sets the planner layout orientation.
func (a *App) SetOrientation(o timeline.Orientation) { a.orientation = o }

// ToggleOrientation switches the planner between vertical and horizontal
// layout. This re-projects geometry only; no stored item changes.
func (a *App) ToggleOrientation() timeline.Orientation {
	a.orientation = a.orientation.Toggled()
	return a.orientation
}

// Notice returns and clears the pending transient notification.
func (a *App) Notice() string {
	n := a.notice
	a.notice = ""
	return n
}

func (a *App) setNotice(format string, args ...any) {
	a.notice = fmt.Sprintf(format, args...)
}

// SignIn authenticates against the remote store and installs the session.
func (a *App) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	if a.Remote == nil {
		return nil, fmt.Errorf("no remote store configured")
	}
	s, err := a.Remote.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.SetSession(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SignOut drops the session. Local data stays; the local cache becomes the
// active store again.
func (a *App) SignOut(ctx context.Context) error {
	return a.SetSession(ctx, nil)
}
