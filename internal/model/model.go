package model

import "time"

// AgendaItem is a titled time-boxed block on a single day's hourly timeline.
// Hours are whole hours: an item spans [StartHour, EndHour).
type AgendaItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartHour   int    `json:"startHour"`
	EndHour     int    `json:"endHour"`

	// Color is display-only. It is assigned (randomly) at creation and never
	// user-edited afterwards.
	Color string `json:"color"`

	// Date is the owning day's date key (DD/MM/YYYY).
	Date string `json:"date"`
}

// Duration returns the item's span in whole hours.
func (a AgendaItem) Duration() int { return a.EndHour - a.StartHour }

// AgendaDay maps one date key to that day's items.
//
// Items keep insertion order; display order is derived from StartHour at
// render time. The whole collection is the unit of persistence: a day is
// always read and written as one piece.
type AgendaDay struct {
	Date  string       `json:"date"`
	Items []AgendaItem `json:"items"`
}

// Note is a free-form note. Notes are never date-scoped; they belong to a
// user (remote) or are anonymous (local-only, pre-authentication).
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	// Synced is set once the note is confirmed present remotely.
	Synced bool `json:"synced,omitempty"`
}

// Todo is a single task scoped to one calendar day.
type Todo struct {
	ID   string `json:"id"`
	Task string `json:"task"`
	Date string `json:"date"` // date key (DD/MM/YYYY)
	Done bool   `json:"done"`
}

// Session is proof of authenticated identity issued by the remote store.
type Session struct {
	AccessToken string    `json:"accessToken"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
}

// Valid reports whether the session carries a usable identity. A session
// past its expiry (when the backend sent one) is unusable: treating it as
// valid would route every store call at a token the backend rejects.
func (s *Session) Valid() bool {
	if s == nil || s.AccessToken == "" || s.UserID == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt)
}
