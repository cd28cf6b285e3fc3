package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"checkin-cli/internal/model"
)

// Client talks to the hosted auth+database backend. The backend exposes a
// REST row API over user-scoped tables ("notes", "todo", "agendas") plus a
// password-grant auth endpoint. Every call is single-shot: no retry, no
// backoff; failures carry the backend's human-readable message.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the given backend endpoint.
func New(baseURL, apiKey string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("remote store URL not configured")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("remote store API key not configured")
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, http: http.DefaultClient}, nil
}

// APIError is a failed backend call. Message is the backend's own
// human-readable description when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote store error (status %d): %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, session *model.Session, headers map[string]string, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	// The anon key authenticates the app; a session token authenticates the
	// user and activates row-level ownership scoping.
	token := c.apiKey
	if session.Valid() {
		token = session.AccessToken
	}
	req.Header.Set("Authorization", "Bearer "+token)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func errorMessage(raw []byte) string {
	var e struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &e); err == nil {
		for _, m := range []string{e.Message, e.Msg, e.ErrorDescription} {
			if strings.TrimSpace(m) != "" {
				return m
			}
		}
	}
	if s := strings.TrimSpace(string(raw)); s != "" {
		return s
	}
	return "no error detail"
}

// --- auth ---

type authResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignIn exchanges credentials for a session (password grant).
func (c *Client) SignIn(ctx context.Context, email, password string) (model.Session, error) {
	q := url.Values{"grant_type": {"password"}}
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/v1/token", q, nil, nil,
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return model.Session{}, err
	}
	s := model.Session{
		AccessToken: resp.AccessToken,
		UserID:      resp.User.ID,
		Email:       resp.User.Email,
	}
	if resp.ExpiresIn > 0 {
		s.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	if !s.Valid() {
		return model.Session{}, &APIError{Status: http.StatusOK, Message: "sign-in response carried no session"}
	}
	return s, nil
}

// SignUp registers a new account. The user signs in separately afterwards.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/signup", nil, nil, nil,
		map[string]string{"email": email, "password": password}, nil)
}

// --- notes ---

type noteRow struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func (r noteRow) toModel() model.Note {
	return model.Note{ID: r.ID, Title: r.Title, Text: r.Text, CreatedAt: r.CreatedAt, Synced: true}
}

// ListNotes returns the user's notes, newest first.
func (c *Client) ListNotes(ctx context.Context, s *model.Session) ([]model.Note, error) {
	q := url.Values{
		"author": {"eq." + s.UserID},
		"order":  {"created_at.desc"},
		"select": {"*"},
	}
	var rows []noteRow
	if err := c.do(ctx, http.MethodGet, "/rest/v1/notes", q, s, nil, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]model.Note, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// InsertNote stores a note and returns it with the server-generated id.
func (c *Client) InsertNote(ctx context.Context, s *model.Session, note model.Note) (model.Note, error) {
	in := noteRow{Title: note.Title, Text: note.Text, Author: s.UserID}
	var rows []noteRow
	err := c.do(ctx, http.MethodPost, "/rest/v1/notes", nil, s,
		map[string]string{"Prefer": "return=representation"}, []noteRow{in}, &rows)
	if err != nil {
		return model.Note{}, err
	}
	if len(rows) == 0 {
		return model.Note{}, &APIError{Status: http.StatusOK, Message: "insert returned no row"}
	}
	return rows[0].toModel(), nil
}

// DeleteNote deletes one of the user's notes by id.
func (c *Client) DeleteNote(ctx context.Context, s *model.Session, id string) error {
	q := url.Values{
		"id":     {"eq." + id},
		"author": {"eq." + s.UserID},
	}
	return c.do(ctx, http.MethodDelete, "/rest/v1/notes", q, s, nil, nil, nil)
}

// --- todos ---

type todoRow struct {
	ID        string `json:"id,omitempty"`
	TodoTask  string `json:"todo_task"`
	TodoDate  string `json:"todo_date"`
	Completed bool   `json:"completed"`
	Author    string `json:"author"`
}

func (r todoRow) toModel() model.Todo {
	return model.Todo{ID: r.ID, Task: r.TodoTask, Date: r.TodoDate, Done: r.Completed}
}

// ListTodos returns the user's todos for one date key.
func (c *Client) ListTodos(ctx context.Context, s *model.Session, date string) ([]model.Todo, error) {
	q := url.Values{
		"author":    {"eq." + s.UserID},
		"todo_date": {"eq." + date},
		"select":    {"*"},
	}
	var rows []todoRow
	if err := c.do(ctx, http.MethodGet, "/rest/v1/todo", q, s, nil, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]model.Todo, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// InsertTodo stores a todo and returns it with the server-generated id.
func (c *Client) InsertTodo(ctx context.Context, s *model.Session, todo model.Todo) (model.Todo, error) {
	in := todoRow{TodoTask: todo.Task, TodoDate: todo.Date, Completed: todo.Done, Author: s.UserID}
	var rows []todoRow
	err := c.do(ctx, http.MethodPost, "/rest/v1/todo", nil, s,
		map[string]string{"Prefer": "return=representation"}, []todoRow{in}, &rows)
	if err != nil {
		return model.Todo{}, err
	}
	if len(rows) == 0 {
		return model.Todo{}, &APIError{Status: http.StatusOK, Message: "insert returned no row"}
	}
	return rows[0].toModel(), nil
}

// SetTodoDone updates one todo's completed flag.
func (c *Client) SetTodoDone(ctx context.Context, s *model.Session, id string, done bool) error {
	q := url.Values{
		"id":     {"eq." + id},
		"author": {"eq." + s.UserID},
	}
	return c.do(ctx, http.MethodPatch, "/rest/v1/todo", q, s, nil,
		map[string]bool{"completed": done}, nil)
}

// DeleteTodo deletes one of the user's todos by id.
func (c *Client) DeleteTodo(ctx context.Context, s *model.Session, id string) error {
	q := url.Values{
		"id":     {"eq." + id},
		"author": {"eq." + s.UserID},
	}
	return c.do(ctx, http.MethodDelete, "/rest/v1/todo", q, s, nil, nil, nil)
}

// --- agendas ---

type agendaRow struct {
	Date   string             `json:"date"`
	Author string             `json:"author"`
	Items  []model.AgendaItem `json:"items"`
}

// LoadDay returns the user's stored agenda day. A date with no row yields an
// empty day.
func (c *Client) LoadDay(ctx context.Context, s *model.Session, date string) (model.AgendaDay, error) {
	q := url.Values{
		"author": {"eq." + s.UserID},
		"date":   {"eq." + date},
		"select": {"*"},
	}
	var rows []agendaRow
	if err := c.do(ctx, http.MethodGet, "/rest/v1/agendas", q, s, nil, nil, &rows); err != nil {
		return model.AgendaDay{}, err
	}
	day := model.AgendaDay{Date: date, Items: []model.AgendaItem{}}
	if len(rows) > 0 && rows[0].Items != nil {
		day.Items = rows[0].Items
	}
	return day, nil
}

// UpsertDay writes the full day's item collection, keyed by (date, user).
func (c *Client) UpsertDay(ctx context.Context, s *model.Session, day model.AgendaDay) error {
	items := day.Items
	if items == nil {
		items = []model.AgendaItem{}
	}
	row := agendaRow{Date: day.Date, Author: s.UserID, Items: items}
	q := url.Values{"on_conflict": {"date,author"}}
	return c.do(ctx, http.MethodPost, "/rest/v1/agendas", q, s,
		map[string]string{"Prefer": "resolution=merge-duplicates"}, []agendaRow{row}, nil)
}
