package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkin-cli/internal/model"
)

func testSession() *model.Session {
	return &model.Session{AccessToken: "tok-123", UserID: "user-1", Email: "a@b.c"}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, "anon-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestSignInParsesSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/v1/token" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("missing password grant, query=%v", r.URL.Query())
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("missing apikey header")
		}
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "a@b.c" || creds["password"] != "pw" {
			t.Errorf("unexpected credentials: %v", creds)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"expires_in":   3600,
			"user":         map[string]string{"id": "user-1", "email": "a@b.c"},
		})
	})

	s, err := c.SignIn(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if s.AccessToken != "tok-123" || s.UserID != "user-1" || s.Email != "a@b.c" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if s.ExpiresAt.IsZero() {
		t.Fatal("expected expiry to be set")
	}
}

func TestSignInSurfacesBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	})

	_, err := c.SignIn(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T (%v)", err, err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "Invalid login credentials" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestListNotesScopesToUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/notes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("author") != "eq.user-1" || q.Get("order") != "created_at.desc" {
			t.Errorf("unexpected query: %v", q)
		}
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			t.Errorf("session token must authorize the call, got %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`[{"id":"n2","text":"later","author":"user-1"},{"id":"n1","title":"t","text":"first","author":"user-1"}]`))
	})

	notes, err := c.ListNotes(context.Background(), testSession())
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "n2" || notes[1].Title != "t" {
		t.Fatalf("unexpected notes: %+v", notes)
	}
	for _, n := range notes {
		if !n.Synced {
			t.Fatalf("remote notes are synced by definition: %+v", n)
		}
	}
}

func TestInsertNoteReturnsServerID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Prefer") != "return=representation" {
			t.Errorf("insert must request the representation")
		}
		var rows []map[string]any
		_ = json.NewDecoder(r.Body).Decode(&rows)
		if len(rows) != 1 || rows[0]["author"] != "user-1" {
			t.Errorf("unexpected body: %v", rows)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":"srv-9","text":"Buy milk","author":"user-1"}]`))
	})

	note, err := c.InsertNote(context.Background(), testSession(), model.Note{Text: "Buy milk"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if note.ID != "srv-9" || !note.Synced {
		t.Fatalf("unexpected note: %+v", note)
	}
}

func TestUpsertDayMergesOnDateAndUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/agendas" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("on_conflict") != "date,author" {
			t.Errorf("upsert must be keyed by (date,author), query=%v", r.URL.Query())
		}
		if r.Header.Get("Prefer") != "resolution=merge-duplicates" {
			t.Errorf("upsert must merge duplicates")
		}
		var rows []agendaRow
		_ = json.NewDecoder(r.Body).Decode(&rows)
		if len(rows) != 1 || rows[0].Date != "05/03/2024" || len(rows[0].Items) != 1 {
			t.Errorf("unexpected rows: %+v", rows)
		}
		w.WriteHeader(http.StatusCreated)
	})

	day := model.AgendaDay{
		Date:  "05/03/2024",
		Items: []model.AgendaItem{{ID: "a", Title: "x", StartHour: 9, EndHour: 10, Color: "#60a5fa", Date: "05/03/2024"}},
	}
	if err := c.UpsertDay(context.Background(), testSession(), day); err != nil {
		t.Fatalf("upsert: %v", err)
	}
}

func TestLoadDayMissingRowYieldsEmptyDay(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	day, err := c.LoadDay(context.Background(), testSession(), "02/01/2024")
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if day.Date != "02/01/2024" || len(day.Items) != 0 {
		t.Fatalf("unexpected day: %+v", day)
	}
}

func TestNewRejectsMissingEndpoint(t *testing.T) {
	if _, err := New("", "key"); err == nil {
		t.Fatal("expected error for empty URL")
	}
	if _, err := New("https://x.test", " "); err == nil {
		t.Fatal("expected error for empty key")
	}
}
