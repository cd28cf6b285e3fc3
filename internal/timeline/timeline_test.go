package timeline

import (
	"errors"
	"testing"

	"checkin-cli/internal/model"
)

func newTestDay(t *testing.T, items ...model.AgendaItem) *Day {
	t.Helper()
	return NewDay("05/03/2024", items)
}

func item(id string, start, end int) model.AgendaItem {
	return model.AgendaItem{ID: id, Title: "item " + id, StartHour: start, EndHour: end, Color: "#60a5fa", Date: "05/03/2024"}
}

func checkInvariants(t *testing.T, d *Day) {
	t.Helper()
	for _, it := range d.Items() {
		if it.StartHour < 0 || it.EndHour > 24 || it.StartHour >= it.EndHour {
			t.Fatalf("invariant violated for %s: start=%d end=%d", it.ID, it.StartHour, it.EndHour)
		}
	}
}

func TestCreateAssignsColorAndAppends(t *testing.T) {
	d := newTestDay(t)
	created, err := d.Create(model.AgendaItem{ID: "a", Title: "  standup  ", StartHour: 9, EndHour: 10})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != "standup" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}
	if !IsPaletteColor(created.Color) {
		t.Fatalf("expected palette color, got %q", created.Color)
	}
	if created.Date != "05/03/2024" {
		t.Fatalf("expected day's date key, got %q", created.Date)
	}
	if d.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", d.Len())
	}
	checkInvariants(t, d)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	d := newTestDay(t)
	cases := []model.AgendaItem{
		{ID: "a", Title: "   ", StartHour: 9, EndHour: 10},
		{ID: "b", Title: "x", StartHour: 10, EndHour: 10},
		{ID: "c", Title: "x", StartHour: 12, EndHour: 11},
		{ID: "d", Title: "x", StartHour: -1, EndHour: 2},
		{ID: "e", Title: "x", StartHour: 24, EndHour: 25},
		{ID: "f", Title: "x", StartHour: 22, EndHour: 25},
	}
	for _, in := range cases {
		if _, err := d.Create(in); err == nil {
			t.Errorf("expected validation error for %+v", in)
		} else {
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %T (%v)", err, err)
			}
		}
	}
	if d.Len() != 0 {
		t.Fatalf("rejected creates must not append; have %d items", d.Len())
	}
}

func TestMovePreservesDuration(t *testing.T) {
	d := newTestDay(t, item("a", 9, 11))
	moved, ok := d.Move("a", 14)
	if !ok {
		t.Fatal("expected move to succeed")
	}
	if moved.StartHour != 14 || moved.EndHour != 16 {
		t.Fatalf("expected 14-16, got %d-%d", moved.StartHour, moved.EndHour)
	}
	checkInvariants(t, d)
}

func TestMovePastMidnightLeavesItemUnmoved(t *testing.T) {
	d := newTestDay(t, item("a", 9, 12))
	if _, ok := d.Move("a", 22); ok {
		t.Fatal("move ending past 24 must be rejected")
	}
	got, _ := d.Find("a")
	if got.StartHour != 9 || got.EndHour != 12 {
		t.Fatalf("item must be unmoved, got %d-%d", got.StartHour, got.EndHour)
	}
	// An exact fit against the end of day is fine.
	if _, ok := d.Move("a", 21); !ok {
		t.Fatal("move ending exactly at 24 must succeed")
	}
	checkInvariants(t, d)
}

func TestResizeClampsCandidate(t *testing.T) {
	d := newTestDay(t, item("a", 10, 12))

	got, ok := d.Resize("a", 9)
	if !ok || got.EndHour != 11 {
		t.Fatalf("resize(9) must clamp to start+1=11, got %d (ok=%v)", got.EndHour, ok)
	}
	got, ok = d.Resize("a", 30)
	if !ok || got.EndHour != 24 {
		t.Fatalf("resize(30) must clamp to 24, got %d (ok=%v)", got.EndHour, ok)
	}
	got, ok = d.Resize("a", 15)
	if !ok || got.EndHour != 15 {
		t.Fatalf("resize(15) must apply exactly, got %d (ok=%v)", got.EndHour, ok)
	}
	checkInvariants(t, d)
}

func TestEditPreservesIDAndColor(t *testing.T) {
	d := newTestDay(t)
	created, err := d.Create(model.AgendaItem{ID: "a", Title: "plan", StartHour: 8, EndHour: 9})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := d.Edit(model.AgendaItem{ID: "a", Title: "plan v2", Description: "rescheduled", StartHour: 13, EndHour: 15})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if updated.ID != "a" || updated.Color != created.Color {
		t.Fatalf("edit must preserve id and color: %+v", updated)
	}
	if updated.Title != "plan v2" || updated.StartHour != 13 || updated.EndHour != 15 {
		t.Fatalf("edit did not apply fields: %+v", updated)
	}

	if _, err := d.Edit(model.AgendaItem{ID: "a", Title: "", StartHour: 13, EndHour: 15}); err == nil {
		t.Fatal("edit with empty title must fail validation")
	}
	if _, err := d.Edit(model.AgendaItem{ID: "missing", Title: "x", StartHour: 1, EndHour: 2}); err == nil {
		t.Fatal("edit of unknown id must fail")
	}
	checkInvariants(t, d)
}

func TestRemoveIsTwoPhase(t *testing.T) {
	d := newTestDay(t, item("a", 9, 10), item("b", 10, 11))

	if !d.RequestRemove("a") {
		t.Fatal("request remove of existing item must succeed")
	}
	if d.Len() != 2 {
		t.Fatal("request alone must not remove anything")
	}

	d.CancelRemove()
	if _, pending := d.PendingRemove(); pending {
		t.Fatal("cancel must clear the pending removal")
	}
	if d.Len() != 2 {
		t.Fatal("cancel must leave the item set unchanged")
	}

	d.RequestRemove("a")
	removed, ok := d.ConfirmRemove()
	if !ok || removed.ID != "a" {
		t.Fatalf("confirm must remove the pending item, got %+v ok=%v", removed, ok)
	}
	if d.Len() != 1 {
		t.Fatalf("expected 1 item after confirm, got %d", d.Len())
	}
	if _, ok := d.ConfirmRemove(); ok {
		t.Fatal("confirm without a pending request must be a no-op")
	}
}

func TestOrderedSortsByStartHour(t *testing.T) {
	d := newTestDay(t, item("late", 18, 19), item("early", 7, 8), item("mid", 12, 14))
	ordered := d.Ordered()
	if ordered[0].ID != "early" || ordered[1].ID != "mid" || ordered[2].ID != "late" {
		t.Fatalf("unexpected display order: %v", ordered)
	}
	// Insertion order is untouched.
	items := d.Items()
	if items[0].ID != "late" {
		t.Fatalf("insertion order must be preserved, got %v", items)
	}
}
