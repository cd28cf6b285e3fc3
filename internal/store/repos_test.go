package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"checkin-cli/internal/gpa"
	"checkin-cli/internal/model"
)

func TestAgendaDayRoundTripsFieldForField(t *testing.T) {
	r := LocalAgendaRepository{Cache: Cache{Dir: t.TempDir()}}
	ctx := context.Background()

	day := model.AgendaDay{
		Date: "05/03/2024",
		Items: []model.AgendaItem{
			{ID: "a", Title: "standup", Description: "daily", StartHour: 9, EndHour: 10, Color: "#60a5fa", Date: "05/03/2024"},
			{ID: "b", Title: "focus", StartHour: 13, EndHour: 16, Color: "#4ade80", Date: "05/03/2024"},
		},
	}
	if err := r.SaveDay(ctx, day); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := r.LoadDay(ctx, "05/03/2024")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded, day) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, day)
	}
}

func TestSwitchingDatesKeepsOtherDays(t *testing.T) {
	r := LocalAgendaRepository{Cache: Cache{Dir: t.TempDir()}}
	ctx := context.Background()

	first := model.AgendaDay{
		Date:  "01/01/2024",
		Items: []model.AgendaItem{{ID: "a", Title: "x", StartHour: 9, EndHour: 10, Color: "#f87171", Date: "01/01/2024"}},
	}
	if err := r.SaveDay(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	// The newly selected date is an empty grid.
	second, err := r.LoadDay(ctx, "02/01/2024")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(second.Items) != 0 {
		t.Fatalf("expected empty day, got %v", second.Items)
	}

	// Saving the empty day must not lose the first one.
	if err := r.SaveDay(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := r.LoadDay(ctx, "01/01/2024")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(back, first) {
		t.Fatalf("first day lost: %+v", back)
	}
}

func TestLocalNotesNewestFirst(t *testing.T) {
	r := LocalNoteRepository{Cache: Cache{Dir: t.TempDir()}}
	ctx := context.Background()

	base := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	_ = r.Add(ctx, model.Note{ID: "old", Text: "old", CreatedAt: base})
	_ = r.Add(ctx, model.Note{ID: "new", Text: "new", CreatedAt: base.Add(time.Hour)})

	notes, err := r.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "new" || notes[1].ID != "old" {
		t.Fatalf("expected newest-first, got %v", notes)
	}

	if err := r.MarkSynced(ctx, "old"); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	notes, _ = r.List(ctx)
	if !notes[1].Synced || notes[0].Synced {
		t.Fatalf("expected only old synced, got %v", notes)
	}

	if err := r.Delete(ctx, "new"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	notes, _ = r.List(ctx)
	if len(notes) != 1 || notes[0].ID != "old" {
		t.Fatalf("expected only old left, got %v", notes)
	}
}

func TestLocalTodosFilterByExactDate(t *testing.T) {
	r := LocalTodoRepository{Cache: Cache{Dir: t.TempDir()}}
	ctx := context.Background()

	_ = r.Add(ctx, model.Todo{ID: "t1", Task: "buy milk", Date: "05/03/2024"})
	_ = r.Add(ctx, model.Todo{ID: "t2", Task: "call bank", Date: "06/03/2024"})

	todos, err := r.ListForDate(ctx, "05/03/2024")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != "t1" {
		t.Fatalf("expected only t1, got %v", todos)
	}

	got, ok, err := r.Toggle(ctx, "t1")
	if err != nil || !ok || !got.Done {
		t.Fatalf("toggle: got=%v ok=%v err=%v", got, ok, err)
	}
	got, ok, _ = r.Toggle(ctx, "t1")
	if !ok || got.Done {
		t.Fatalf("second toggle must flip back, got %v", got)
	}
	if _, ok, _ := r.Toggle(ctx, "missing"); ok {
		t.Fatal("toggling an unknown id must report false")
	}

	if err := r.Delete(ctx, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	todos, _ = r.ListForDate(ctx, "05/03/2024")
	if len(todos) != 0 {
		t.Fatalf("expected no todos, got %v", todos)
	}
}

func TestSemestersRoundTrip(t *testing.T) {
	r := LocalSemesterRepository{Cache: Cache{Dir: t.TempDir()}}
	ctx := context.Background()

	empty, err := r.List(ctx)
	if err != nil || len(empty) != 0 {
		t.Fatalf("fresh cache must list no semesters, got %v err %v", empty, err)
	}

	semesters := []gpa.Semester{
		{ID: "s1", Name: "Fall 2024", Color: "#AABBCC", Courses: []gpa.Course{
			{ID: "c1", Name: "Algorithms", Credits: 3, Grade: "A"},
		}},
		{ID: "s2", Name: "Spring 2025", Courses: []gpa.Course{}},
	}
	if err := r.Save(ctx, semesters); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := r.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(loaded, semesters) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, semesters)
	}
}
