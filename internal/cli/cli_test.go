package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"checkin-cli/internal/model"
	"checkin-cli/internal/store"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points the config dir and cache dir at temp dirs so tests never
// touch ~/.checkin (and never see a configured remote endpoint).
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("CHECKIN_CONFIG_DIR", t.TempDir())
	t.Setenv("CHECKIN_REMOTE_URL", "")
	t.Setenv("CHECKIN_REMOTE_KEY", "")
	return t.TempDir()
}

func mustJSON(t *testing.T, raw []byte, args []string) map[string]any {
	t.Helper()
	var v map[string]any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal stdout as json: %v\nstdout:\n%s\nargs: %v", err, raw, args)
	}
	return v
}

func TestAgendaAddMoveShowRoundTrip(t *testing.T) {
	dir := isolate(t)

	mustRun := func(args ...string) []byte {
		t.Helper()
		args = append([]string{"--dir", dir, "--date", "05/03/2024"}, args...)
		stdout, stderr, err := runCLI(t, args)
		if err != nil {
			t.Fatalf("command failed: checkin %v\nerr: %v\nstderr:\n%s", args, err, stderr)
		}
		return stdout
	}

	created := mustJSON(t, mustRun("agenda", "add", "--title", "Standup", "--start", "9", "--end", "11"), nil)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected created item to carry an id: %v", created)
	}
	if created["startHour"].(float64) != 9 || created["endHour"].(float64) != 11 {
		t.Fatalf("unexpected hours: %v", created)
	}

	moved := mustJSON(t, mustRun("agenda", "move", id, "14"), nil)
	if moved["startHour"].(float64) != 14 || moved["endHour"].(float64) != 16 {
		t.Fatalf("move must preserve duration: %v", moved)
	}

	resized := mustJSON(t, mustRun("agenda", "resize", id, "30"), nil)
	if resized["endHour"].(float64) != 24 {
		t.Fatalf("resize must clamp to midnight: %v", resized)
	}

	shown := mustJSON(t, mustRun("agenda", "show"), nil)
	if shown["date"] != "05/03/2024" {
		t.Fatalf("unexpected date: %v", shown)
	}
	items, _ := shown["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one item, got %v", shown["items"])
	}

	mustRun("agenda", "rm", id)
	shown = mustJSON(t, mustRun("agenda", "show"), nil)
	if items, _ := shown["items"].([]any); len(items) != 0 {
		t.Fatalf("expected empty day after rm, got %v", shown["items"])
	}
}

func TestAgendaMovePastMidnightFails(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := runCLI(t, []string{"--dir", dir, "--date", "05/03/2024", "agenda", "add", "--title", "Late", "--start", "20", "--end", "23"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	id := mustJSON(t, stdout, nil)["id"].(string)

	if _, _, err := runCLI(t, []string{"--dir", dir, "--date", "05/03/2024", "agenda", "move", id, "23"}); err == nil {
		t.Fatal("expected an error when the move would cross midnight")
	}

	// The item is unchanged.
	stdout, _, err = runCLI(t, []string{"--dir", dir, "--date", "05/03/2024", "agenda", "show"})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	items := mustJSON(t, stdout, nil)["items"].([]any)
	item := items[0].(map[string]any)
	if item["startHour"].(float64) != 20 {
		t.Fatalf("rejected move must leave the item in place: %v", item)
	}
}

func TestTodosLifecycle(t *testing.T) {
	dir := isolate(t)
	base := []string{"--dir", dir, "--date", "05/03/2024"}

	stdout, stderr, err := runCLI(t, append(base, "todos", "add", "call", "bank"))
	if err != nil {
		t.Fatalf("add: %v\n%s", err, stderr)
	}
	todo := mustJSON(t, stdout, nil)
	if todo["task"] != "call bank" || todo["date"] != "05/03/2024" {
		t.Fatalf("unexpected todo: %v", todo)
	}
	id := todo["id"].(string)

	stdout, _, err = runCLI(t, append(base, "todos", "toggle", id))
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if done, _ := mustJSON(t, stdout, nil)["done"].(bool); !done {
		t.Fatal("toggle must flip done")
	}

	// Another date sees an empty list.
	stdout, _, err = runCLI(t, []string{"--dir", dir, "--date", "06/03/2024", "todos", "list"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var other []any
	if err := json.Unmarshal(stdout, &other); err != nil || len(other) != 0 {
		t.Fatalf("todos must be scoped per day: %s", stdout)
	}

	if _, _, err := runCLI(t, append(base, "todos", "rm", id)); err != nil {
		t.Fatalf("rm: %v", err)
	}
}

func TestNotesAddLoggedOutIsPendingSync(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := runCLI(t, []string{"--dir", dir, "notes", "add", "--text", "Buy milk"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	note := mustJSON(t, stdout, nil)
	if synced, _ := note["synced"].(bool); synced {
		t.Fatalf("logged-out note must be pending sync: %v", note)
	}

	stdout, _, err = runCLI(t, []string{"--dir", dir, "notes", "list"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var notes []map[string]any
	if err := json.Unmarshal(stdout, &notes); err != nil {
		t.Fatalf("unmarshal list: %v\n%s", err, stdout)
	}
	if len(notes) != 1 || notes[0]["text"] != "Buy milk" {
		t.Fatalf("unexpected notes: %v", notes)
	}
}

func TestEDNOutput(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := runCLI(t, []string{"--dir", dir, "--format", "edn", "cache", "info"})
	if err != nil {
		t.Fatalf("cache info: %v", err)
	}
	out := string(stdout)
	if !strings.HasPrefix(strings.TrimSpace(out), "{") || !strings.Contains(out, ":dir") {
		t.Fatalf("expected an EDN map with :dir, got:\n%s", out)
	}
}

func TestAgendaAddWarnsOnStderrWhenRemoteWriteFails(t *testing.T) {
	dir := isolate(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"backend down"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("CHECKIN_REMOTE_URL", srv.URL)
	t.Setenv("CHECKIN_REMOTE_KEY", "anon")
	if err := store.SaveConfig(&store.GlobalConfig{
		Session: &model.Session{AccessToken: "tok", UserID: "u1"},
	}); err != nil {
		t.Fatalf("save config: %v", err)
	}

	args := []string{"--dir", dir, "--date", "05/03/2024", "agenda", "add", "--title", "Standup", "--start", "9", "--end", "10"}
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("a failed remote mirror must not fail the command: %v\nstderr:\n%s", err, stderr)
	}
	item := mustJSON(t, stdout, args)
	if item["title"] != "Standup" {
		t.Fatalf("unexpected item: %v", item)
	}
	if !strings.Contains(string(stderr), "Error saving agenda") {
		t.Fatalf("the remote failure must be surfaced on stderr, got:\n%s", stderr)
	}

	// The item landed in the local cache regardless.
	stdout, _, err = runCLI(t, []string{"--dir", dir, "--date", "05/03/2024", "agenda", "show"})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if items, _ := mustJSON(t, stdout, nil)["items"].([]any); len(items) != 1 {
		t.Fatalf("expected the item in the local mirror, got %s", stdout)
	}
}

func TestGpaSemesterAndCourseLifecycle(t *testing.T) {
	dir := isolate(t)

	mustRun := func(args ...string) []byte {
		t.Helper()
		args = append([]string{"--dir", dir}, args...)
		stdout, stderr, err := runCLI(t, args)
		if err != nil {
			t.Fatalf("command failed: checkin %v\nerr: %v\nstderr:\n%s", args, err, stderr)
		}
		return stdout
	}
	gpaOf := func(report map[string]any) (semester, cumulative float64) {
		t.Helper()
		semesters, _ := report["semesters"].([]any)
		if len(semesters) != 1 {
			t.Fatalf("expected one semester, got %v", report)
		}
		first := semesters[0].(map[string]any)
		return first["gpa"].(float64), report["cgpa"].(float64)
	}

	sem := mustJSON(t, mustRun("gpa", "semester", "add", "Fall 2024"), nil)
	if sem["name"] != "Fall 2024" || sem["id"] == "" {
		t.Fatalf("unexpected semester: %v", sem)
	}
	if c, _ := sem["color"].(string); len(c) != 7 || !strings.HasPrefix(c, "#") {
		t.Fatalf("semester must get a display color, got %v", sem)
	}

	mustRun("gpa", "course", "add", "Fall 2024", "Algorithms", "3", "A")
	mustRun("gpa", "course", "add", "Fall 2024", "Calculus", "4", "B")

	report := mustJSON(t, mustRun("gpa", "show"), nil)
	got, cgpa := gpaOf(report)
	want := (3*4.0 + 4*3.0) / 7
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("gpa = %v, want %v", got, want)
	}
	if cgpa != got {
		t.Fatalf("one semester: cgpa %v must equal its gpa %v", cgpa, got)
	}

	// Regrading a course shifts the average.
	mustRun("gpa", "course", "grade", "Fall 2024", "Calculus", "A")
	report = mustJSON(t, mustRun("gpa", "show"), nil)
	if got, _ = gpaOf(report); got != 4.0 {
		t.Fatalf("all-A semester must score 4.0, got %v", got)
	}

	mustRun("gpa", "course", "rm", "Fall 2024", "Calculus")
	mustRun("gpa", "semester", "rm", "Fall 2024")
	report = mustJSON(t, mustRun("gpa", "show"), nil)
	if semesters, _ := report["semesters"].([]any); len(semesters) != 0 {
		t.Fatalf("expected no semesters after rm, got %v", report)
	}
	if report["cgpa"].(float64) != 0 {
		t.Fatalf("empty calculator must score 0, got %v", report["cgpa"])
	}
}

func TestGpaScaleOverridePersistsAndGuardsGrades(t *testing.T) {
	dir := isolate(t)

	mustRun := func(args ...string) []byte {
		t.Helper()
		args = append([]string{"--dir", dir}, args...)
		stdout, stderr, err := runCLI(t, args)
		if err != nil {
			t.Fatalf("command failed: checkin %v\nerr: %v\nstderr:\n%s", args, err, stderr)
		}
		return stdout
	}

	mustRun("gpa", "semester", "add", "Fall 2024")

	// A grade off the scale is rejected before anything is stored.
	if _, _, err := runCLI(t, []string{"--dir", dir, "gpa", "course", "add", "Fall 2024", "Mystery", "3", "Z"}); err == nil {
		t.Fatal("expected an off-scale grade to be rejected")
	}

	mustRun("gpa", "course", "add", "Fall 2024", "Algorithms", "3", "A")
	mustRun("gpa", "scale", "set", "A", "5.0")

	// The override lands in the config file and changes the report.
	scale := mustJSON(t, mustRun("gpa", "scale"), nil)
	if scale["A"].(float64) != 5.0 {
		t.Fatalf("expected overridden A=5.0, got %v", scale)
	}
	report := mustJSON(t, mustRun("gpa", "show"), nil)
	if report["cgpa"].(float64) != 5.0 {
		t.Fatalf("cgpa must follow the overridden scale, got %v", report["cgpa"])
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "gpa", "scale", "rm", "Q"}); err == nil {
		t.Fatal("removing an unknown grade must fail")
	}
}

func TestDateFlagRejectsMalformedKey(t *testing.T) {
	dir := isolate(t)
	if _, _, err := runCLI(t, []string{"--dir", dir, "--date", "2024-03-05", "agenda", "show"}); err == nil {
		t.Fatal("expected malformed date key to be rejected")
	}
}
