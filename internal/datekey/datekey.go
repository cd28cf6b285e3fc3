package datekey

import (
	"fmt"
	"time"
)

// A date key is the canonical DD/MM/YYYY string identifying one calendar
// day's stored records (e.g. "05/03/2024"). It is the join key between the
// selected calendar date and stored agenda/todo rows, both locally and in
// the remote store.

const layout = "02/01/2006"

// Format returns the date key for t in t's location.
func Format(t time.Time) string {
	return t.Format(layout)
}

// Today returns the date key for the current local day.
func Today() string {
	return Format(time.Now())
}

// Parse parses a date key. It is strict: two-digit day and month, four-digit
// year, and a real calendar date.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q (want DD/MM/YYYY): %w", key, err)
	}
	return t, nil
}

// Valid reports whether key is a well-formed date key.
func Valid(key string) bool {
	_, err := Parse(key)
	return err == nil
}

// Shift returns the date key n days after key. It assumes key is valid.
func Shift(key string, n int) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}
