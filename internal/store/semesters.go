package store

import (
	"context"
	"encoding/json"
	"fmt"

	"checkin-cli/internal/gpa"
)

// LocalSemesterRepository keeps the grade calculator's semesters in the
// cache's `semesters` key as one JSON array. Semesters never leave the local
// store; there is no remote table for them.
type LocalSemesterRepository struct {
	Cache Cache
}

// List returns every semester in insertion order.
func (r LocalSemesterRepository) List(ctx context.Context) ([]gpa.Semester, error) {
	raw, ok, err := r.Cache.Get(ctx, KeySemesters)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []gpa.Semester{}, nil
	}
	var semesters []gpa.Semester
	if err := json.Unmarshal([]byte(raw), &semesters); err != nil {
		return nil, fmt.Errorf("decode cached semesters: %w", err)
	}
	return semesters, nil
}

// Save replaces the stored collection.
func (r LocalSemesterRepository) Save(ctx context.Context, semesters []gpa.Semester) error {
	if semesters == nil {
		semesters = []gpa.Semester{}
	}
	raw, err := json.Marshal(semesters)
	if err != nil {
		return err
	}
	return r.Cache.Set(ctx, KeySemesters, string(raw))
}
