// Package gpa implements the grade-point calculator: semesters of
// course/credit/grade rows scored against a configurable letter scale.
package gpa

import (
	"fmt"
	"math/rand"
	"sort"
)

// Course is one graded row: a name, its credit weight and a letter grade.
type Course struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Credits float64 `json:"credits"`
	Grade   string  `json:"grade"`
}

// Semester groups courses. Color is display-only, assigned at creation.
type Semester struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color,omitempty"`
	Courses []Course `json:"courses"`
}

// Scale maps grade letters to point values.
type Scale map[string]float64

// DefaultScale returns the built-in letter scale. Users override it per
// letter; the override lives in the config file.
func DefaultScale() Scale {
	return Scale{
		"A":  4.0,
		"A-": 3.75,
		"B+": 3.50,
		"B":  3.0,
		"B-": 2.75,
		"C+": 2.5,
		"C":  2.0,
		"D":  1.0,
		"F":  0.0,
	}
}

// Letters returns the scale's grade letters sorted by descending points,
// ties broken alphabetically.
func (s Scale) Letters() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if s[out[i]] != s[out[j]] {
			return s[out[i]] > s[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// GPA returns the credit-weighted grade average. No credits scores zero; a
// grade letter missing from the scale is an error.
func GPA(courses []Course, scale Scale) (float64, error) {
	var credits, points float64
	for _, c := range courses {
		p, ok := scale[c.Grade]
		if !ok {
			return 0, fmt.Errorf("grade %q is not on the scale", c.Grade)
		}
		credits += c.Credits
		points += c.Credits * p
	}
	if credits == 0 {
		return 0, nil
	}
	return points / credits, nil
}

// CGPA is the cumulative GPA over every course in every semester, weighted
// by credits exactly like a single semester.
func CGPA(semesters []Semester, scale Scale) (float64, error) {
	var all []Course
	for _, s := range semesters {
		all = append(all, s.Courses...)
	}
	return GPA(all, scale)
}

// RandomColor returns a light hex color for a new semester. The digit range
// keeps the block readable behind dark text.
func RandomColor() string {
	const digits = "89ABCDEF"
	b := make([]byte, 7)
	b[0] = '#'
	for i := 1; i < len(b); i++ {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}
