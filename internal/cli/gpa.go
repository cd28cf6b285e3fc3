package cli

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"checkin-cli/internal/gpa"
	"checkin-cli/internal/store"
)

func newGpaCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gpa",
		Short: "Grade calculator: semesters, courses and the letter scale",
	}
	cmd.AddCommand(newGpaShowCmd(a))
	cmd.AddCommand(newGpaSemesterCmd(a))
	cmd.AddCommand(newGpaCourseCmd(a))
	cmd.AddCommand(newGpaScaleCmd(a))
	return cmd
}

func semestersFor(a *App) (store.LocalSemesterRepository, error) {
	cache, err := cacheFor(a)
	if err != nil {
		return store.LocalSemesterRepository{}, err
	}
	return store.LocalSemesterRepository{Cache: cache}, nil
}

// gradeScale returns the effective letter scale: the config override when
// one is saved, the built-in default otherwise.
func gradeScale() (gpa.Scale, *store.GlobalConfig, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.GradeScale) > 0 {
		return gpa.Scale(cfg.GradeScale), cfg, nil
	}
	return gpa.DefaultScale(), cfg, nil
}

// findSemester matches by id first, then by exact name.
func findSemester(semesters []gpa.Semester, ref string) (int, bool) {
	for i := range semesters {
		if semesters[i].ID == ref {
			return i, true
		}
	}
	for i := range semesters {
		if semesters[i].Name == ref {
			return i, true
		}
	}
	return -1, false
}

func findCourse(courses []gpa.Course, ref string) (int, bool) {
	for i := range courses {
		if courses[i].ID == ref {
			return i, true
		}
	}
	for i := range courses {
		if courses[i].Name == ref {
			return i, true
		}
	}
	return -1, false
}

type semesterReport struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Color   string       `json:"color,omitempty"`
	GPA     float64      `json:"gpa"`
	Courses []gpa.Course `json:"courses"`
}

func newGpaShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show every semester's GPA and the cumulative GPA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := semestersFor(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			scale, _, err := gradeScale()
			if err != nil {
				return writeErr(cmd, err)
			}
			semesters, err := repo.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			reports := make([]semesterReport, 0, len(semesters))
			for _, s := range semesters {
				avg, err := gpa.GPA(s.Courses, scale)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("semester %q: %w", s.Name, err))
				}
				reports = append(reports, semesterReport{
					ID: s.ID, Name: s.Name, Color: s.Color, GPA: avg, Courses: s.Courses,
				})
			}
			cumulative, err := gpa.CGPA(semesters, scale)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]any{
				"semesters": reports,
				"cgpa":      cumulative,
			})
		},
	}
}

func newGpaSemesterCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semester",
		Short: "Manage semesters",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a semester",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := semestersFor(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			semesters, err := repo.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			s := gpa.Semester{
				ID:      uuid.New().String(),
				Name:    args[0],
				Color:   gpa.RandomColor(),
				Courses: []gpa.Course{},
			}
			if err := repo.Save(cmd.Context(), append(semesters, s)); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, s)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id-or-name>",
		Short: "Delete a semester and its courses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := semestersFor(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			semesters, err := repo.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			i, ok := findSemester(semesters, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("semester", args[0]))
			}
			removed := semesters[i]
			semesters = append(semesters[:i], semesters[i+1:]...)
			if err := repo.Save(cmd.Context(), semesters); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]string{"deleted": removed.ID})
		},
	})
	return cmd
}

func newGpaCourseCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Manage a semester's courses",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <semester> <name> <credits> <grade>",
		Short: "Add a graded course to a semester",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := semestersFor(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			scale, _, err := gradeScale()
			if err != nil {
				return writeErr(cmd, err)
			}
			credits, err := strconv.ParseFloat(args[2], 64)
			if err != nil || credits <= 0 {
				return writeErr(cmd, fmt.Errorf("invalid credits %q: want a positive number", args[2]))
			}
			if _, ok := scale[args[3]]; !ok {
				return writeErr(cmd, fmt.Errorf("grade %q is not on the scale (known: %v)", args[3], scale.Letters()))
			}
			semesters, err := repo.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			i, ok := findSemester(semesters, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("semester", args[0]))
			}
			course := gpa.Course{ID: uuid.New().String(), Name: args[1], Credits: credits, Grade: args[3]}
			semesters[i].Courses = append(semesters[i].Courses, course)
			if err := repo.Save(cmd.Context(), semesters); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, course)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <semester> <course>",
		Short: "Remove a course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := semestersFor(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			semesters, err := repo.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			i, ok := findSemester(semesters, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("semester", args[0]))
			}
			j, ok := findCourse(semesters[i].Courses, args[1])
			if !ok {
				return writeErr(cmd, errNotFound("course", args[1]))
			}
			removed := semesters[i].Courses[j]
			semesters[i].Courses = append(semesters[i].Courses[:j], semesters[i].Courses[j+1:]...)
			if err := repo.Save(cmd.Context(), semesters); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]string{"deleted": removed.ID})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "grade <semester> <course> <grade>",
		Short: "Change a course's letter grade",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := semestersFor(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			scale, _, err := gradeScale()
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := scale[args[2]]; !ok {
				return writeErr(cmd, fmt.Errorf("grade %q is not on the scale (known: %v)", args[2], scale.Letters()))
			}
			semesters, err := repo.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			i, ok := findSemester(semesters, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("semester", args[0]))
			}
			j, ok := findCourse(semesters[i].Courses, args[1])
			if !ok {
				return writeErr(cmd, errNotFound("course", args[1]))
			}
			semesters[i].Courses[j].Grade = args[2]
			if err := repo.Save(cmd.Context(), semesters); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, semesters[i].Courses[j])
		},
	})
	return cmd
}

func newGpaScaleCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Show the effective grade scale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, _, err := gradeScale()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, scale)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <letter> <points>",
		Short: "Add or update a grade on the scale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := strconv.ParseFloat(args[1], 64)
			if err != nil || points < 0 {
				return writeErr(cmd, fmt.Errorf("invalid points %q: want a non-negative number", args[1]))
			}
			scale, cfg, err := gradeScale()
			if err != nil {
				return writeErr(cmd, err)
			}
			scale[args[0]] = points
			cfg.GradeScale = map[string]float64(scale)
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, scale)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <letter>",
		Short: "Remove a grade from the scale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, cfg, err := gradeScale()
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := scale[args[0]]; !ok {
				return writeErr(cmd, errNotFound("grade", args[0]))
			}
			if len(scale) == 1 {
				// An empty saved scale would silently fall back to the
				// default on the next load.
				return writeErr(cmd, fmt.Errorf("cannot remove the last grade on the scale"))
			}
			delete(scale, args[0])
			cfg.GradeScale = map[string]float64(scale)
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, scale)
		},
	})
	return cmd
}
