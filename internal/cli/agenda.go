package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"checkin-cli/internal/model"
)

func newAgendaCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Plan the selected day on the 24-hour timeline",
	}
	cmd.AddCommand(newAgendaAddCmd(a))
	cmd.AddCommand(newAgendaShowCmd(a))
	cmd.AddCommand(newAgendaMoveCmd(a))
	cmd.AddCommand(newAgendaResizeCmd(a))
	cmd.AddCommand(newAgendaEditCmd(a))
	cmd.AddCommand(newAgendaRmCmd(a))
	return cmd
}

func newAgendaAddCmd(a *App) *cobra.Command {
	var (
		title, desc string
		start, end  int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the selected day's timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			item, err := application.CreateAgendaItem(cmd.Context(), model.AgendaItem{
				Title:       title,
				Description: desc,
				StartHour:   start,
				EndHour:     end,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, item)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&desc, "desc", "", "Optional description")
	cmd.Flags().IntVar(&start, "start", 9, "Start hour (0-23)")
	cmd.Flags().IntVar(&end, "end", 10, "End hour (1-24, exclusive)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newAgendaShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the selected day's items ordered by start hour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			day := application.Day()
			return writeResult(cmd, a, application, map[string]any{
				"date":  day.Date,
				"items": day.Ordered(),
			})
		},
	}
}

func newAgendaMoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <start-hour>",
		Short: "Move an item to a new start hour, keeping its duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			hour, err := parseHour(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			ok, err := application.MoveAgendaItem(cmd.Context(), args[0], hour)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, fmt.Errorf("cannot move %s to hour %d: the item would leave the day", args[0], hour))
			}
			item, found := application.Day().Find(args[0])
			if !found {
				return writeErr(cmd, errNotFound("agenda item", args[0]))
			}
			return writeResult(cmd, a, application, item)
		},
	}
}

func newAgendaResizeCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resize <id> <end-hour>",
		Short: "Set an item's end hour (clamped to at least one hour and at most midnight)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			hour, err := parseHour(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := application.ResizeAgendaItem(cmd.Context(), args[0], hour); err != nil {
				return writeErr(cmd, err)
			}
			item, found := application.Day().Find(args[0])
			if !found {
				return writeErr(cmd, errNotFound("agenda item", args[0]))
			}
			return writeResult(cmd, a, application, item)
		},
	}
}

func newAgendaEditCmd(a *App) *cobra.Command {
	var (
		title, desc string
		start, end  int
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an item's fields (id and color are preserved)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			item, found := application.Day().Find(args[0])
			if !found {
				return writeErr(cmd, errNotFound("agenda item", args[0]))
			}
			if cmd.Flags().Changed("title") {
				item.Title = title
			}
			if cmd.Flags().Changed("desc") {
				item.Description = desc
			}
			if cmd.Flags().Changed("start") {
				item.StartHour = start
			}
			if cmd.Flags().Changed("end") {
				item.EndHour = end
			}
			updated, err := application.EditAgendaItem(cmd.Context(), item)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, updated)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&desc, "desc", "", "New description")
	cmd.Flags().IntVar(&start, "start", 0, "New start hour")
	cmd.Flags().IntVar(&end, "end", 0, "New end hour")
	return cmd
}

func newAgendaRmCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an item from the timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !application.RequestRemoveAgendaItem(args[0]) {
				return writeErr(cmd, errNotFound("agenda item", args[0]))
			}
			removed, err := application.ConfirmRemoveAgendaItem(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, removed)
		},
	}
}

func parseHour(s string) (int, error) {
	var h int
	if _, err := fmt.Sscanf(s, "%d", &h); err != nil {
		return 0, fmt.Errorf("invalid hour %q", s)
	}
	return h, nil
}
