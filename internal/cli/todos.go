package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newTodosCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todos",
		Short: "Manage the selected day's to-do list",
	}
	cmd.AddCommand(newTodosAddCmd(a))
	cmd.AddCommand(newTodosListCmd(a))
	cmd.AddCommand(newTodosToggleCmd(a))
	cmd.AddCommand(newTodosRmCmd(a))
	return cmd
}

func newTodosAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task>...",
		Short: "Add a task to the selected day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			todo, err := application.AddTodo(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, todo)
		},
	}
}

func newTodosListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the selected day's tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			todos, err := application.Todos(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, todos)
		},
	}
}

func newTodosToggleCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			todos, err := application.Todos(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, todo := range todos {
				if todo.ID == args[0] {
					if err := application.ToggleTodo(ctx, todo.ID, todo.Done); err != nil {
						return writeErr(cmd, err)
					}
					todo.Done = !todo.Done
					return writeResult(cmd, a, application, todo)
				}
			}
			return writeErr(cmd, errNotFound("todo", args[0]))
		},
	}
}

func newTodosRmCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := application.RemoveTodo(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, map[string]string{"deleted": args[0]})
		},
	}
}
