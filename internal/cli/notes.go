package cli

import (
	"github.com/spf13/cobra"
)

func newNotesCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Capture and list notes",
	}
	cmd.AddCommand(newNotesAddCmd(a))
	cmd.AddCommand(newNotesListCmd(a))
	cmd.AddCommand(newNotesShowCmd(a))
	cmd.AddCommand(newNotesRmCmd(a))
	return cmd
}

func newNotesAddCmd(a *App) *cobra.Command {
	var title, text string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note (remote when logged in, local pending-sync otherwise)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			note, err := application.CreateNote(cmd.Context(), title, text)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, note)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Optional note title")
	cmd.Flags().StringVar(&text, "text", "", "Note body (markdown)")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newNotesListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := application.FetchNotes(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, application.Notes())
		},
	}
}

func newNotesShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := application.FetchNotes(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			for _, n := range application.Notes() {
				if n.ID == args[0] {
					return writeResult(cmd, a, application, n)
				}
			}
			return writeErr(cmd, errNotFound("note", args[0]))
		},
	}
}

func newNotesRmCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := application.DeleteNote(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, map[string]string{"deleted": args[0]})
		},
	}
}
