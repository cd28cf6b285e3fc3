package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"checkin-cli/internal/app"
	"checkin-cli/internal/format"
	"checkin-cli/internal/remote"
	"checkin-cli/internal/store"
	"checkin-cli/internal/tui"
)

// App carries the persistent flag state shared by every subcommand.
type App struct {
	Dir        string
	Date       string
	Format     string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:          "checkin",
		Short:        "Daily Check-In: notes, to-dos and a day planner (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  checkin

  # Scriptable commands
  checkin notes add --text "Buy milk"
  checkin todos list --date 05/03/2024
  checkin agenda add --title Standup --start 9 --end 10
  checkin agenda move 4f8b... 14
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, a)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&a.Dir, "dir", envOr("CHECKIN_DIR", ""), "Path to the local cache dir (advanced: overrides the default; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&a.Date, "date", "", "Selected day as DD/MM/YYYY (default: today)")
	cmd.PersistentFlags().StringVar(&a.Format, "format", envOr("CHECKIN_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&a.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newNotesCmd(a))
	cmd.AddCommand(newTodosCmd(a))
	cmd.AddCommand(newAgendaCmd(a))
	cmd.AddCommand(newGpaCmd(a))
	cmd.AddCommand(newAuthCmd(a))
	cmd.AddCommand(newCacheCmd(a))

	return cmd
}

func runTUI(cmd *cobra.Command, a *App) error {
	application, cfg, err := loadApp(cmd, a)
	if err != nil {
		return err
	}
	return tui.Run(application, cfg)
}

// loadApp assembles the shared application state: local cache (always),
// remote client (when configured) and the saved session.
func loadApp(cmd *cobra.Command, a *App) (*app.App, *store.GlobalConfig, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	dir := a.Dir
	if dir == "" {
		dir, err = store.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
	}
	cache := store.Cache{Dir: dir}

	var client *remote.Client
	if url, key := cfg.ResolveRemote(); url != "" {
		client, err = remote.New(url, key)
		if err != nil {
			return nil, nil, err
		}
	}

	application, err := app.New(cmd.Context(), cache, client, cfg.Session)
	if err != nil {
		return nil, nil, err
	}
	if a.Date != "" {
		if err := application.SetSelectedDate(cmd.Context(), a.Date); err != nil {
			return nil, nil, err
		}
	}
	if cfg.TUI != nil && cfg.TUI.DarkMode != nil {
		application.SetDarkMode(*cfg.TUI.DarkMode)
	}
	return application, cfg, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, a *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, a.Format, a.PrettyJSON)
}

// writeResult prints any pending best-effort notice (a failed remote write
// or load) to stderr before the payload. The exit code stays zero: the
// local store already holds the change.
func writeResult(cmd *cobra.Command, a *App, application *app.App, v any) error {
	if n := application.Notice(); n != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), n)
	}
	return writeOut(cmd, a, v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
