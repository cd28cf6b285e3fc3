package cli

import (
	"github.com/spf13/cobra"

	"checkin-cli/internal/remote"
	"checkin-cli/internal/store"
)

func newAuthCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Configure the remote store and manage the session",
	}
	cmd.AddCommand(newAuthConfigureCmd(a))
	cmd.AddCommand(newAuthLoginCmd(a))
	cmd.AddCommand(newAuthRegisterCmd(a))
	cmd.AddCommand(newAuthLogoutCmd(a))
	cmd.AddCommand(newAuthWhoamiCmd(a))
	return cmd
}

func newAuthConfigureCmd(a *App) *cobra.Command {
	var url, key string
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Save the remote store endpoint to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			// Validate before saving so a typo doesn't brick later commands.
			if _, err := remote.New(url, key); err != nil {
				return writeErr(cmd, err)
			}
			cfg.RemoteURL = url
			cfg.RemoteKey = key
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]string{"remoteUrl": url})
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Remote store base URL")
	cmd.Flags().StringVar(&key, "key", "", "Remote store public API key")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newAuthLoginCmd(a *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cfg, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			session, err := application.SignIn(cmd.Context(), email, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.Session = session
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, map[string]string{"userId": session.UserID, "email": session.Email})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAuthRegisterCmd(a *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the remote store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, err := loadApp(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if application.Remote == nil {
				return writeErr(cmd, errLoginRequired("register"))
			}
			if err := application.Remote.SignUp(cmd.Context(), email, password); err != nil {
				return writeErr(cmd, err)
			}
			return writeResult(cmd, a, application, map[string]string{"registered": email})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAuthLogoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the saved session (local data stays)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.Session = nil
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]bool{"loggedOut": true})
		},
	}
}

func newAuthWhoamiCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved session identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if !cfg.Session.Valid() {
				return writeOut(cmd, a, map[string]bool{"authenticated": false})
			}
			return writeOut(cmd, a, map[string]any{
				"authenticated": true,
				"userId":        cfg.Session.UserID,
				"email":         cfg.Session.Email,
			})
		},
	}
}
