package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"checkin-cli/internal/app"
	"checkin-cli/internal/store"
)

// Run starts the interactive TUI over the shared application state. Mouse
// cell motion is enabled for the planner's drag gestures.
func Run(a *app.App, cfg *store.GlobalConfig) error {
	applyBackgroundPreference(a, cfg)
	m := newAppModel(a, cfg)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// applyBackgroundPreference resolves the light/dark palette: an explicit
// config choice wins, otherwise the terminal background decides.
func applyBackgroundPreference(a *app.App, cfg *store.GlobalConfig) {
	if cfg != nil && cfg.TUI != nil && cfg.TUI.DarkMode != nil {
		lipgloss.SetHasDarkBackground(*cfg.TUI.DarkMode)
		a.SetDarkMode(*cfg.TUI.DarkMode)
		return
	}
	dark := termenv.HasDarkBackground()
	lipgloss.SetHasDarkBackground(dark)
	a.SetDarkMode(dark)
}
