package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so everything chrome-level uses lipgloss.AdaptiveColor. Agenda item blocks
// are the exception: their background is the item's own stored color.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorControlBg  lipgloss.TerminalColor = ac("252", "235")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorDanger     lipgloss.TerminalColor = ac("160", "196")
	colorGridDots   lipgloss.TerminalColor = ac("250", "238")
)

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func styleTab(active bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return st.Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	}
	return st.Foreground(colorMuted)
}

func styleNotice() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorDanger)
}

// itemBlockStyle paints an agenda block with its stored color. White text on
// the saturated palette colors reads fine on both backgrounds.
func itemBlockStyle(hex string, selected bool) lipgloss.Style {
	st := lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color("#ffffff"))
	if selected {
		st = st.Bold(true).Underline(true)
	}
	return st
}

func styleModalBox(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(width)
}
