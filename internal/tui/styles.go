package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/erazemk/partstock/internal/notify"
)

// Colors and styles of the inventory screen.
var (
	ColorCyan    = lipgloss.Color("6")
	ColorYellow  = lipgloss.Color("3")
	ColorGreen   = lipgloss.Color("2")
	ColorMagenta = lipgloss.Color("5")
	ColorDim     = lipgloss.Color("8")
	ColorWhite   = lipgloss.Color("15")
	ColorRed     = lipgloss.Color("1")
	ColorBlue    = lipgloss.Color("4")

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	SelectedLabelStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	NormalLabelStyle = lipgloss.NewStyle().
				Foreground(ColorWhite)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorDim)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	FocusedBoxStyle = BoxStyle.
			BorderForeground(ColorCyan)
)

func notificationStyle(kind notify.Kind) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch kind {
	case notify.KindSuccess:
		return s.Foreground(ColorGreen)
	case notify.KindError:
		return s.Foreground(ColorRed)
	case notify.KindWarning:
		return s.Foreground(ColorYellow)
	default:
		return s.Foreground(ColorBlue)
	}
}
