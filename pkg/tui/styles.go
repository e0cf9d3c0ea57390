package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors resolve against the global appearance marker, so they flip when
// the user toggles dark mode. Light values first, dark values second.
var (
	ColorActive   = lipgloss.AdaptiveColor{Light: "127", Dark: "170"} // magenta for focus
	ColorInactive = lipgloss.AdaptiveColor{Light: "250", Dark: "240"}
	ColorNormal   = lipgloss.AdaptiveColor{Light: "236", Dark: "245"}
	ColorDim      = lipgloss.AdaptiveColor{Light: "245", Dark: "241"}
	ColorWarning  = lipgloss.AdaptiveColor{Light: "166", Dark: "214"}
	ColorDanger   = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	ColorSuccess  = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	ColorPrimary  = lipgloss.AdaptiveColor{Light: "25", Dark: "33"}
	ColorText     = lipgloss.AdaptiveColor{Light: "235", Dark: "255"}
	ColorBackdrop = lipgloss.AdaptiveColor{Light: "254", Dark: "235"}
	ColorLogo     = lipgloss.AdaptiveColor{Light: "162", Dark: "205"}
)

var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorActive)

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorInactive)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorActive).
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDim)

	FocusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorActive)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(ColorDim)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorInactive).
			Padding(0, 1)

	FocusedInputStyle = InputStyle.
				BorderForeground(ColorActive)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorDim).
			Italic(true)
)

// ButtonStyle renders a footer button in its current state.
func ButtonStyle(focused, enabled, danger bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 2)
	switch {
	case !enabled:
		return s.Foreground(ColorInactive)
	case focused && danger:
		return s.Background(ColorDanger).Foreground(ColorText).Bold(true)
	case focused:
		return s.Background(ColorActive).Foreground(ColorText).Bold(true)
	case danger:
		return s.Foreground(ColorDanger)
	default:
		return s.Foreground(ColorPrimary)
	}
}

// ToastStyle colours the status bar by toast kind.
func ToastStyle(kind ToastKind) lipgloss.Style {
	bg := ColorSuccess
	if kind == ToastError {
		bg = ColorDanger
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.AdaptiveColor{Light: "255", Dark: "230"}).
		Padding(0, 1)
}
