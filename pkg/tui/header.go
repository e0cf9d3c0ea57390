package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Version is printed under the logo. Set by the command layer.
var Version = "dev"

const logo = `▄▖▖ ▖▖▄▖▄▖▖▖
▙▌▌ ▌▌▌▌▌▌▌▌
▌ ▙▖▙▌█▌█▌▐
`

func renderHeader(width int, title string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(ColorLogo).
		Bold(true)

	logoRendered := logoStyle.Render(logo + Version + " ▘ ▘▘")

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	if title == "" {
		right := lipgloss.NewStyle().
			Width(width - 2).
			Align(lipgloss.Right)
		return headerPadding.Render(right.Render(logoRendered))
	}

	// Title sits on the version row, logo on the right.
	titleRendered := logoStyle.Render(strings.Repeat("\n", 3) + title)
	gap := width - 2 - lipgloss.Width(titleRendered) - lipgloss.Width(logoRendered)
	if gap < 1 {
		gap = 1
	}

	return headerPadding.Render(lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		strings.Repeat(" ", gap),
		logoRendered,
	))
}
