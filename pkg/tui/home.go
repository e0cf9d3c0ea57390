package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/pluqqy-account/pkg/models"
	"github.com/pluqqy/pluqqy-account/pkg/theme"
)

var ContentPaddingStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	PaddingRight(1)

func renderHome(profile *models.UserProfile) string {
	var b strings.Builder

	if profile == nil {
		b.WriteString(DescriptionStyle.Render("Loading profile..."))
		return ContentPaddingStyle.Render(b.String())
	}

	b.WriteString(TitleStyle.Render("Welcome, " + profile.DisplayName))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(LabelStyle.Width(12).Render(label))
		b.WriteString(NormalStyle.Render(value))
		b.WriteString("\n")
	}
	row("Email", profile.Email)
	row("Appearance", theme.ModeName(theme.IsDark()))
	if profile.PhotoURL != "" {
		row("Photo", profile.PhotoURL)
	} else {
		row("Photo", "none")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("s settings • r refresh • q quit"))

	return ContentPaddingStyle.Render(b.String())
}
