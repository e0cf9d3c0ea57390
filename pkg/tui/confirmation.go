package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string // Dialog title (optional)
	Message     string // Main confirmation message
	Warning     string // Optional warning line
	Destructive bool   // Yes is red, No is green
	YesLabel    string // default "Yes"
	NoLabel     string // default "No"
	Width       int    // dialog width
}

// ConfirmationModel is a bordered y/n dialog
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates an inactive confirmation
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
}

// ShowDialog is shorthand for a bordered dialog
func (m *ConfirmationModel) ShowDialog(title, message, warning string, destructive bool, width int, onConfirm, onCancel func() tea.Cmd) {
	m.Show(ConfirmationConfig{
		Title:       title,
		Message:     message,
		Warning:     warning,
		Destructive: destructive,
		Width:       width,
	}, onConfirm, onCancel)
}

func (m *ConfirmationModel) Hide() {
	m.active = false
}

func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles y/n/esc. Other keys are swallowed while active.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	width := m.config.Width
	if width == 0 {
		width = 50
	}
	inner := width - 4
	center := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)

	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(center.Render(TitleStyle.Render(m.config.Title)))
		b.WriteString("\n\n")
	}
	if m.config.Message != "" {
		b.WriteString(center.Render(m.config.Message))
		b.WriteString("\n")
	}
	if m.config.Warning != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(lipgloss.NewStyle().Foreground(ColorWarning).Render(m.config.Warning)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center.Render(m.formatOptions()))

	return ActiveBorderStyle.
		Width(width).
		Padding(0, 1).
		Render(b.String())
}

func (m *ConfirmationModel) formatOptions() string {
	yes := lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	no := lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	if m.config.Destructive {
		yes, no = no, yes
	}
	return fmt.Sprintf("[%s] %s  [%s] %s",
		yes.Render("y"), m.config.YesLabel,
		no.Render("n"), m.config.NoLabel,
	)
}
