package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/pluqqy-account/pkg/panel"
)

const (
	focusName = iota
	focusEmail
	focusDarkMode
	focusPhoto
	focusSave
	focusLogout
	focusCount
)

const settingsPanelWidth = 56

// SettingsPanelModel renders the settings modal and turns keys into
// controller calls. All edit state lives in the controller.
type SettingsPanelModel struct {
	ctrl    *panel.Controller
	photo   *PhotoUploaderModel
	input   textinput.Model
	spinner spinner.Model
	focus   int
	width   int
	height  int
}

func NewSettingsPanelModel(ctrl *panel.Controller, photo *PhotoUploaderModel) *SettingsPanelModel {
	input := textinput.New()
	input.Placeholder = "Your name"
	input.Prompt = ""
	input.Width = 24

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorActive)

	return &SettingsPanelModel{
		ctrl:    ctrl,
		photo:   photo,
		input:   input,
		spinner: s,
	}
}

// Open loads the current user; the panel shows once the profile arrives.
func (m *SettingsPanelModel) Open() tea.Cmd {
	return m.ctrl.Load()
}

func (m *SettingsPanelModel) IsOpen() bool {
	return m.ctrl.IsOpen()
}

func (m *SettingsPanelModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.photo.SetSize(width, height)
}

func (m *SettingsPanelModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case panel.ProfileLoadedMsg:
		cmd := m.ctrl.Update(msg)
		if m.ctrl.IsOpen() {
			return tea.Batch(cmd, m.reset())
		}
		return cmd

	case spinner.TickMsg:
		if !m.busy() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !m.ctrl.IsOpen() {
			return nil
		}
		return m.handleKey(msg)
	}

	cmd := m.ctrl.Update(msg)
	photoCmd := m.photo.Update(msg)
	m.syncInput()
	return tea.Batch(cmd, photoCmd)
}

func (m *SettingsPanelModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.photo.Active() {
		wasUploading := m.photo.Uploading()
		cmd := m.photo.Update(msg)
		if !wasUploading && m.photo.Uploading() {
			cmd = tea.Batch(cmd, m.spinner.Tick)
		}
		return cmd
	}

	switch msg.String() {
	case "esc":
		m.ctrl.Close()
		m.input.Blur()
		return nil
	case "tab", "down":
		return m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1)
	case "ctrl+s":
		return m.save()
	}

	if m.focus == focusName {
		if msg.Type == tea.KeyEnter {
			return m.save()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != m.ctrl.Draft() {
			m.ctrl.InputDisplayName(m.input.Value())
			m.syncInput()
		}
		return cmd
	}

	if msg.Type != tea.KeyEnter && msg.String() != " " {
		if m.focus == focusEmail && msg.String() == "c" {
			return m.copyEmail()
		}
		return nil
	}

	switch m.focus {
	case focusEmail:
		return m.copyEmail()
	case focusDarkMode:
		return m.ctrl.ToggleDarkMode()
	case focusPhoto:
		return m.photo.Open(m.ctrl.PhotoProps())
	case focusSave:
		return m.save()
	case focusLogout:
		return m.logout()
	}
	return nil
}

func (m *SettingsPanelModel) reset() tea.Cmd {
	m.focus = focusName
	m.input.SetValue(m.ctrl.Draft())
	m.input.CursorEnd()
	return m.input.Focus()
}

// syncInput reflects truncation and post-save trimming back into the input.
func (m *SettingsPanelModel) syncInput() {
	if m.input.Value() != m.ctrl.Draft() {
		m.input.SetValue(m.ctrl.Draft())
		m.input.CursorEnd()
	}
}

func (m *SettingsPanelModel) setFocus(i int) tea.Cmd {
	m.focus = (i + focusCount) % focusCount
	if m.focus == focusName {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *SettingsPanelModel) busy() bool {
	return m.ctrl.IsSaving() || m.ctrl.LoggingOut() || m.photo.Uploading()
}

func (m *SettingsPanelModel) save() tea.Cmd {
	cmd := m.ctrl.Save()
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *SettingsPanelModel) logout() tea.Cmd {
	cmd := m.ctrl.Logout()
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *SettingsPanelModel) copyEmail() tea.Cmd {
	email := m.ctrl.Profile().Email
	if email == "" {
		return nil
	}
	return func() tea.Msg {
		if err := clipboard.WriteAll(email); err != nil {
			return ErrorStatusMsg("Failed to copy email")
		}
		return StatusMsg("Email copied to clipboard")
	}
}

func (m *SettingsPanelModel) View() string {
	if !m.ctrl.IsOpen() {
		return ""
	}

	width := settingsPanelWidth
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}

	if m.photo.Active() {
		return ModalStyle.Width(width).Render(m.photo.View())
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Settings"))
	b.WriteString("\n\n")

	// Display name
	counter := DescriptionStyle.Render(m.ctrl.Counter())
	label := m.label("Display name", focusName)
	gap := width - 6 - lipgloss.Width(label) - lipgloss.Width(counter)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(label + strings.Repeat(" ", gap) + counter)
	b.WriteString("\n")
	inputStyle := InputStyle
	if m.focus == focusName {
		inputStyle = FocusedInputStyle
	}
	b.WriteString(inputStyle.Width(width - 8).Render(m.input.View()))
	b.WriteString("\n\n")

	// Email
	b.WriteString(m.label("Email", focusEmail))
	b.WriteString("\n")
	email := m.ctrl.Profile().Email
	if email == "" {
		email = "Not signed in"
	}
	b.WriteString(NormalStyle.Render(email))
	if m.focus == focusEmail && m.ctrl.Profile().Email != "" {
		b.WriteString("  " + HelpStyle.Render("enter to copy"))
	}
	b.WriteString("\n\n")

	// Appearance
	b.WriteString(m.label("Appearance", focusDarkMode))
	b.WriteString("\n")
	box := "[ ]"
	if m.ctrl.DarkMode() {
		box = "[x]"
	}
	b.WriteString(NormalStyle.Render(box + " Dark mode"))
	b.WriteString("\n\n")

	// Photo
	b.WriteString(m.label("Profile photo", focusPhoto))
	b.WriteString("\n")
	b.WriteString(m.photo.Summary(m.ctrl.PhotoProps()))
	b.WriteString("\n\n")

	b.WriteString(m.footer())
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("tab next • enter select • ctrl+s save • esc close"))

	return ModalStyle.Width(width).Render(b.String())
}

func (m *SettingsPanelModel) label(text string, field int) string {
	if m.focus == field {
		return FocusedLabelStyle.Render("› " + text)
	}
	return LabelStyle.Render("  " + text)
}

func (m *SettingsPanelModel) footer() string {
	save := m.SaveLabel()
	saveBtn := ButtonStyle(m.focus == focusSave, m.ctrl.CanSave(), false).Render(save)

	logout := "Log out"
	if m.ctrl.LoggingOut() {
		logout = fmt.Sprintf("%s Signing out", m.spinner.View())
	}
	logoutBtn := ButtonStyle(m.focus == focusLogout, !m.ctrl.LoggingOut(), true).Render(logout)

	return lipgloss.JoinHorizontal(lipgloss.Center, saveBtn, "  ", logoutBtn)
}

// SaveLabel is the Save button caption for the current state.
func (m *SettingsPanelModel) SaveLabel() string {
	switch {
	case m.ctrl.IsSaving():
		return fmt.Sprintf("%s Saving", m.spinner.View())
	case m.ctrl.JustSaved():
		return "✓ Saved"
	default:
		return "Save"
	}
}
