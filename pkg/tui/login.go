package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-account/pkg/models"
)

// Authenticator signs a user in.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.UserProfile, error)
}

// LoggedInMsg is sent after a successful sign in.
type LoggedInMsg struct {
	Profile *models.UserProfile
}

type loginResultMsg struct {
	profile *models.UserProfile
	err     error
}

// LoginModel is the email/password form shown on the login route.
type LoginModel struct {
	auth       Authenticator
	log        *zap.Logger
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	err        string
}

func NewLoginModel(auth Authenticator, log *zap.Logger) *LoginModel {
	if log == nil {
		log = zap.NewNop()
	}

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 32

	m := &LoginModel{
		auth:     auth,
		log:      log,
		email:    email,
		password: password,
	}
	m.Reset()
	return m
}

// Reset clears the password and error and focuses the email field.
func (m *LoginModel) Reset() tea.Cmd {
	m.password.SetValue("")
	m.err = ""
	m.submitting = false
	return m.setFocus(0)
}

func (m *LoginModel) Err() string { return m.err }

func (m *LoginModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, models.ErrUnauthorized) {
				m.err = "Invalid email or password"
			} else {
				m.log.Error("sign in failed", zap.Error(msg.err))
				m.err = "Sign in failed"
			}
			m.password.SetValue("")
			return nil
		}
		m.password.SetValue("")
		m.err = ""
		profile := msg.profile
		return func() tea.Msg { return LoggedInMsg{Profile: profile} }

	case tea.KeyMsg:
		if m.submitting {
			return nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return m.setFocus(1 - m.focus)
		case "enter":
			if m.focus == 0 {
				return m.setFocus(1)
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m *LoginModel) setFocus(i int) tea.Cmd {
	m.focus = i
	if i == 0 {
		m.password.Blur()
		return m.email.Focus()
	}
	m.email.Blur()
	return m.password.Focus()
}

func (m *LoginModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		m.err = "Email and password are required"
		return nil
	}

	m.submitting = true
	m.err = ""

	auth := m.auth
	return func() tea.Msg {
		p, err := auth.Login(context.Background(), email, password)
		return loginResultMsg{profile: p, err: err}
	}
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Sign in"))
	b.WriteString("\n\n")

	emailStyle, passwordStyle := FocusedInputStyle, InputStyle
	if m.focus == 1 {
		emailStyle, passwordStyle = InputStyle, FocusedInputStyle
	}

	b.WriteString(LabelStyle.Render("Email"))
	b.WriteString("\n")
	b.WriteString(emailStyle.Render(m.email.View()))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Password"))
	b.WriteString("\n")
	b.WriteString(passwordStyle.Render(m.password.View()))
	b.WriteString("\n\n")

	switch {
	case m.submitting:
		b.WriteString(DescriptionStyle.Render("Signing in..."))
	case m.err != "":
		b.WriteString(ErrorStyle.Render(m.err))
	}
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("enter submit • tab switch field • ctrl+c quit"))
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render("No account yet? Run `pluqqy-account register`."))

	return ContentPaddingStyle.Render(b.String())
}
