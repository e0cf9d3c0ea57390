package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-account/pkg/models"
	"github.com/pluqqy/pluqqy-account/pkg/panel"
)

// Routes
const (
	RouteHome  = "/home"
	RouteLogin = panel.LoginPath
)

// Options wires the app's collaborators.
type Options struct {
	Identity   panel.Identity
	Auth       Authenticator
	Store      panel.Store
	Cache      panel.Cache
	Appearance panel.Appearance
	Uploader   Uploader // nil disables photo uploads
	Logger     *zap.Logger
}

type homeLoadedMsg struct {
	profile *models.UserProfile
	err     error
}

// App routes between the home and login views and hosts the settings
// panel as a modal over them. It is also the panel's navigator.
type App struct {
	route    string
	identity panel.Identity
	ctrl     *panel.Controller
	settings *SettingsPanelModel
	login    *LoginModel
	toasts   *Toasts
	profile  *models.UserProfile
	log      *zap.Logger
	width    int
	height   int
}

func NewApp(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	a := &App{
		route:    RouteHome,
		identity: opts.Identity,
		toasts:   NewToasts(),
		log:      log,
	}
	a.ctrl = panel.New(panel.Deps{
		Identity:   opts.Identity,
		Store:      opts.Store,
		Cache:      opts.Cache,
		Notifier:   a.toasts,
		Navigator:  a,
		Appearance: opts.Appearance,
		Logger:     log,
	})
	a.settings = NewSettingsPanelModel(a.ctrl, NewPhotoUploaderModel(opts.Uploader, a.toasts, log))
	a.login = NewLoginModel(opts.Auth, log)
	return a
}

// GoTo switches route. Unknown routes are ignored.
func (a *App) GoTo(path string) {
	switch path {
	case RouteHome:
		a.route = RouteHome
	case RouteLogin:
		a.route = RouteLogin
		a.profile = nil
		a.login.Reset()
	default:
		a.log.Warn("unknown route", zap.String("path", path))
	}
}

func (a *App) Route() string { return a.route }

func (a *App) Init() tea.Cmd {
	return a.loadHome()
}

func (a *App) loadHome() tea.Cmd {
	identity := a.identity
	return func() tea.Msg {
		p, err := identity.CurrentUser(context.Background())
		return homeLoadedMsg{profile: p, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.settings.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		cmd = a.handleKey(msg)

	case StatusMsg:
		a.toasts.Success(string(msg))

	case ErrorStatusMsg:
		a.toasts.Error(string(msg))

	case clearToastMsg:
		a.toasts.Update(msg)
		return a, nil

	case homeLoadedMsg:
		switch {
		case msg.err != nil:
			a.log.Error("failed to load profile", zap.Error(msg.err))
			a.toasts.Error(panel.MsgLoadFailed)
		case msg.profile == nil:
			a.GoTo(RouteLogin)
		default:
			a.profile = msg.profile
		}

	case LoggedInMsg:
		a.profile = msg.Profile
		a.GoTo(RouteHome)
		a.toasts.Success("Signed in as " + msg.Profile.DisplayName)

	default:
		cmd = tea.Batch(a.settings.Update(msg), a.login.Update(msg))
		a.syncProfile()
	}

	return a, tea.Batch(cmd, a.toasts.Flush())
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.settings.IsOpen() {
		return a.settings.Update(msg)
	}
	if a.route == RouteLogin {
		return a.login.Update(msg)
	}

	switch msg.String() {
	case "s", ",":
		if a.profile != nil {
			return a.settings.Open()
		}
	case "r":
		return a.loadHome()
	case "q":
		return tea.Quit
	}
	return nil
}

// syncProfile mirrors the panel's saved projection onto the home view.
func (a *App) syncProfile() {
	if a.profile == nil || a.route != RouteHome {
		return
	}
	p := a.ctrl.Profile()
	if p.ID == a.profile.ID {
		a.profile = &p
	}
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	bar := a.toasts.View(a.width)
	barHeight := 0
	if bar != "" {
		barHeight = lipgloss.Height(bar)
	}

	var content string
	if a.settings.IsOpen() {
		content = lipgloss.Place(a.width, a.height-barHeight,
			lipgloss.Center, lipgloss.Center,
			a.settings.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(ColorBackdrop),
		)
	} else {
		title := "Account"
		body := renderHome(a.profile)
		if a.route == RouteLogin {
			title = "Sign in"
			body = a.login.View()
		}
		content = renderHeader(a.width, title) + "\n\n" + body
	}

	return overlayBottom(content, bar)
}
