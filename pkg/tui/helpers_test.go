package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/pluqqy/pluqqy-account/pkg/models"
	"github.com/pluqqy/pluqqy-account/pkg/session"
)

var errBackend = errors.New("backend unavailable")

type fakeIdentity struct {
	mu       sync.Mutex
	profile  *models.UserProfile
	endErr   error
	endCalls int
}

func (f *fakeIdentity) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile == nil {
		return nil, nil
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeIdentity) EndSession(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endCalls++
	if f.endErr == nil {
		f.profile = nil
	}
	return f.endErr
}

func (f *fakeIdentity) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if email != "ada@example.com" || password != "correct horse" {
		return nil, session.ErrInvalidCredentials
	}
	f.profile = testProfile()
	p := *f.profile
	return &p, nil
}

type fakeStore struct {
	mu    sync.Mutex
	err   error
	calls []models.Fields
}

func (f *fakeStore) UpdateFields(ctx context.Context, userID uuid.UUID, fields models.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fields)
	return f.err
}

type fakeCache struct {
	values map[string]string
}

func (f *fakeCache) Set(key, value string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

type fakeAppearance struct {
	dark bool
}

func (f *fakeAppearance) IsDark() bool    { return f.dark }
func (f *fakeAppearance) Apply(dark bool) { f.dark = dark }

type fakeUploader struct {
	url  string
	err  error
	path string
}

func (f *fakeUploader) Upload(ctx context.Context, userID uuid.UUID, path string) (string, error) {
	f.path = path
	return f.url, f.err
}

var testUserID = uuid.MustParse("6f1c2a4e-0b9d-4c1e-9a53-2d7e8f0a1b2c")

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		ID:          testUserID,
		Email:       "ada@example.com",
		DisplayName: "Ada",
		DarkMode:    true,
	}
}

type testApp struct {
	*App
	identity   *fakeIdentity
	store      *fakeStore
	cache      *fakeCache
	appearance *fakeAppearance
	uploader   *fakeUploader
}

func newTestApp() *testApp {
	ta := &testApp{
		identity:   &fakeIdentity{profile: testProfile()},
		store:      &fakeStore{},
		cache:      &fakeCache{},
		appearance: &fakeAppearance{dark: true},
		uploader:   &fakeUploader{url: "file:///photos/new.png"},
	}
	ta.App = NewApp(Options{
		Identity:   ta.identity,
		Auth:       ta.identity,
		Store:      ta.store,
		Cache:      ta.cache,
		Appearance: ta.appearance,
		Uploader:   ta.uploader,
	})
	ta.toasts.duration = time.Millisecond
	ta.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return ta
}

// send feeds msg to the app and returns the messages its command produced.
func (ta *testApp) send(msg tea.Msg) []tea.Msg {
	_, cmd := ta.Update(msg)
	return collect(cmd)
}

// settle feeds msg and then every message it produces until none are left.
func (ta *testApp) settle(msg tea.Msg) {
	queue := []tea.Msg{msg}
	for i := 0; len(queue) > 0 && i < 50; i++ {
		next := queue[0]
		queue = queue[1:]
		queue = append(queue, ta.send(next)...)
	}
}

// collect runs cmd and any batched commands. Commands that block on
// timers, like cursor blinks, are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(100 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil || isNoise(msg) {
		return nil
	}
	return []tea.Msg{msg}
}

func isNoise(msg tea.Msg) bool {
	switch msg.(type) {
	case clearToastMsg, tea.QuitMsg:
		return true
	}
	name := typeName(msg)
	return name == "spinner.TickMsg" || name == "cursor.BlinkMsg" || name == "cursor.initialBlinkMsg"
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeName(msg tea.Msg) string {
	return fmt.Sprintf("%T", msg)
}
