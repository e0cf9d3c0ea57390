package panel

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/pluqqy/pluqqy-account/pkg/models"
)

var errBackend = errors.New("backend unavailable")

type fakeIdentity struct {
	profile  *models.UserProfile
	loadErr  error
	endErr   error
	endCalls int
}

func (f *fakeIdentity) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.profile == nil {
		return nil, nil
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeIdentity) EndSession(ctx context.Context) error {
	f.endCalls++
	return f.endErr
}

type updateCall struct {
	userID uuid.UUID
	fields models.Fields
}

type fakeStore struct {
	mu    sync.Mutex
	err   error
	calls []updateCall
}

func (f *fakeStore) UpdateFields(ctx context.Context, userID uuid.UUID, fields models.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, updateCall{userID: userID, fields: fields})
	return f.err
}

type fakeCache struct {
	err    error
	values map[string]string
}

func (f *fakeCache) Set(key, value string) error {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[key] = value
	return f.err
}

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (f *fakeNotifier) Success(msg string) { f.successes = append(f.successes, msg) }
func (f *fakeNotifier) Error(msg string)   { f.errors = append(f.errors, msg) }

type fakeNavigator struct {
	paths []string
}

func (f *fakeNavigator) GoTo(path string) { f.paths = append(f.paths, path) }

type fakeAppearance struct {
	dark    bool
	applied []bool
}

func (f *fakeAppearance) IsDark() bool { return f.dark }

func (f *fakeAppearance) Apply(dark bool) {
	f.dark = dark
	f.applied = append(f.applied, dark)
}

type harness struct {
	ctrl       *Controller
	identity   *fakeIdentity
	store      *fakeStore
	cache      *fakeCache
	notifier   *fakeNotifier
	navigator  *fakeNavigator
	appearance *fakeAppearance
	profile    *models.UserProfile
}

func newHarness() *harness {
	h := &harness{
		profile: &models.UserProfile{
			ID:          uuid.New(),
			Email:       "ada@example.com",
			DisplayName: "Ada",
			DarkMode:    true,
		},
		store:      &fakeStore{},
		cache:      &fakeCache{},
		notifier:   &fakeNotifier{},
		navigator:  &fakeNavigator{},
		appearance: &fakeAppearance{dark: true},
	}
	h.identity = &fakeIdentity{profile: h.profile}
	h.ctrl = New(Deps{
		Identity:   h.identity,
		Store:      h.store,
		Cache:      h.cache,
		Notifier:   h.notifier,
		Navigator:  h.navigator,
		Appearance: h.appearance,
	})
	return h
}

// open drives Load through the event loop.
func (h *harness) open() {
	h.ctrl.Update(h.ctrl.Load()())
}
