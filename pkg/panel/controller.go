// Package panel holds the settings panel controller. It owns the edit
// session for one open panel and talks to its collaborators through
// bubbletea commands, so all state changes happen on the event loop.
package panel

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-account/pkg/models"
	"github.com/pluqqy/pluqqy-account/pkg/theme"
	"github.com/pluqqy/pluqqy-account/pkg/utils"
)

// LoginPath is where a signed-out user is sent.
const LoginPath = "/login"

// JustSavedWindow is how long the "Saved" confirmation stays visible.
const JustSavedWindow = 2 * time.Second

// State of the panel.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	default:
		return "closed"
	}
}

// Deps bundles the controller's collaborators.
type Deps struct {
	Identity   Identity
	Store      Store
	Cache      Cache
	Notifier   Notifier
	Navigator  Navigator
	Appearance Appearance
	Logger     *zap.Logger
}

// PhotoProps is what the photo uploader needs to know about the user.
type PhotoProps struct {
	UserID      uuid.UUID
	PhotoURL    string
	DisplayName string
}

// Controller is the settings panel state machine.
type Controller struct {
	identity   Identity
	store      Store
	cache      Cache
	notifier   Notifier
	navigator  Navigator
	appearance Appearance
	log        *zap.Logger

	savedWindow time.Duration

	state   State
	profile models.UserProfile

	draft      string
	dirty      bool
	saving     bool
	justSaved  bool
	darkMode   bool
	loggingOut bool

	// gen changes on every Open so late results from an earlier
	// session do not touch the new draft.
	gen int
	// rev counts draft edits; a save only clears dirty if no edit
	// happened while it was in flight.
	rev     int
	saveSeq int
}

// New creates a closed controller.
func New(deps Deps) *Controller {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		identity:    deps.Identity,
		store:       deps.Store,
		cache:       deps.Cache,
		notifier:    deps.Notifier,
		navigator:   deps.Navigator,
		appearance:  deps.Appearance,
		log:         log,
		savedWindow: JustSavedWindow,
	}
}

// Load fetches the current user. The result arrives as ProfileLoadedMsg.
func (c *Controller) Load() tea.Cmd {
	identity := c.identity
	return func() tea.Msg {
		p, err := identity.CurrentUser(context.Background())
		return ProfileLoadedMsg{Profile: p, Err: err}
	}
}

// Open starts a fresh edit session seeded from profile. A nil profile
// opens the panel for a signed-out user. A logout still in flight stays
// in flight.
func (c *Controller) Open(profile *models.UserProfile) {
	if profile == nil {
		c.profile = models.UserProfile{DarkMode: c.appearance.IsDark()}
	} else {
		c.profile = *profile
	}

	c.gen++
	c.state = Open
	c.draft = utils.TruncateUTF16(c.profile.DisplayName, models.MaxDisplayNameLength)
	c.dirty = false
	c.saving = false
	c.justSaved = false
	c.darkMode = c.profile.DarkMode
}

// Close dismisses the panel. Unsaved edits are dropped.
func (c *Controller) Close() {
	c.state = Closed
}

// InputDisplayName replaces the draft, truncated to the display name limit.
func (c *Controller) InputDisplayName(raw string) {
	c.draft = utils.TruncateUTF16(raw, models.MaxDisplayNameLength)
	c.dirty = true
	c.rev++
}

// CanSave reports whether the Save action is enabled.
func (c *Controller) CanSave() bool {
	return c.dirty && !c.saving
}

// Save persists the trimmed draft. It is a no-op while CanSave is false.
func (c *Controller) Save() tea.Cmd {
	if !c.CanSave() {
		return nil
	}
	if !c.profile.SignedIn() {
		c.notifier.Error(MsgNotSignedIn)
		return nil
	}
	name := strings.TrimSpace(c.draft)
	if name == "" {
		c.notifier.Error(MsgNameEmpty)
		return nil
	}

	c.saving = true
	c.justSaved = false
	c.saveSeq++

	st := c.store
	userID := c.profile.ID
	msg := saveResultMsg{seq: c.saveSeq, rev: c.rev, gen: c.gen, name: name}
	return func() tea.Msg {
		msg.err = st.UpdateFields(context.Background(), userID, models.Fields{models.FieldDisplayName: name})
		return msg
	}
}

// ToggleDarkMode flips the local flag at once and persists it when a user
// is signed in. The global appearance only changes once the store agrees.
func (c *Controller) ToggleDarkMode() tea.Cmd {
	prev := c.darkMode
	next := !prev
	c.darkMode = next

	if !c.profile.SignedIn() {
		return nil
	}

	st := c.store
	userID := c.profile.ID
	msg := toggleResultMsg{prev: prev, next: next, gen: c.gen}
	return func() tea.Msg {
		msg.err = st.UpdateFields(context.Background(), userID, models.Fields{models.FieldDarkMode: next})
		return msg
	}
}

// Logout ends the session. Presses while a logout is running are ignored.
func (c *Controller) Logout() tea.Cmd {
	if c.loggingOut {
		return nil
	}
	c.loggingOut = true

	identity := c.identity
	return func() tea.Msg {
		return logoutResultMsg{err: identity.EndSession(context.Background())}
	}
}

// Update applies async results. Unknown messages are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ProfileLoadedMsg:
		return c.handleProfileLoaded(msg)
	case saveResultMsg:
		return c.handleSaveResult(msg)
	case justSavedExpiredMsg:
		if msg.seq == c.saveSeq {
			c.justSaved = false
		}
	case toggleResultMsg:
		c.handleToggleResult(msg)
	case logoutResultMsg:
		c.handleLogoutResult(msg)
	case PhotoUpdatedMsg:
		if msg.UserID == c.profile.ID {
			c.profile.PhotoURL = msg.URL
		}
	}
	return nil
}

func (c *Controller) handleProfileLoaded(msg ProfileLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		c.log.Error("failed to load profile", zap.Error(msg.Err))
		c.notifier.Error(MsgLoadFailed)
		return nil
	}
	c.Open(msg.Profile)
	return nil
}

func (c *Controller) handleSaveResult(msg saveResultMsg) tea.Cmd {
	if msg.err != nil {
		c.log.Error("failed to save display name",
			zap.String("user_id", c.profile.ID.String()),
			zap.Error(msg.err),
		)
		if msg.gen == c.gen {
			c.saving = false
		}
		c.notifier.Error(MsgNameSaveFailed)
		return nil
	}

	c.profile.DisplayName = msg.name
	c.notifier.Success(MsgNameSaved)

	if msg.gen != c.gen {
		return nil
	}

	c.saving = false
	if msg.rev == c.rev {
		c.dirty = false
		c.draft = msg.name
	}
	c.justSaved = true

	seq := msg.seq
	return tea.Tick(c.savedWindow, func(time.Time) tea.Msg {
		return justSavedExpiredMsg{seq: seq}
	})
}

func (c *Controller) handleToggleResult(msg toggleResultMsg) {
	if msg.err != nil {
		c.log.Error("failed to update appearance",
			zap.String("user_id", c.profile.ID.String()),
			zap.Bool("dark_mode", msg.next),
			zap.Error(msg.err),
		)
		if msg.gen == c.gen {
			c.darkMode = msg.prev
		}
		c.notifier.Error(MsgAppearanceFailed)
		return
	}

	c.profile.DarkMode = msg.next
	if msg.gen != c.gen {
		c.darkMode = msg.next
	}
	c.appearance.Apply(msg.next)
	c.writeCache(msg.next)

	if msg.next {
		c.notifier.Success(MsgDarkEnabled)
	} else {
		c.notifier.Success(MsgLightEnabled)
	}
}

func (c *Controller) handleLogoutResult(msg logoutResultMsg) {
	c.loggingOut = false

	if msg.err != nil {
		c.log.Error("failed to sign out",
			zap.String("user_id", c.profile.ID.String()),
			zap.Error(msg.err),
		)
		c.notifier.Error(MsgSignOutFailed)
		return
	}

	c.navigator.GoTo(LoginPath)
	c.Close()
	c.notifier.Success(MsgSignedOut)
}

func (c *Controller) writeCache(dark bool) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(theme.CacheKey, theme.CacheValue(dark)); err != nil {
		c.log.Warn("failed to cache appearance",
			zap.String("user_id", c.profile.ID.String()),
			zap.Error(err),
		)
	}
}

// State returns whether the panel is open.
func (c *Controller) State() State { return c.state }

// IsOpen is shorthand for State() == Open.
func (c *Controller) IsOpen() bool { return c.state == Open }

// Draft returns the display name being edited.
func (c *Controller) Draft() string { return c.draft }

// DraftLength is the draft length in UTF-16 code units.
func (c *Controller) DraftLength() int { return utils.UTF16Len(c.draft) }

// Counter renders the draft length against the limit, e.g. "3/10".
func (c *Controller) Counter() string {
	return fmt.Sprintf("%d/%d", c.DraftLength(), models.MaxDisplayNameLength)
}

func (c *Controller) IsDirty() bool    { return c.dirty }
func (c *Controller) IsSaving() bool   { return c.saving }
func (c *Controller) JustSaved() bool  { return c.justSaved }
func (c *Controller) DarkMode() bool   { return c.darkMode }
func (c *Controller) LoggingOut() bool { return c.loggingOut }

// Profile returns the controller's projection of the signed-in user.
func (c *Controller) Profile() models.UserProfile { return c.profile }

// PhotoProps returns the inputs for the photo uploader.
func (c *Controller) PhotoProps() PhotoProps {
	return PhotoProps{
		UserID:      c.profile.ID,
		PhotoURL:    c.profile.PhotoURL,
		DisplayName: c.profile.DisplayName,
	}
}
