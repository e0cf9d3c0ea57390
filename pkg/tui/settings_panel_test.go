package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/pluqqy-account/pkg/models"
	"github.com/pluqqy/pluqqy-account/pkg/panel"
	"github.com/pluqqy/pluqqy-account/pkg/theme"
)

func focusField(ta *testApp, field int) {
	for i := 0; i < field; i++ {
		ta.send(key(tea.KeyTab))
	}
}

func TestSettingsPanel_TypingTruncates(t *testing.T) {
	ta := newTestApp()
	openSettings(t, ta)

	// Clear "Ada" then type a name that is one unit too long.
	for i := 0; i < 3; i++ {
		ta.send(key(tea.KeyBackspace))
	}
	ta.send(keyRunes("Alexandrine"))

	assert.Equal(t, "Alexandrin", ta.ctrl.Draft())
	assert.Equal(t, "Alexandrin", ta.settings.input.Value())
	assert.Equal(t, "10/10", ta.ctrl.Counter())
	assert.Contains(t, ta.View(), "10/10")
	assert.True(t, ta.ctrl.CanSave())
}

func TestSettingsPanel_SaveButtonStates(t *testing.T) {
	ta := newTestApp()
	openSettings(t, ta)

	assert.Equal(t, "Save", ta.settings.SaveLabel())
	assert.False(t, ta.ctrl.CanSave())

	ta.send(keyRunes("x"))
	msgs := ta.send(key(tea.KeyCtrlS))
	assert.Contains(t, ta.settings.SaveLabel(), "Saving")

	for _, msg := range msgs {
		ta.send(msg)
	}
	assert.Equal(t, "✓ Saved", ta.settings.SaveLabel())
	assert.Equal(t, models.Fields{models.FieldDisplayName: "Adax"}, ta.store.calls[0])
	assert.Equal(t, panel.MsgNameSaved, currentToast(t, ta).Text)
}

func TestSettingsPanel_SaveFailureShowsError(t *testing.T) {
	ta := newTestApp()
	ta.store.err = errBackend
	openSettings(t, ta)

	ta.send(keyRunes("x"))
	for _, msg := range ta.send(key(tea.KeyEnter)) {
		ta.settle(msg)
	}

	assert.Equal(t, "Save", ta.settings.SaveLabel())
	assert.True(t, ta.ctrl.IsDirty())
	toast := currentToast(t, ta)
	assert.Equal(t, ToastError, toast.Kind)
	assert.Equal(t, panel.MsgNameSaveFailed, toast.Text)
}

func TestSettingsPanel_EmptyNameRejected(t *testing.T) {
	ta := newTestApp()
	openSettings(t, ta)

	for i := 0; i < 3; i++ {
		ta.send(key(tea.KeyBackspace))
	}
	ta.send(keyRunes("  "))
	ta.send(key(tea.KeyEnter))

	assert.Empty(t, ta.store.calls)
	assert.Equal(t, panel.MsgNameEmpty, currentToast(t, ta).Text)
}

func TestSettingsPanel_ToggleDarkMode(t *testing.T) {
	ta := newTestApp()
	openSettings(t, ta)
	focusField(ta, focusDarkMode)

	msgs := ta.send(key(tea.KeySpace))
	assert.False(t, ta.ctrl.DarkMode())
	assert.Contains(t, ta.View(), "[ ] Dark mode")

	for _, msg := range msgs {
		ta.settle(msg)
	}

	assert.False(t, ta.appearance.dark)
	assert.Equal(t, "false", ta.cache.values[theme.CacheKey])
	assert.Equal(t, panel.MsgLightEnabled, currentToast(t, ta).Text)
}

func TestSettingsPanel_ToggleFailureRestores(t *testing.T) {
	ta := newTestApp()
	ta.store.err = errBackend
	openSettings(t, ta)
	focusField(ta, focusDarkMode)

	for _, msg := range ta.send(key(tea.KeyEnter)) {
		ta.settle(msg)
	}

	assert.True(t, ta.ctrl.DarkMode())
	assert.True(t, ta.appearance.dark)
	assert.Contains(t, ta.View(), "[x] Dark mode")
	assert.Equal(t, panel.MsgAppearanceFailed, currentToast(t, ta).Text)
}

func TestSettingsPanel_FocusWraps(t *testing.T) {
	ta := newTestApp()
	openSettings(t, ta)

	ta.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusLogout, ta.settings.focus)

	ta.send(key(tea.KeyTab))
	assert.Equal(t, focusName, ta.settings.focus)
}

func TestSettingsPanel_ReopenDiscardsDraft(t *testing.T) {
	ta := newTestApp()
	openSettings(t, ta)

	ta.send(keyRunes("xyz"))
	ta.send(key(tea.KeyEsc))

	ta.identity.profile.DisplayName = "Grace"
	for _, msg := range ta.send(keyRunes("s")) {
		ta.settle(msg)
	}

	require.True(t, ta.settings.IsOpen())
	assert.Equal(t, "Grace", ta.settings.input.Value())
	assert.False(t, ta.ctrl.IsDirty())
}

func TestSettingsPanel_PhotoUpload(t *testing.T) {
	ta := newTestApp()
	openSettings(t, ta)
	focusField(ta, focusPhoto)

	ta.send(key(tea.KeyEnter))
	require.True(t, ta.settings.photo.Active())
	assert.Contains(t, ta.View(), "Choose a profile photo")

	// Skip the file picker and confirm a chosen file directly.
	ph := ta.settings.photo
	ph.confirm.ShowDialog("Upload photo", "Use me.png?", "", false, 44,
		func() tea.Cmd { return ph.upload("/tmp/me.png") }, nil)

	for _, msg := range ta.send(keyRunes("y")) {
		ta.settle(msg)
	}

	assert.Equal(t, "/tmp/me.png", ta.uploader.path)
	assert.False(t, ph.Active())
	assert.Equal(t, "file:///photos/new.png", ta.ctrl.PhotoProps().PhotoURL)
	assert.Equal(t, panel.MsgPhotoUpdated, currentToast(t, ta).Text)
}
