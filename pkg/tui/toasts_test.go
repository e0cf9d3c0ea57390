package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToasts_FlushShowsNewest(t *testing.T) {
	toasts := NewToasts()
	assert.Nil(t, toasts.Flush(), "nothing queued")

	toasts.Success("first")
	toasts.Error("second")
	cmd := toasts.Flush()
	require.NotNil(t, cmd)

	toast, ok := toasts.Current()
	require.True(t, ok)
	assert.Equal(t, Toast{Kind: ToastError, Text: "second"}, toast)
}

func TestToasts_OnlyLatestTimerClears(t *testing.T) {
	toasts := NewToasts()

	toasts.Success("first")
	toasts.Flush()
	stale := toasts.seq

	toasts.Success("second")
	toasts.Flush()

	toasts.Update(clearToastMsg{seq: stale})
	toast, ok := toasts.Current()
	require.True(t, ok)
	assert.Equal(t, "second", toast.Text)

	toasts.Update(clearToastMsg{seq: toasts.seq})
	_, ok = toasts.Current()
	assert.False(t, ok)
	assert.Empty(t, toasts.View(80))
}

func TestToasts_ViewWraps(t *testing.T) {
	toasts := NewToasts()
	toasts.Error(strings.Repeat("word ", 12))
	toasts.Flush()

	view := toasts.View(24)
	assert.Greater(t, strings.Count(view, "\n"), 0)
	assert.Contains(t, view, "word")
}
