// Package theme owns the process-wide appearance marker. It is initialised
// at startup from the durable cache and the stored preference, and
// afterwards changed only by the settings panel's appearance toggle. Every lipgloss.AdaptiveColor in the UI
// resolves against it.
package theme

import (
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// CacheKey is the durable cache key holding the last applied mode.
const CacheKey = "darkMode"

// DefaultDark is the mode used when nothing has been cached yet.
const DefaultDark = true

// Reader is the read side of the durable cache.
type Reader interface {
	Get(key string) (string, bool)
}

var (
	mu   sync.RWMutex
	dark = DefaultDark
)

// Init applies the cached mode, or DefaultDark when the cache has none.
func Init(r Reader) bool {
	d := DefaultDark
	if r != nil {
		if v, ok := r.Get(CacheKey); ok {
			if parsed, err := strconv.ParseBool(v); err == nil {
				d = parsed
			}
		}
	}
	Apply(d)
	return d
}

// Writer is the write side of the durable cache.
type Writer interface {
	Set(key, value string) error
}

// Sync is the second half of startup: once the signed-in user's stored
// preference is known it wins over the cached mode, and the cache is
// refreshed so the next start begins in the right mode.
func Sync(stored bool, w Writer) error {
	if IsDark() == stored {
		return nil
	}
	Apply(stored)
	if w == nil {
		return nil
	}
	return w.Set(CacheKey, CacheValue(stored))
}

// Apply sets the marker and switches lipgloss's background detection.
func Apply(d bool) {
	mu.Lock()
	dark = d
	mu.Unlock()

	lipgloss.SetHasDarkBackground(d)
}

// IsDark reports the applied mode.
func IsDark() bool {
	mu.RLock()
	defer mu.RUnlock()
	return dark
}

// ModeName returns "dark" or "light".
func ModeName(d bool) string {
	if d {
		return "dark"
	}
	return "light"
}

// CacheValue encodes a mode for the durable cache.
func CacheValue(d bool) string {
	return strconv.FormatBool(d)
}

// Global exposes the package marker through an interface value.
type Global struct{}

func (Global) IsDark() bool { return IsDark() }

func (Global) Apply(d bool) { Apply(d) }
