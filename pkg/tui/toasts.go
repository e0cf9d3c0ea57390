package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// ToastDuration is how long a toast stays in the status bar.
const ToastDuration = 3 * time.Second

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// Toast is one status bar message.
type Toast struct {
	Kind ToastKind
	Text string
}

// StatusMsg shows a success toast. Views return it from commands.
type StatusMsg string

type clearToastMsg struct {
	seq int
}

// Toasts is the notification sink. Success and Error queue a toast; the
// owning model calls Flush after each update to show the newest one and
// schedule its removal.
type Toasts struct {
	pending  []Toast
	current  *Toast
	seq      int
	duration time.Duration
}

// NewToasts creates an empty sink.
func NewToasts() *Toasts {
	return &Toasts{duration: ToastDuration}
}

func (t *Toasts) Success(msg string) {
	t.pending = append(t.pending, Toast{Kind: ToastSuccess, Text: msg})
}

func (t *Toasts) Error(msg string) {
	t.pending = append(t.pending, Toast{Kind: ToastError, Text: msg})
}

// Flush shows the newest queued toast and returns the timer that clears it.
// It returns nil when nothing was queued.
func (t *Toasts) Flush() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	last := t.pending[len(t.pending)-1]
	t.current = &last
	t.pending = nil
	t.seq++

	seq := t.seq
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

// Update clears the current toast when its timer fires. A newer toast
// keeps its own timer.
func (t *Toasts) Update(msg tea.Msg) {
	if m, ok := msg.(clearToastMsg); ok && m.seq == t.seq {
		t.current = nil
	}
}

// Current returns the toast on screen, if any.
func (t *Toasts) Current() (Toast, bool) {
	if t.current == nil {
		return Toast{}, false
	}
	return *t.current, true
}

// View renders the status bar, wrapped to width.
func (t *Toasts) View(width int) string {
	if t.current == nil {
		return ""
	}
	text := t.current.Text
	if width > 4 {
		text = wordwrap.String(text, width-4)
	}
	return ToastStyle(t.current.Kind).Render(text)
}

// overlayBottom joins the status bar under content.
func overlayBottom(content, bar string) string {
	if bar == "" {
		return content
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, bar)
}

// ErrorStatusMsg shows an error toast.
type ErrorStatusMsg string
