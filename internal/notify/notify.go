// Package notify implements the transient status line shown to the user
// after every page action.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DefaultHideAfter is how long a message stays visible.
const DefaultHideAfter = 3 * time.Second

// Severity classifies a message.
type Severity int

const (
	// Info is the default severity.
	Info Severity = iota
	Success
	Error
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows a transient message.
type Notifier interface {
	Show(text string, sev Severity)
}

// Message is a shown notification.
type Message struct {
	Text     string
	Severity Severity
}

// Styles maps severities to lipgloss styles.
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

func (s Styles) forSeverity(sev Severity) lipgloss.Style {
	switch sev {
	case Success:
		return s.Success
	case Error:
		return s.Error
	default:
		return s.Info
	}
}

// Surface is the notification region. At most one message is visible; a new
// Show replaces the previous message and cancels its hide timer.
type Surface struct {
	mu        sync.Mutex
	out       io.Writer
	styles    Styles
	hideAfter time.Duration
	current   *Message
	timer     *time.Timer
	seq       uint64
}

// Compile-time interface check.
var _ Notifier = (*Surface)(nil)

// Option configures a Surface.
type Option func(*Surface)

// WithWriter sets the region the surface writes to.
func WithWriter(w io.Writer) Option {
	return func(s *Surface) { s.out = w }
}

// WithStyles sets the per-severity styles.
func WithStyles(st Styles) Option {
	return func(s *Surface) { s.styles = st }
}

// WithHideAfter overrides DefaultHideAfter.
func WithHideAfter(d time.Duration) Option {
	return func(s *Surface) { s.hideAfter = d }
}

// NewSurface creates a Surface. Without WithWriter the region is created on
// first use and writes to os.Stderr.
func NewSurface(opts ...Option) *Surface {
	s := &Surface{hideAfter: DefaultHideAfter}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show writes text with the style for sev and makes it the visible message
// until the hide delay passes or another Show call replaces it.
func (s *Surface) Show(text string, sev Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out == nil {
		s.out = os.Stderr
	}
	_, _ = fmt.Fprintln(s.out, s.styles.forSeverity(sev).Render(text))

	if s.timer != nil {
		s.timer.Stop()
	}
	s.seq++
	seq := s.seq
	s.current = &Message{Text: text, Severity: sev}
	s.timer = time.AfterFunc(s.hideAfter, func() { s.hide(seq) })
}

// Current returns the visible message, if any.
func (s *Surface) Current() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Message{}, false
	}
	return *s.current, true
}

// hide clears the message shown by call seq. A timer that fired after a
// newer Show has already replaced its message does nothing.
func (s *Surface) hide(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return
	}
	s.current = nil
	s.timer = nil
}
