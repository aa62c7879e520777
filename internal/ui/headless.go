package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// HeadlessManager decides whether prompts may be shown and holds the values
// supplied up front (usually from command-line flags), keyed by form field id.
type HeadlessManager struct {
	forced *bool
	values map[string]string
}

// NewHeadlessManager creates a HeadlessManager that detects
// headless mode from the TTY state of os.Stdin.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{}
}

// IsHeadless returns true when prompts must not be shown.
// ForceHeadless overrides TTY detection.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	return !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// ForceHeadless overrides TTY detection.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

// SetValue records a value for a field id. Values set here are used instead
// of prompting, in both headless and interactive mode.
func (h *HeadlessManager) SetValue(fieldID, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	h.values[fieldID] = value
}

// Value returns the recorded value for a field id.
func (h *HeadlessManager) Value(fieldID string) (string, bool) {
	if h.values == nil {
		return "", false
	}
	v, ok := h.values[fieldID]
	return v, ok
}

// Take returns the recorded value for a field id and removes it.
func (h *HeadlessManager) Take(fieldID string) (string, bool) {
	v, ok := h.Value(fieldID)
	if ok {
		delete(h.values, fieldID)
	}
	return v, ok
}
