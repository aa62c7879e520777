package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Panel is a replaceable output region, the terminal counterpart of a list
// container: it shows a loading placeholder and is then replaced in one step.
type Panel interface {
	Loading(text string)
	Replace(content string)
}

// TermPanel writes panel content to a terminal. A loading placeholder is
// shown as a spinner on the status writer, which Replace stops before
// printing the new content on the main writer. Scripted runs therefore see
// only the final content on stdout.
type TermPanel struct {
	mu       sync.Mutex
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
	status   io.Writer
	spinner  Spinner
	content  string
}

// Compile-time interface check.
var _ Panel = (*TermPanel)(nil)

// NewTermPanel creates a TermPanel writing content to w and the loading
// placeholder to status. A nil status uses w.
func NewTermPanel(theme *Theme, hm *HeadlessManager, w, status io.Writer) *TermPanel {
	if status == nil {
		status = w
	}
	return &TermPanel{theme: theme, headless: hm, writer: w, status: status}
}

// Loading shows text as the placeholder, replacing whatever was shown.
func (p *TermPanel) Loading(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.content = text
	p.spinner = NewSpinner(p.theme, p.headless, p.status, text)
}

// Replace swaps the panel content for content.
func (p *TermPanel) Replace(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.content = content
	if content == "" {
		return
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, _ = fmt.Fprint(p.writer, content)
}

// Content returns what the panel currently shows.
func (p *TermPanel) Content() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.content
}

func (p *TermPanel) stopLocked() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}
