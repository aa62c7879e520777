package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/itson-folio/folio/internal/pages"
	"github.com/itson-folio/folio/internal/session"
	"github.com/itson-folio/folio/internal/ui"
)

var (
	// errReported marks a failure already shown to the user as a
	// notification; Execute does not print it again.
	errReported = errors.New("folio: failed")

	errNotInitialized = errors.New("dependencies not initialized")
	errNotLoggedIn    = errors.New("not logged in: run 'folio login' first")
)

const loginHint = "Session ended. Run 'folio login' to sign in again."

func requireDeps() error {
	if deps == nil {
		return errNotInitialized
	}
	return nil
}

func requireSession() error {
	if err := requireDeps(); err != nil {
		return err
	}
	if !session.HasSession(deps.Session) {
		return errNotLoggedIn
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// recordFlags copies the flags the user set into the headless values under
// the matching form field ids.
func recordFlags(cmd *cobra.Command, fields map[string]string) {
	for flag, field := range fields {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		deps.Headless.SetValue(field, f.Value.String())
	}
}

// runPage runs a single page and maps its transition to a command result.
// Reaching want without a failed submit is success. A redirect to login
// means the session ended; a failed submit or staying on the page was
// already reported.
func runPage(cmd *cobra.Command, p pages.Page, params url.Values, want pages.PageID) error {
	t, err := p.Run(commandContext(cmd), params)
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		return err
	}

	failed := false
	if s, ok := p.(pages.Submitter); ok {
		failed = s.Failed()
	}

	switch {
	case t.To == want && !failed:
		return nil
	case t.To == pages.PageLogin && want != pages.PageLogin:
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), loginHint)
		return errReported
	case failed, t.IsStay():
		return errReported
	default:
		return nil
	}
}

// renderCard frames a title and detail lines with the active theme.
func renderCard(title string, details ...string) string {
	t := deps.Theme
	body := t.Title.Render(title)
	if len(details) > 0 {
		body += "\n" + strings.Join(details, "\n")
	}
	if t.NoColor {
		return body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Colors.Success)).
		Padding(0, 1).
		Render(body)
}
