// Package view maps projects onto display-ready values and renders them for
// the terminal. ProjectToView is pure; Renderer only formats its output.
package view

import (
	"net/url"
	"strings"

	"github.com/itson-folio/folio/pkg/models"
)

// Placeholder texts shown in the project panel.
const (
	LoadingText   = "Loading projects..."
	EmptyText     = "No projects yet."
	UntitledText  = "(No title)"
	RepoLabel     = "Repository"
	NoRepoLabel   = "—"
	errorTextHead = "Error loading projects: "
)

// ErrorText is the inline panel text for a failed load.
func ErrorText(msg string) string {
	return errorTextHead + msg
}

// ViewModel is everything a project card shows.
type ViewModel struct {
	ID          string
	Title       string
	Description string
	// RepositoryURL is empty when the project has no repository; the link
	// is then inert and shows RepositoryLabel "—".
	RepositoryURL   string
	RepositoryLabel string
	// Image is empty when no valid image URL exists; no image line is shown.
	Image string
	// Tags is nil when there are no technologies; no tag row is shown.
	Tags []string
}

// HasRepository reports whether the repository link is live.
func (v ViewModel) HasRepository() bool { return v.RepositoryURL != "" }

// ProjectToView maps a project to its card values.
func ProjectToView(p models.Project) ViewModel {
	vm := ViewModel{
		ID:              p.ResolveID(),
		Title:           p.TitleOr(UntitledText),
		Description:     p.Description,
		RepositoryLabel: NoRepoLabel,
		Image:           representativeImage(p),
	}
	if p.Repository != "" {
		vm.RepositoryURL = p.Repository
		vm.RepositoryLabel = RepoLabel
	}
	for _, t := range p.Technologies {
		if t = strings.TrimSpace(t); t != "" {
			vm.Tags = append(vm.Tags, t)
		}
	}
	return vm
}

// ProjectsToViews maps a collection in order.
func ProjectsToViews(ps []models.Project) []ViewModel {
	out := make([]ViewModel, len(ps))
	for i, p := range ps {
		out[i] = ProjectToView(p)
	}
	return out
}

// representativeImage picks images[0], else image, and drops the candidate
// unless it parses as an absolute URL.
func representativeImage(p models.Project) string {
	candidate := ""
	if len(p.Images) > 0 {
		candidate = p.Images[0]
	}
	if candidate == "" {
		candidate = p.Image
	}
	if !IsValidURL(candidate) {
		return ""
	}
	return candidate
}

// IsValidURL reports whether s is a syntactically valid absolute URL.
func IsValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}
