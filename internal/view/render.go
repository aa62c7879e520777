package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/itson-folio/folio/internal/ui"
	"github.com/itson-folio/folio/pkg/models"
)

// Renderer formats view models with the active theme.
type Renderer struct {
	theme *ui.Theme
	width int
}

// NewRenderer creates a Renderer. A width of zero disables wrapping.
func NewRenderer(theme *ui.Theme, width int) *Renderer {
	return &Renderer{theme: theme, width: width}
}

// Card renders a single project card.
func (r *Renderer) Card(vm ViewModel) string {
	t := r.theme
	lines := []string{t.Title.Render(vm.Title)}
	if vm.Description != "" {
		lines = append(lines, vm.Description)
	}

	if vm.HasRepository() {
		lines = append(lines, t.Muted.Render(vm.RepositoryLabel+": ")+t.Link.Render(vm.RepositoryURL))
	} else {
		lines = append(lines, t.Muted.Render(vm.RepositoryLabel))
	}

	if vm.Image != "" {
		lines = append(lines, t.Muted.Render("Image: ")+vm.Image)
	}

	if len(vm.Tags) > 0 {
		tags := make([]string, len(vm.Tags))
		for i, tag := range vm.Tags {
			if t.NoColor {
				tag = "[" + tag + "]"
			}
			tags[i] = t.Tag.Render(tag)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tags...))
	}

	if vm.ID != "" {
		lines = append(lines, t.Muted.Render("id: "+vm.ID))
	}

	card := t.Card
	if r.width > 0 {
		card = card.Width(r.width)
	}
	return card.Render(strings.Join(lines, "\n"))
}

// List renders the whole panel body for a collection.
func (r *Renderer) List(vms []ViewModel) string {
	if len(vms) == 0 {
		return r.theme.Muted.Render(EmptyText)
	}
	cards := make([]string, len(vms))
	for i, vm := range vms {
		cards[i] = r.Card(vm)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// Error renders the inline load failure text.
func (r *Renderer) Error(msg string) string {
	return r.theme.Error.Render(ErrorText(msg))
}

// Detail renders a single project as markdown through glamour.
func (r *Renderer) Detail(p models.Project) (string, error) {
	style := "dark"
	if r.theme.NoColor {
		style = "notty"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if r.width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.width))
	}
	gr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := gr.Render(DetailMarkdown(ProjectToView(p)))
	if err != nil {
		return "", fmt.Errorf("render project: %w", err)
	}
	return out, nil
}

// DetailMarkdown builds the markdown document for a project.
func DetailMarkdown(vm ViewModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", vm.Title)
	if vm.Description != "" {
		b.WriteString(vm.Description)
		b.WriteString("\n\n")
	}
	if vm.HasRepository() {
		fmt.Fprintf(&b, "**%s:** <%s>\n\n", vm.RepositoryLabel, vm.RepositoryURL)
	} else {
		fmt.Fprintf(&b, "**%s:** %s\n\n", RepoLabel, vm.RepositoryLabel)
	}
	if vm.Image != "" {
		fmt.Fprintf(&b, "**Image:** <%s>\n\n", vm.Image)
	}
	if len(vm.Tags) > 0 {
		b.WriteString("**Technologies:**")
		for _, tag := range vm.Tags {
			fmt.Fprintf(&b, " `%s`", tag)
		}
		b.WriteString("\n\n")
	}
	if vm.ID != "" {
		fmt.Fprintf(&b, "_id: %s_\n", vm.ID)
	}
	return b.String()
}
