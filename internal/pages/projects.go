package pages

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/itson-folio/folio/internal/notify"
	"github.com/itson-folio/folio/internal/ui"
	"github.com/itson-folio/folio/pkg/models"
)

// Messages shown by the project pages.
const (
	MsgProjectCreated = "Project created"
	MsgProjectUpdated = "Project updated"
	MsgMissingID      = "Missing project id"
	MsgNotFound       = "Project not found"
)

// ErrProjectNotFound is returned when neither the direct fetch nor the list
// scan finds a project.
var ErrProjectNotFound = errors.New(MsgNotFound)

// ProjectFieldID is the hidden field that switches the shared form between
// create and update.
const ProjectFieldID = "projectId"

// ProjectForm returns the project form, pre-filled from p when non-nil.
// Lists are shown comma-separated.
func ProjectForm(title string, p *models.Project) *ui.Form {
	f := &ui.Form{
		Title: title,
		Fields: []ui.Field{
			{ID: "title", Title: "Title"},
			{ID: "description", Title: "Description", Kind: ui.FieldMultiline},
			{ID: "technologies", Title: "Technologies", Description: "Comma-separated", Placeholder: "Go, Redis"},
			{ID: "repository", Title: "Repository URL", Placeholder: "https://github.com/..."},
			{ID: "images", Title: "Image URLs", Description: "Comma-separated"},
			{ID: ProjectFieldID, Kind: ui.FieldHidden},
		},
	}
	if p == nil {
		return f
	}
	f.Set("title", p.TitleOr(""))
	f.Set("description", p.Description)
	f.Set("technologies", models.JoinCSV(p.Technologies))
	f.Set("repository", p.Repository)
	f.Set("images", models.JoinCSV(p.Images))
	f.Set(ProjectFieldID, p.ResolveID())
	return f
}

// ProjectInputFromForm builds the create/update payload. The owner is the
// session user.
func ProjectInputFromForm(f *ui.Form, user models.User) models.ProjectInput {
	return models.ProjectInput{
		Title:        strings.TrimSpace(f.Value("title")),
		Description:  strings.TrimSpace(f.Value("description")),
		UserID:       user.ID(),
		Technologies: models.ParseCSV(f.Value("technologies")),
		Repository:   strings.TrimSpace(f.Value("repository")),
		Images:       models.ParseCSV(f.Value("images")),
	}
}

// LoadProject fetches a project by id, falling back to scanning the full
// collection when the direct fetch fails.
func LoadProject(ctx context.Context, a API, id string) (*models.Project, error) {
	p, err := a.GetProject(ctx, id)
	if err == nil {
		return p, nil
	}

	list, lerr := a.ListProjects(ctx)
	if lerr != nil {
		return nil, lerr
	}
	found, ok := findProject(list, id)
	if !ok {
		return nil, ErrProjectNotFound
	}
	return &found, nil
}

// ProjectNew is the create page.
type ProjectNew struct {
	env    *Env
	failed bool
}

// NewProjectNew creates the create page.
func NewProjectNew(env *Env) *ProjectNew {
	return &ProjectNew{env: env}
}

// Failed reports whether the last Run ended on a failed submit.
func (p *ProjectNew) Failed() bool { return p.failed }

// Run creates a project from the form.
func (p *ProjectNew) Run(ctx context.Context, _ url.Values) (Transition, error) {
	if t, ok := p.env.gate(); !ok {
		return t, nil
	}

	form := ProjectForm("New project", nil)
	if err := p.env.Prompt.Fill(ctx, form); err != nil {
		return Stay(), err
	}

	in := ProjectInputFromForm(form, p.env.Session.User())
	if err := p.env.API.CreateProject(ctx, in); err != nil {
		p.failed = true
		return p.env.fail(err, PageProjectNew), nil
	}

	p.env.Notify.Show(MsgProjectCreated, notify.Success)
	return Transition{To: PageHome, Delay: ProjectRedirectDelay}, nil
}

// ProjectEdit is the edit page. It expects the project id in the "id"
// parameter.
type ProjectEdit struct {
	env    *Env
	failed bool
}

// NewProjectEdit creates the edit page.
func NewProjectEdit(env *Env) *ProjectEdit {
	return &ProjectEdit{env: env}
}

// Failed is true only for a failed submit; load failures do not count.
func (p *ProjectEdit) Failed() bool { return p.failed }

// Run loads the project, pre-fills the form and submits a full replace.
func (p *ProjectEdit) Run(ctx context.Context, params url.Values) (Transition, error) {
	if t, ok := p.env.gate(); !ok {
		return t, nil
	}

	id := params.Get("id")
	if id == "" {
		p.env.Notify.Show(MsgMissingID, notify.Error)
		return Stay(), nil
	}

	project, err := LoadProject(ctx, p.env.API, id)
	if err != nil {
		return p.env.fail(err, PageProjectEdit), nil
	}

	form := ProjectForm("Edit project", project)
	if err := p.env.Prompt.Fill(ctx, form); err != nil {
		return Stay(), err
	}

	in := ProjectInputFromForm(form, p.env.Session.User())
	if err := p.env.API.UpdateProject(ctx, id, in); err != nil {
		p.failed = true
		return p.env.fail(err, PageProjectEdit), nil
	}

	p.env.Notify.Show(MsgProjectUpdated, notify.Success)
	return Transition{To: PageHome, Delay: ProjectRedirectDelay}, nil
}
