package pages

import (
	"context"
	"net/url"

	"golang.org/x/sync/singleflight"

	"github.com/itson-folio/folio/internal/view"
	"github.com/itson-folio/folio/pkg/models"
)

// MsgConfirmDelete is the delete confirmation question.
const MsgConfirmDelete = "Delete project?"

// ProjectList renders the project panel and handles its card actions.
type ProjectList struct {
	env      *Env
	deletes  singleflight.Group
	projects []models.Project
	err      error
	declined bool
}

// NewProjectList creates a ProjectList.
func NewProjectList(env *Env) *ProjectList {
	return &ProjectList{env: env}
}

// Projects returns the collection from the last successful render.
func (l *ProjectList) Projects() []models.Project {
	return l.projects
}

// Err returns the failure of the last Render or Delete, if any.
func (l *ProjectList) Err() error {
	return l.err
}

// Declined reports whether the last Delete was not confirmed.
func (l *ProjectList) Declined() bool {
	return l.declined
}

// Render fetches the full collection and replaces the panel with it. The
// loading placeholder is shown first. A failed fetch is shown inline; when
// unauthorized the session is cleared and the transition leads to login.
func (l *ProjectList) Render(ctx context.Context) Transition {
	l.env.Panel.Loading(view.LoadingText)

	projects, err := l.env.API.ListProjects(ctx)
	l.err = err
	if err != nil {
		l.projects = nil
		l.env.Panel.Replace(l.env.Renderer.Error(err.Error()))
		return l.env.unauthorized(err, PageHome)
	}

	l.projects = projects
	l.env.Panel.Replace(l.env.Renderer.List(view.ProjectsToViews(projects)))
	return Stay()
}

// Edit returns the transition to the edit page for id.
func (l *ProjectList) Edit(id string) Transition {
	return Transition{To: PageProjectEdit, Params: url.Values{"id": {id}}}
}

// Delete asks for confirmation, deletes the project and renders the list
// again. Concurrent deletes of the same id share one request and one
// re-render.
func (l *ProjectList) Delete(ctx context.Context, id string) (Transition, error) {
	ok, err := l.env.Prompt.Confirm(ctx, MsgConfirmDelete)
	if err != nil {
		return Stay(), err
	}
	l.declined = !ok
	if !ok {
		return Stay(), nil
	}

	v, _, _ := l.deletes.Do(id, func() (any, error) {
		if err := l.env.API.DeleteProject(ctx, id); err != nil {
			l.err = err
			return l.env.fail(err, PageHome), nil
		}
		return l.Render(ctx), nil
	})
	return v.(Transition), nil
}

// find returns the project with the given id from the last render.
func (l *ProjectList) find(id string) (models.Project, bool) {
	return findProject(l.projects, id)
}

func findProject(ps []models.Project, id string) (models.Project, bool) {
	for _, p := range ps {
		if p.ID == id || p.LegacyID == id {
			return p, true
		}
	}
	return models.Project{}, false
}
