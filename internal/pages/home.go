package pages

import (
	"context"
	"errors"
	"net/url"

	"github.com/itson-folio/folio/internal/notify"
	"github.com/itson-folio/folio/internal/ui"
	"github.com/itson-folio/folio/internal/view"
)

// Home actions.
const (
	ActionRefresh = "refresh"
	ActionNew     = "new"
	ActionEdit    = "edit"
	ActionDelete  = "delete"
	ActionLogout  = "logout"
	ActionQuit    = "quit"
)

var homeActions = []ui.Choice{
	{Label: "Refresh", Value: ActionRefresh},
	{Label: "New project", Value: ActionNew},
	{Label: "Edit a project", Value: ActionEdit},
	{Label: "Delete a project", Value: ActionDelete},
	{Label: "Log out", Value: ActionLogout},
	{Label: "Quit", Value: ActionQuit},
}

// Home is the project list page.
type Home struct {
	env  *Env
	list *ProjectList
}

// NewHome creates the home page.
func NewHome(env *Env) *Home {
	return &Home{env: env, list: NewProjectList(env)}
}

// Logout clears the session and returns the transition to login.
func (h *Home) Logout() Transition {
	h.env.logout()
	return GoTo(PageLogin)
}

// Run renders the list and then serves actions until one leaves the page.
// Without a TTY and without a recorded action the page stays after the
// first render.
func (h *Home) Run(ctx context.Context, _ url.Values) (Transition, error) {
	if t, ok := h.env.gate(); !ok {
		return t, nil
	}

	if t := h.list.Render(ctx); !t.IsStay() {
		return t, nil
	}

	for {
		action, err := h.env.Prompt.Choose(ctx, ui.ActionKey, "What next?", homeActions)
		if errors.Is(err, ui.ErrHeadlessNoValue) {
			return Stay(), nil
		}
		if err != nil {
			return Stay(), err
		}

		t, err := h.do(ctx, action)
		if err != nil {
			return Stay(), err
		}
		if !t.IsStay() {
			return t, nil
		}
	}
}

func (h *Home) do(ctx context.Context, action string) (Transition, error) {
	switch action {
	case ActionRefresh:
		return h.list.Render(ctx), nil
	case ActionNew:
		if !h.env.SharedForm {
			return GoTo(PageProjectNew), nil
		}
		return h.Submit(ctx, "")
	case ActionEdit:
		id, err := h.pickProject(ctx, "Edit which project?")
		if err != nil || id == "" {
			return Stay(), err
		}
		if !h.env.SharedForm {
			return h.list.Edit(id), nil
		}
		return h.Submit(ctx, id)
	case ActionDelete:
		id, err := h.pickProject(ctx, "Delete which project?")
		if err != nil || id == "" {
			return Stay(), err
		}
		return h.list.Delete(ctx, id)
	case ActionLogout:
		return h.Logout(), nil
	case ActionQuit:
		return Transition{Quit: true}, nil
	default:
		h.env.logger().Warn("unknown home action", "action", action)
		return Stay(), nil
	}
}

// pickProject asks which listed project to act on. An empty list yields "".
func (h *Home) pickProject(ctx context.Context, title string) (string, error) {
	projects := h.list.Projects()
	if len(projects) == 0 {
		h.env.Notify.Show(view.EmptyText, notify.Info)
		return "", nil
	}
	choices := make([]ui.Choice, len(projects))
	for i, p := range projects {
		vm := view.ProjectToView(p)
		choices[i] = ui.Choice{Label: vm.Title + " (" + vm.ID + ")", Value: vm.ID}
	}
	return h.env.Prompt.Choose(ctx, ui.ProjectKey, title, choices)
}

// Submit runs the shared project form. An empty id creates a project; a
// non-empty id pre-fills the form from the listed project and updates it.
// The hidden project id field decides which call is made. The list is
// rendered again after a successful submit.
func (h *Home) Submit(ctx context.Context, id string) (Transition, error) {
	form := ProjectForm("New project", nil)
	if id != "" {
		p, ok := h.list.find(id)
		if !ok {
			loaded, err := LoadProject(ctx, h.env.API, id)
			if err != nil {
				return h.env.fail(err, PageHome), nil
			}
			p = *loaded
		}
		form = ProjectForm("Edit project", &p)
		form.Set(ProjectFieldID, id)
	}

	if err := h.env.Prompt.Fill(ctx, form); err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			return Stay(), nil
		}
		return Stay(), err
	}

	in := ProjectInputFromForm(form, h.env.Session.User())
	var err error
	msg := MsgProjectCreated
	if pid := form.Value(ProjectFieldID); pid != "" {
		err = h.env.API.UpdateProject(ctx, pid, in)
		msg = MsgProjectUpdated
	} else {
		err = h.env.API.CreateProject(ctx, in)
	}
	if err != nil {
		return h.env.fail(err, PageHome), nil
	}

	h.env.Notify.Show(msg, notify.Success)
	return h.list.Render(ctx), nil
}
