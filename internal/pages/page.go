// Package pages holds the page controllers of the client. Each controller
// runs one page to completion and returns the Transition to follow; the
// Router turns transitions into page changes.
package pages

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/itson-folio/folio/internal/api"
	"github.com/itson-folio/folio/internal/notify"
	"github.com/itson-folio/folio/internal/session"
	"github.com/itson-folio/folio/internal/ui"
	"github.com/itson-folio/folio/internal/view"
	"github.com/itson-folio/folio/pkg/models"
)

// PageID identifies a page in the routing table.
type PageID string

// Page identifiers.
const (
	PageRegister    PageID = "register"
	PageLogin       PageID = "login"
	PageHome        PageID = "home"
	PageProjectNew  PageID = "project-new"
	PageProjectEdit PageID = "project-edit"
)

// Redirect delays after a successful submit.
const (
	RegisterRedirectDelay = 1200 * time.Millisecond
	ProjectRedirectDelay  = 600 * time.Millisecond
)

// Transition is the outcome of running a page. The zero value means the
// page remains current.
type Transition struct {
	To     PageID
	Params url.Values
	// Replace navigates without keeping the current page in history.
	Replace bool
	// Delay is waited before the next page starts.
	Delay time.Duration
	// Quit ends the router loop.
	Quit bool
}

// Stay returns the zero Transition.
func Stay() Transition { return Transition{} }

// GoTo returns a Transition to the given page.
func GoTo(to PageID) Transition { return Transition{To: to} }

// IsStay reports whether the transition keeps the current page.
func (t Transition) IsStay() bool { return t.To == "" && !t.Quit }

// API is the subset of the portfolio API the pages call.
type API interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, in models.ProjectInput) error
	UpdateProject(ctx context.Context, id string, in models.ProjectInput) error
	DeleteProject(ctx context.Context, id string) error
}

// Compile-time interface check.
var _ API = (*api.Client)(nil)

// Env carries the dependencies every controller receives at construction.
type Env struct {
	Session  session.Store
	API      API
	Notify   notify.Notifier
	Prompt   ui.Prompter
	Panel    ui.Panel
	Renderer *view.Renderer
	Logger   *slog.Logger
	// SharedForm selects the single-page variant: Home creates and edits
	// projects in place instead of navigating to the project pages.
	SharedForm bool
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// gate redirects to login when no session token is stored.
func (e *Env) gate() (Transition, bool) {
	if session.HasSession(e.Session) {
		return Stay(), true
	}
	return Transition{To: PageLogin, Replace: true}, false
}

// fail reports err to the user. Unauthorized errors also end the session and
// send the user to login, unless the failing page is login itself.
func (e *Env) fail(err error, current PageID) Transition {
	e.Notify.Show(err.Error(), notify.Error)
	return e.unauthorized(err, current)
}

// Report shows err for work done outside a routed page, such as a one-off
// detail view, and applies the same unauthorized rule as the pages.
func (e *Env) Report(err error) Transition {
	return e.fail(err, PageHome)
}

func (e *Env) unauthorized(err error, current PageID) Transition {
	if !api.IsUnauthorized(err) {
		return Stay()
	}
	e.logout()
	if current == PageLogin {
		return Stay()
	}
	return GoTo(PageLogin)
}

func (e *Env) logout() {
	if err := e.Session.Clear(); err != nil {
		e.logger().Warn("clear session", "error", err)
	}
}

// Page is a runnable page controller.
type Page interface {
	Run(ctx context.Context, params url.Values) (Transition, error)
}

// Factory builds the controller for a page.
type Factory func(env *Env) Page

// Routes maps page identifiers to controller factories.
var Routes = map[PageID]Factory{
	PageRegister:    func(env *Env) Page { return NewRegister(env) },
	PageLogin:       func(env *Env) Page { return NewLogin(env) },
	PageHome:        func(env *Env) Page { return NewHome(env) },
	PageProjectNew:  func(env *Env) Page { return NewProjectNew(env) },
	PageProjectEdit: func(env *Env) Page { return NewProjectEdit(env) },
}
