package pages

import (
	"context"
	"sync"
	"time"

	"github.com/itson-folio/folio/internal/api"
	"github.com/itson-folio/folio/internal/notify"
	"github.com/itson-folio/folio/internal/session"
	"github.com/itson-folio/folio/internal/ui"
	"github.com/itson-folio/folio/internal/view"
	"github.com/itson-folio/folio/pkg/models"
)

// fakeAPI records calls and returns canned results.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	registered []models.RegisterRequest
	created    []models.ProjectInput
	updated    map[string]models.ProjectInput

	loginRes  *models.LoginResponse
	loginErr  error
	registErr error
	projects  []models.Project
	listErr   error
	getErr    error
	mutateErr error
	// deleteGate blocks DeleteProject until closed when non-nil.
	deleteGate chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updated: make(map[string]models.ProjectInput)}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Register(_ context.Context, req models.RegisterRequest) error {
	f.record("register")
	f.mu.Lock()
	f.registered = append(f.registered, req)
	f.mu.Unlock()
	return f.registErr
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (*models.LoginResponse, error) {
	f.record("login")
	return f.loginRes, f.loginErr
}

func (f *fakeAPI) ListProjects(context.Context) ([]models.Project, error) {
	f.record("list")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Project(nil), f.projects...), f.listErr
}

func (f *fakeAPI) GetProject(_ context.Context, id string) (*models.Project, error) {
	f.record("get " + id)
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := findProject(f.projects, id)
	if !ok {
		return nil, &api.Error{Status: 404, Message: "Project not found"}
	}
	return &p, nil
}

func (f *fakeAPI) CreateProject(_ context.Context, in models.ProjectInput) error {
	f.record("create")
	f.mu.Lock()
	f.created = append(f.created, in)
	f.mu.Unlock()
	return f.mutateErr
}

func (f *fakeAPI) UpdateProject(_ context.Context, id string, in models.ProjectInput) error {
	f.record("update " + id)
	f.mu.Lock()
	f.updated[id] = in
	f.mu.Unlock()
	return f.mutateErr
}

func (f *fakeAPI) DeleteProject(_ context.Context, id string) error {
	f.record("delete " + id)
	if f.deleteGate != nil {
		<-f.deleteGate
	}
	return f.mutateErr
}

// fakePrompter fills forms from values and answers confirms and choices.
type fakePrompter struct {
	values  map[string]string
	confirm bool
	choices map[string][]string
	fillErr error
	filled  []*ui.Form
}

func (p *fakePrompter) Fill(_ context.Context, form *ui.Form) error {
	if p.fillErr != nil {
		return p.fillErr
	}
	for id, v := range p.values {
		form.Set(id, v)
	}
	p.filled = append(p.filled, form)
	return nil
}

func (p *fakePrompter) Confirm(context.Context, string) (bool, error) {
	return p.confirm, nil
}

func (p *fakePrompter) Choose(_ context.Context, key, _ string, _ []ui.Choice) (string, error) {
	queue := p.choices[key]
	if len(queue) == 0 {
		return "", ui.ErrHeadlessNoValue
	}
	p.choices[key] = queue[1:]
	return queue[0], nil
}

// recordNotifier keeps every shown message.
type recordNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (n *recordNotifier) Show(text string, sev notify.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, notify.Message{Text: text, Severity: sev})
}

func (n *recordNotifier) last() notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.msgs) == 0 {
		return notify.Message{}
	}
	return n.msgs[len(n.msgs)-1]
}

func (n *recordNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.msgs)
}

// recordPanel keeps the panel history.
type recordPanel struct {
	mu     sync.Mutex
	events []string
}

func (p *recordPanel) Loading(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "loading:"+text)
}

func (p *recordPanel) Replace(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, content)
}

func (p *recordPanel) content() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return ""
	}
	return p.events[len(p.events)-1]
}

type fixture struct {
	env      *Env
	api      *fakeAPI
	prompt   *fakePrompter
	notifier *recordNotifier
	panel    *recordPanel
	store    *session.KVStore
}

func newFixture() *fixture {
	f := &fixture{
		api:      newFakeAPI(),
		prompt:   &fakePrompter{values: map[string]string{}, choices: map[string][]string{}},
		notifier: &recordNotifier{},
		panel:    &recordPanel{},
		store:    session.NewStore(session.NewMemoryBackend(), nil),
	}
	f.env = &Env{
		Session:  f.store,
		API:      f.api,
		Notify:   f.notifier,
		Prompt:   f.prompt,
		Panel:    f.panel,
		Renderer: view.NewRenderer(ui.NewTheme(ui.ThemeConfig{NoColor: true}), 0),
	}
	return f
}

func (f *fixture) signIn() {
	_ = f.store.SaveToken("tok")
	_ = f.store.SaveUser(models.User{"id": "u1"})
}

func noSleep(context.Context, time.Duration) error { return nil }

func title(s string) *string { return &s }
