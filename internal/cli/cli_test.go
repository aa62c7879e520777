package cli

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"

	"github.com/itson-folio/folio/internal/api"
	"github.com/itson-folio/folio/internal/config"
	"github.com/itson-folio/folio/internal/mockapi"
	"github.com/itson-folio/folio/internal/notify"
	"github.com/itson-folio/folio/internal/session"
	"github.com/itson-folio/folio/internal/ui"
	"github.com/itson-folio/folio/internal/view"
	"github.com/itson-folio/folio/pkg/models"
)

type testEnv struct {
	srv    *mockapi.Server
	store  *session.KVStore
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

// setupDeps wires Dependencies against an in-process mock API and installs
// them with SetDeps for the duration of the test.
func setupDeps(t *testing.T) *testEnv {
	t.Helper()

	srv := mockapi.New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	env := &testEnv{
		srv:    srv,
		store:  session.NewStore(session.NewMemoryBackend(), nil),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}

	theme := ui.NewTheme(ui.ThemeConfig{NoColor: true})
	hm := ui.NewHeadlessManager()
	hm.ForceHeadless(true)

	SetDeps(&Dependencies{
		Logger:   slog.New(slog.DiscardHandler),
		Theme:    theme,
		Headless: hm,
		Session:  env.store,
		API:      api.NewClient(ts.URL+mockapi.BasePath, env.store),
		Notifier: notify.NewSurface(notify.WithWriter(env.errOut)),
		Prompt:   ui.NewPrompts(theme, hm),
		Panel:    ui.NewTermPanel(theme, hm, env.out, env.errOut),
		Renderer: view.NewRenderer(theme, 0),
		Out:      env.out,
	})
	t.Cleanup(func() { SetDeps(nil) })
	return env
}

// signIn creates an account on the mock and stores its session.
func (e *testEnv) signIn(t *testing.T) string {
	t.Helper()
	id := e.srv.AddAccount("Ana", "ana@itson.mx", "123456", "pw")
	if err := e.store.SaveToken(e.srv.IssueToken(id)); err != nil {
		t.Fatal(err)
	}
	if err := e.store.SaveUser(models.User{"id": id, "name": "Ana", "email": "ana@itson.mx"}); err != nil {
		t.Fatal(err)
	}
	return id
}

func run(e *testEnv, cmd *cobra.Command, args ...string) error {
	cmd.SetOut(e.out)
	cmd.SetErr(e.errOut)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRootCmd_Subcommands(t *testing.T) {
	expected := []string{"register", "login", "logout", "whoami", "projects", "app", "config"}
	for _, name := range expected {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root should have %q subcommand", name)
		}
	}
	for _, cmd := range projectsCmd.Commands() {
		if cmd.Short == "" {
			t.Errorf("projects subcommand %q should have a short description", cmd.Name())
		}
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "api-url", "session", "no-color", "headless", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestRegisterCmd(t *testing.T) {
	e := setupDeps(t)

	err := run(e, newRegisterCmd(),
		"--name", "Ana", "--email", "ana@itson.mx", "--itson-id", "123456", "--password", "pw")
	if err != nil {
		t.Fatalf("register: %v (stderr: %s)", err, e.errOut)
	}
	if !strings.Contains(e.out.String(), "folio login") {
		t.Errorf("stdout = %q", e.out)
	}
	if got := e.srv.Requests(); len(got) != 1 || got[0] != "POST /api/v1/auth/register" {
		t.Errorf("requests = %v", got)
	}
}

func TestRegisterCmd_LocalValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"bad id", []string{"--itson-id", "12a456", "--password", "pw"}, "ITSON ID must be 6 digits"},
		{"mismatch", []string{"--itson-id", "123456", "--password", "pw", "--password-confirm", "other"}, "Passwords do not match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupDeps(t)
			args := append([]string{"--name", "Ana", "--email", "a@itson.mx"}, tt.args...)

			err := run(e, newRegisterCmd(), args...)
			if !errors.Is(err, errReported) {
				t.Fatalf("err = %v, want errReported", err)
			}
			if reqs := e.srv.Requests(); len(reqs) != 0 {
				t.Errorf("requests = %v, want none", reqs)
			}
			if !strings.Contains(e.errOut.String(), tt.msg) {
				t.Errorf("stderr = %q, want %q", e.errOut, tt.msg)
			}
		})
	}
}

func TestRegisterCmd_Unauthorized(t *testing.T) {
	e := setupDeps(t)
	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"registration closed"}`))
	}))
	t.Cleanup(closed.Close)
	deps.API = api.NewClient(closed.URL, e.store)

	err := run(e, newRegisterCmd(),
		"--name", "A", "--email", "a@b.c", "--itson-id", "123456", "--password", "pw")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if strings.Contains(e.out.String(), "folio login") {
		t.Errorf("rejected register printed the success hint: %q", e.out)
	}
	if !strings.Contains(e.errOut.String(), "registration closed") {
		t.Errorf("stderr = %q", e.errOut)
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	e := setupDeps(t)
	e.srv.AddAccount("Ana", "ana@itson.mx", "123456", "pw")

	if err := run(e, newLoginCmd(), "--email", "ana@itson.mx", "--password", "pw"); err != nil {
		t.Fatalf("login: %v (stderr: %s)", err, e.errOut)
	}
	if e.store.Token() == "" {
		t.Fatal("token not stored")
	}

	e.out.Reset()
	if err := run(e, newWhoamiCmd()); err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(e.out.String(), "ana@itson.mx") || !strings.Contains(e.out.String(), "123456") {
		t.Errorf("whoami output = %q", e.out)
	}

	if err := run(e, newLogoutCmd()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if e.store.Token() != "" {
		t.Error("logout should clear the token")
	}
	if err := run(e, newWhoamiCmd()); !errors.Is(err, errNotLoggedIn) {
		t.Errorf("whoami after logout err = %v", err)
	}
}

func TestLoginCmd_BadCredentials(t *testing.T) {
	e := setupDeps(t)

	err := run(e, newLoginCmd(), "--email", "nobody@itson.mx", "--password", "x")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(e.errOut.String(), "Invalid credentials") {
		t.Errorf("stderr = %q", e.errOut)
	}
}

func TestProjectsLifecycle(t *testing.T) {
	e := setupDeps(t)
	owner := e.signIn(t)

	err := run(e, newProjectsNewCmd(),
		"--title", "Folio", "--description", "A CLI", "--technologies", "Go, Cobra",
		"--repository", "https://github.com/itson/folio")
	if err != nil {
		t.Fatalf("new: %v (stderr: %s)", err, e.errOut)
	}
	projects := e.srv.Projects()
	if len(projects) != 1 || projects[0].UserID != owner {
		t.Fatalf("projects = %+v", projects)
	}
	id := projects[0].ResolveID()

	e.out.Reset()
	if err := run(e, newProjectsListCmd()); err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Folio", "[Go]", "[Cobra]", "Repository"} {
		if !strings.Contains(e.out.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, e.out)
		}
	}
	if strings.Contains(e.out.String(), view.LoadingText) {
		t.Errorf("loading placeholder leaked into stdout:\n%s", e.out)
	}
	if !strings.Contains(e.errOut.String(), view.LoadingText) {
		t.Errorf("loading placeholder missing from stderr: %q", e.errOut)
	}

	e.out.Reset()
	if err := run(e, newProjectsShowCmd(), id); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(e.out.String(), "Folio") {
		t.Errorf("show output = %q", e.out)
	}

	if err := run(e, newProjectsEditCmd(), id, "--title", "Folio 2"); err != nil {
		t.Fatalf("edit: %v (stderr: %s)", err, e.errOut)
	}
	edited := e.srv.Projects()[0]
	if edited.TitleOr("") != "Folio 2" || edited.Description != "A CLI" || len(edited.Technologies) != 2 {
		t.Errorf("edited = %+v", edited)
	}

	e.out.Reset()
	if err := run(e, newProjectsDeleteCmd(), id); err != nil {
		t.Fatalf("delete without --yes: %v", err)
	}
	if !strings.Contains(e.out.String(), "Not deleted.") || len(e.srv.Projects()) != 1 {
		t.Errorf("unconfirmed delete removed the project: %q", e.out)
	}

	e.out.Reset()
	if err := run(e, newProjectsDeleteCmd(), id, "--yes"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(e.srv.Projects()) != 0 {
		t.Error("project should be deleted")
	}
	if !strings.Contains(e.out.String(), view.EmptyText) {
		t.Errorf("delete should re-render the list: %q", e.out)
	}
}

func TestProjectsCmd_RequiresSession(t *testing.T) {
	e := setupDeps(t)
	for _, cmd := range []*cobra.Command{newProjectsListCmd(), newProjectsNewCmd()} {
		if err := run(e, cmd); !errors.Is(err, errNotLoggedIn) {
			t.Errorf("%s err = %v, want errNotLoggedIn", cmd.Name(), err)
		}
	}
}

func TestProjectsCmd_ExpiredSession(t *testing.T) {
	e := setupDeps(t)
	e.signIn(t)
	e.srv.RevokeTokens()

	err := run(e, newProjectsListCmd())
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if e.store.Token() != "" {
		t.Error("expired session should be cleared")
	}
	if !strings.Contains(e.errOut.String(), "folio login") {
		t.Errorf("stderr = %q", e.errOut)
	}
	if !strings.Contains(e.out.String(), "Error loading projects:") {
		t.Errorf("stdout = %q", e.out)
	}
}

func TestProjectsShow_ExpiredSession(t *testing.T) {
	e := setupDeps(t)
	e.signIn(t)
	e.srv.RevokeTokens()

	err := run(e, newProjectsShowCmd(), "p1")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if e.store.Token() != "" || len(e.store.User()) != 0 {
		t.Error("expired session should be cleared")
	}
	if !strings.Contains(e.errOut.String(), loginHint) {
		t.Errorf("stderr = %q", e.errOut)
	}
}

func TestProjectsShow_NotFound(t *testing.T) {
	e := setupDeps(t)
	e.signIn(t)

	err := run(e, newProjectsShowCmd(), "missing")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(e.errOut.String(), "Project not found") {
		t.Errorf("stderr = %q", e.errOut)
	}
}

func TestAppCmd_Headless(t *testing.T) {
	e := setupDeps(t)
	e.signIn(t)
	e.srv.Seed(models.Project{ID: "p1", Title: ptr("Seeded")})
	deps.Headless.SetValue(ui.ActionKey, "quit")

	if err := run(e, newAppCmd()); err != nil {
		t.Fatalf("app: %v", err)
	}
	if !strings.Contains(e.out.String(), "Seeded") {
		t.Errorf("app output = %q", e.out)
	}
}

func TestAppCmd_UnknownStart(t *testing.T) {
	e := setupDeps(t)
	if err := run(e, newAppCmd(), "--start", "nowhere"); err == nil {
		t.Fatal("expected unknown page error")
	}
}

func TestCommands_WithoutDeps(t *testing.T) {
	SetDeps(nil)
	cmd := newLogoutCmd()
	cmd.SetArgs(nil)
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); !errors.Is(err, errNotInitialized) {
		t.Errorf("err = %v, want errNotInitialized", err)
	}
}

func TestConfigCmd_SetAndShow(t *testing.T) {
	for _, key := range []string{config.EnvConfigDir, config.EnvAPIURL, config.EnvSessionBackend, config.EnvRedisAddr, config.EnvLogLevel, config.EnvNoColor} {
		t.Setenv(key, "")
	}
	e := setupDeps(t)
	dir := t.TempDir()
	mgr := config.NewConfigManager(nil)
	if _, err := mgr.Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	deps.Config = mgr

	if err := run(e, newConfigShowCmd()); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(e.out.String(), "not saved") {
		t.Errorf("show before save = %q", e.out)
	}

	if err := run(e, newConfigSetCmd(), "ui.width", "50"); err != nil {
		t.Fatalf("set: %v", err)
	}
	reloaded, err := config.NewConfigManager(nil).Load(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.UI.Width != 50 {
		t.Errorf("saved width = %d", reloaded.UI.Width)
	}

	e.out.Reset()
	if err := run(e, newConfigShowCmd()); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(e.out.String(), "width: 50") || strings.Contains(e.out.String(), "not saved") {
		t.Errorf("show after save = %q", e.out)
	}

	for _, args := range [][]string{{"ui.width", "wide"}, {"ui.colour", "x"}, {"session.backend", "floppy"}} {
		if err := run(e, newConfigSetCmd(), args...); err == nil {
			t.Errorf("set %v should fail", args)
		}
	}
	if mgr.Get().UI.Width != 50 || mgr.Get().Session.Backend != config.BackendFile {
		t.Errorf("rejected sets changed the config: %+v", mgr.Get())
	}
}

func TestInitDependencies(t *testing.T) {
	for _, key := range []string{config.EnvConfigDir, config.EnvAPIURL, config.EnvSessionBackend, config.EnvRedisAddr, config.EnvLogLevel, config.EnvNoColor} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	var out, errOut bytes.Buffer

	d, err := InitDependencies(Options{
		ConfigDir: dir,
		APIURL:    "http://localhost:8787/api/v1",
		NoColor:   true,
		Headless:  true,
		Out:       &out,
		Err:       &errOut,
	})
	if err != nil {
		t.Fatalf("InitDependencies: %v", err)
	}
	if d.Config.Get().API.BaseURL != "http://localhost:8787/api/v1" {
		t.Errorf("BaseURL = %q", d.Config.Get().API.BaseURL)
	}
	if !d.Theme.NoColor || !d.Headless.IsHeadless() {
		t.Error("flags not applied")
	}

	// The default file backend persists under the config directory.
	if err := d.Session.SaveToken("tok"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	again, err := InitDependencies(Options{ConfigDir: dir, Headless: true, Out: &out, Err: &errOut})
	if err != nil {
		t.Fatalf("second InitDependencies: %v", err)
	}
	if again.Session.Token() != "tok" {
		t.Error("file session should persist across runs")
	}
}

func TestInitDependencies_Redis(t *testing.T) {
	for _, key := range []string{config.EnvConfigDir, config.EnvAPIURL, config.EnvSessionBackend, config.EnvLogLevel, config.EnvNoColor} {
		t.Setenv(key, "")
	}
	mr := miniredis.RunT(t)
	t.Setenv(config.EnvRedisAddr, mr.Addr())

	d, err := InitDependencies(Options{ConfigDir: t.TempDir(), Session: "redis", Headless: true, Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("InitDependencies: %v", err)
	}
	if err := d.Session.SaveToken("tok"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if got, _ := mr.Get(config.DefaultRedisPrefix + session.TokenKey); got != "tok" {
		t.Errorf("redis value = %q", got)
	}

	mr.Close()
	_, err = InitDependencies(Options{ConfigDir: t.TempDir(), Session: "redis", Headless: true, Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if !errors.Is(err, session.ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestInitDependencies_InvalidOption(t *testing.T) {
	t.Setenv(config.EnvConfigDir, "")
	_, err := InitDependencies(Options{ConfigDir: t.TempDir(), Session: "floppy", Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if !errors.Is(err, config.ErrInvalidBackend) {
		t.Errorf("err = %v, want ErrInvalidBackend", err)
	}
}

func ptr(s string) *string { return &s }
