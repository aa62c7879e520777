package pages

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/itson-folio/folio/internal/notify"
	"github.com/itson-folio/folio/internal/ui"
	"github.com/itson-folio/folio/pkg/models"
)

// Messages shown by the auth pages.
const (
	MsgPasswordMismatch = "Passwords do not match"
	MsgInvalidItsonID   = "ITSON ID must be 6 digits"
	MsgRegistered       = "Registration successful. Redirecting to login..."
)

var itsonIDPattern = regexp.MustCompile(`^\d{6}$`)

// ValidItsonID reports whether id is exactly six ASCII digits.
func ValidItsonID(id string) bool {
	return itsonIDPattern.MatchString(id)
}

// RegisterForm returns the registration form.
func RegisterForm() *ui.Form {
	return &ui.Form{
		Title: "Create your account",
		Fields: []ui.Field{
			{ID: "name", Title: "Name"},
			{ID: "reg-email", Title: "Email", Placeholder: "you@itson.edu.mx"},
			{ID: "itsonId", Title: "ITSON ID", Placeholder: "6 digits"},
			{ID: "reg-pass", Title: "Password", Kind: ui.FieldPassword},
			{ID: "reg-pass2", Title: "Confirm password", Kind: ui.FieldPassword},
		},
	}
}

// Register is the registration page.
type Register struct {
	env    *Env
	failed bool
}

// NewRegister creates the registration page.
func NewRegister(env *Env) *Register {
	return &Register{env: env}
}

// Failed reports whether the last Run ended on a failed submit.
func (p *Register) Failed() bool { return p.failed }

// Run asks for the account details, checks them locally and registers the
// account. Local check failures never reach the API.
func (p *Register) Run(ctx context.Context, _ url.Values) (Transition, error) {
	form := RegisterForm()
	if err := p.env.Prompt.Fill(ctx, form); err != nil {
		return Stay(), err
	}

	req := models.RegisterRequest{
		Name:     strings.TrimSpace(form.Value("name")),
		Email:    strings.TrimSpace(form.Value("reg-email")),
		ItsonID:  strings.TrimSpace(form.Value("itsonId")),
		Password: form.Value("reg-pass"),
	}

	if req.Password != form.Value("reg-pass2") {
		p.failed = true
		p.env.Notify.Show(MsgPasswordMismatch, notify.Error)
		return Stay(), nil
	}
	if !ValidItsonID(req.ItsonID) {
		p.failed = true
		p.env.Notify.Show(MsgInvalidItsonID, notify.Error)
		return Stay(), nil
	}

	if err := p.env.API.Register(ctx, req); err != nil {
		p.failed = true
		return p.env.fail(err, PageRegister), nil
	}

	p.env.Notify.Show(MsgRegistered, notify.Success)
	return Transition{To: PageLogin, Delay: RegisterRedirectDelay}, nil
}

// LoginForm returns the login form.
func LoginForm() *ui.Form {
	return &ui.Form{
		Title: "Sign in",
		Fields: []ui.Field{
			{ID: "email", Title: "Email"},
			{ID: "password", Title: "Password", Kind: ui.FieldPassword},
		},
	}
}

// Login is the login page.
type Login struct {
	env    *Env
	failed bool
}

// NewLogin creates the login page.
func NewLogin(env *Env) *Login {
	return &Login{env: env}
}

// Failed reports whether the last Run ended on a failed submit.
func (p *Login) Failed() bool { return p.failed }

// Run signs the user in and stores the session.
func (p *Login) Run(ctx context.Context, _ url.Values) (Transition, error) {
	form := LoginForm()
	if err := p.env.Prompt.Fill(ctx, form); err != nil {
		return Stay(), err
	}

	res, err := p.env.API.Login(ctx, strings.TrimSpace(form.Value("email")), form.Value("password"))
	if err != nil {
		p.failed = true
		return p.env.fail(err, PageLogin), nil
	}

	if err := p.env.Session.SaveToken(res.Token); err != nil {
		p.failed = true
		p.env.Notify.Show(err.Error(), notify.Error)
		return Stay(), nil
	}
	user := res.User
	if user == nil {
		user = models.User{}
	}
	if err := p.env.Session.SaveUser(user); err != nil {
		p.failed = true
		p.env.logout()
		p.env.Notify.Show(err.Error(), notify.Error)
		return Stay(), nil
	}

	p.env.logger().Info("signed in", "user_id", user.ID())
	return GoTo(PageHome), nil
}
