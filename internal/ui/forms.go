package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/text/unicode/norm"
)

// Prompt errors.
var (
	// ErrCancelled is returned when the user aborts a form.
	ErrCancelled = errors.New("ui: cancelled by user")
	// ErrHeadlessNoValue is returned when a headless choice has no recorded value.
	ErrHeadlessNoValue = errors.New("ui: no value supplied for headless prompt")
)

// Reserved value keys for non-form prompts.
const (
	ConfirmKey = "confirm"
	ActionKey  = "action"
	ProjectKey = "project"
)

// FieldKind selects the widget used for a field.
type FieldKind int

const (
	// FieldText is a single-line input.
	FieldText FieldKind = iota
	// FieldPassword is a masked single-line input; its value is never normalized.
	FieldPassword
	// FieldMultiline is a multi-line text area.
	FieldMultiline
	// FieldHidden is carried with the form but never shown.
	FieldHidden
)

// Field is one named form input.
type Field struct {
	ID          string
	Title       string
	Description string
	Placeholder string
	Kind        FieldKind
	Value       string
}

// Form is an ordered set of fields, addressed by id.
type Form struct {
	Title  string
	Fields []Field
}

// Value returns the current value of the field with the given id.
func (f *Form) Value(id string) string {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return f.Fields[i].Value
		}
	}
	return ""
}

// Set replaces the value of the field with the given id.
func (f *Form) Set(id, value string) {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			f.Fields[i].Value = value
			return
		}
	}
}

// Choice is one option of a Choose prompt.
type Choice struct {
	Label string
	Value string
}

// Prompter collects user input for pages.
type Prompter interface {
	// Fill sets every field's Value. Pre-filled values are kept unless
	// replaced by a recorded value or user input.
	Fill(ctx context.Context, form *Form) error
	Confirm(ctx context.Context, question string) (bool, error)
	// Choose picks one choice value. key names the recorded value used
	// instead of prompting.
	Choose(ctx context.Context, key, title string, choices []Choice) (string, error)
}

// Prompts implements Prompter with huh forms, falling back to the values
// recorded on the HeadlessManager.
type Prompts struct {
	theme    *Theme
	headless *HeadlessManager
}

// Compile-time interface check.
var _ Prompter = (*Prompts)(nil)

// NewPrompts creates a Prompts.
func NewPrompts(theme *Theme, hm *HeadlessManager) *Prompts {
	return &Prompts{theme: theme, headless: hm}
}

// Fill implements Prompter. Recorded values win; in headless mode the rest
// keep their pre-filled value. Interactive mode prompts for the rest in a
// single huh form.
func (p *Prompts) Fill(ctx context.Context, form *Form) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var pending []int
	for i := range form.Fields {
		f := &form.Fields[i]
		if v, ok := p.headless.Value(f.ID); ok {
			f.Value = normalize(f.Kind, v)
			continue
		}
		if f.Kind == FieldHidden {
			continue
		}
		pending = append(pending, i)
	}

	if len(pending) == 0 || p.headless.IsHeadless() {
		return nil
	}

	values := make([]string, len(form.Fields))
	fields := make([]huh.Field, 0, len(pending))
	for _, i := range pending {
		f := form.Fields[i]
		values[i] = f.Value
		fields = append(fields, buildField(f, &values[i]))
	}

	group := huh.NewGroup(fields...)
	if form.Title != "" {
		group = group.Title(form.Title)
	}
	hf := huh.NewForm(group).WithTheme(p.theme.HuhTheme())
	if err := hf.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("form: %w", err)
	}

	for _, i := range pending {
		form.Fields[i].Value = normalize(form.Fields[i].Kind, values[i])
	}
	return nil
}

// Confirm implements Prompter. Headless mode answers from the ConfirmKey
// value and defaults to false.
func (p *Prompts) Confirm(ctx context.Context, question string) (bool, error) {
	if v, ok := p.headless.Value(ConfirmKey); ok {
		yes, err := strconv.ParseBool(v)
		return err == nil && yes, nil
	}
	if p.headless.IsHeadless() {
		return false, nil
	}

	var ok bool
	c := huh.NewConfirm().Title(question).Affirmative("Yes").Negative("No").Value(&ok)
	if err := huh.NewForm(huh.NewGroup(c)).WithTheme(p.theme.HuhTheme()).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

// Choose implements Prompter. A recorded value for key is used once and
// then forgotten, so a page loop driven by flags ends after one action.
func (p *Prompts) Choose(ctx context.Context, key, title string, choices []Choice) (string, error) {
	if v, ok := p.headless.Take(key); ok {
		return v, nil
	}
	if p.headless.IsHeadless() {
		return "", ErrHeadlessNoValue
	}

	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(c.Label, c.Value)
	}
	var selected string
	sel := huh.NewSelect[string]().Title(title).Options(opts...).Value(&selected)
	if err := huh.NewForm(huh.NewGroup(sel)).WithTheme(p.theme.HuhTheme()).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("select: %w", err)
	}
	return selected, nil
}

func buildField(f Field, value *string) huh.Field {
	switch f.Kind {
	case FieldMultiline:
		return huh.NewText().
			Title(f.Title).
			Description(f.Description).
			Placeholder(f.Placeholder).
			Value(value)
	case FieldPassword:
		return huh.NewInput().
			Title(f.Title).
			Description(f.Description).
			EchoMode(huh.EchoModePassword).
			Value(value)
	default:
		return huh.NewInput().
			Title(f.Title).
			Description(f.Description).
			Placeholder(f.Placeholder).
			Value(value)
	}
}

// normalize converts typed text to NFC so that composed and decomposed
// accents compare equal. Passwords are passed through untouched.
func normalize(kind FieldKind, v string) string {
	if kind == FieldPassword {
		return v
	}
	return norm.NFC.String(strings.TrimRight(v, "\r\n"))
}
