package pages

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ErrUnknownPage is returned when a transition names a page with no route.
var ErrUnknownPage = errors.New("pages: unknown page")

// Submitter is implemented by form pages. Failed reports whether the last
// Run ended because a submit failed, so running the page again asks the user
// for new input.
type Submitter interface {
	Failed() bool
}

// Router follows page transitions.
type Router struct {
	env    *Env
	routes map[PageID]Factory

	// Retry re-runs a form page whose submit failed instead of returning.
	// The interactive app sets it so the form is asked again.
	Retry bool
	// Sleep waits out transition delays.
	Sleep func(ctx context.Context, d time.Duration) error

	history []PageID
}

// NewRouter creates a Router over routes. A nil routes uses Routes.
func NewRouter(env *Env, routes map[PageID]Factory) *Router {
	if routes == nil {
		routes = Routes
	}
	return &Router{env: env, routes: routes, Sleep: sleepContext}
}

// History returns the visited pages. Replace transitions overwrite the
// current entry instead of adding one.
func (r *Router) History() []PageID {
	return append([]PageID(nil), r.history...)
}

// Run starts at page start and follows transitions until a page stays
// current (without Retry), a page quits, or an error occurs. It returns the
// last page run.
func (r *Router) Run(ctx context.Context, start PageID, params url.Values) (PageID, error) {
	current := start
	r.history = append(r.history, current)
	for {
		factory, ok := r.routes[current]
		if !ok {
			return current, fmt.Errorf("%w: %q", ErrUnknownPage, current)
		}

		page := factory(r.env)
		t, err := page.Run(ctx, params)
		if err != nil {
			return current, err
		}
		if t.Quit {
			return current, nil
		}
		if t.IsStay() {
			if sp, ok := page.(Submitter); ok && r.Retry && sp.Failed() {
				continue
			}
			return current, nil
		}

		if t.Delay > 0 {
			if err := r.Sleep(ctx, t.Delay); err != nil {
				return current, err
			}
		}
		r.env.logger().Debug("page transition", "from", current, "to", t.To, "replace", t.Replace)

		if t.Replace {
			r.history[len(r.history)-1] = t.To
		} else {
			r.history = append(r.history, t.To)
		}
		current, params = t.To, t.Params
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
