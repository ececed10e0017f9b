// Package platform defines the submission capability every target platform
// implements, plus the registry the entrypoint selects adapters from.
//
// Two families implement Adapter: browser-form automation (no public API)
// and multi-step authenticated REST. Both hide their authenticate / fill /
// finalize pipeline behind the one Submit entry point.
package platform

import (
	"context"
	"errors"
	"fmt"

	"eventcast/internal/event"
	"eventcast/internal/report"
)

// Options are the per-run knobs threaded through every adapter.
type Options struct {
	// DryRun performs every preparatory step (login, navigation, form fill,
	// payload construction) but suppresses the final side-effecting action.
	DryRun bool
	// Headless toggles visible browser windows for the browser family.
	// API adapters ignore it.
	Headless bool
}

// Adapter is one platform's submission pipeline. A returned error is scoped
// to that platform only: the orchestrator converts it into a failed Result
// and moves on to the next adapter.
type Adapter interface {
	Name() string
	Submit(ctx context.Context, env event.Envelope, opts Options) (report.Result, error)
}

// AuthError means a platform rejected our login. Scoped to one platform.
type AuthError struct {
	Platform string
	Reason   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication failed: %s", e.Platform, e.Reason)
}

// SubmitError carries a provider's own description of why a create call was
// rejected. Scoped to one platform.
type SubmitError struct {
	Platform string
	Reason   string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: submission rejected: %s", e.Platform, e.Reason)
}

// ErrNotRegistered is returned when the entrypoint selects an unknown platform.
var ErrNotRegistered = errors.New("platform not registered")

// Registry holds adapters in registration order. Registration order is the
// submission (and report) order for "all" runs, so it is deliberately a
// slice, not a map iteration.
type Registry struct {
	order []Adapter
	index map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{index: map[string]Adapter{}}
}

// Register appends adapters, last registration of a name wins its slot.
func (r *Registry) Register(adapters ...Adapter) {
	for _, a := range adapters {
		if _, dup := r.index[a.Name()]; !dup {
			r.order = append(r.order, a)
		} else {
			for i, existing := range r.order {
				if existing.Name() == a.Name() {
					r.order[i] = a
					break
				}
			}
		}
		r.index[a.Name()] = a
	}
}

// Select resolves a platform selector: one registered name, or "all" for
// every adapter in registration order.
func (r *Registry) Select(selector string) ([]Adapter, error) {
	if selector == "" || selector == "all" {
		return append([]Adapter(nil), r.order...), nil
	}
	a, ok := r.index[selector]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrNotRegistered, selector, r.Names())
	}
	return []Adapter{a}, nil
}

// Names lists registered adapter names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, a := range r.order {
		names = append(names, a.Name())
	}
	return names
}
