package platform

import (
	"context"
	"errors"
	"testing"

	"eventcast/internal/event"
	"eventcast/internal/report"
)

type stubAdapter struct{ name string }

func (s stubAdapter) Name() string { return s.name }
func (s stubAdapter) Submit(context.Context, event.Envelope, Options) (report.Result, error) {
	return report.Result{Platform: s.name, Success: true}, nil
}

func TestRegistrySelectAllKeepsRegistrationOrder(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Register(stubAdapter{"cityspark"}, stubAdapter{"localfeed"}, stubAdapter{"eventbrite"})

	got, err := r.Select("all")
	if err != nil {
		t.Fatalf("Select(all) error: %v", err)
	}
	want := []string{"cityspark", "localfeed", "eventbrite"}
	for i, a := range got {
		if a.Name() != want[i] {
			t.Fatalf("adapter[%d] = %s, want %s", i, a.Name(), want[i])
		}
	}
}

func TestRegistrySelectSingle(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Register(stubAdapter{"eventbrite"})

	got, err := r.Select("eventbrite")
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if len(got) != 1 || got[0].Name() != "eventbrite" {
		t.Fatalf("unexpected selection: %v", got)
	}

	if _, err := r.Select("myspace"); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("Select(unknown) error = %v, want ErrNotRegistered", err)
	}
}

func TestRegistryReRegisterKeepsSlot(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Register(stubAdapter{"a"}, stubAdapter{"b"})
	r.Register(stubAdapter{"a"})
	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names() = %v, want [a b]", names)
	}
}
