package localfeed

import (
	"strings"
	"testing"

	"eventcast/internal/config"
	"eventcast/internal/event"
	"eventcast/internal/taxonomy"
)

func fieldValue(t *testing.T, name string, env event.Envelope) string {
	t.Helper()
	spec := Spec(config.Default().Platforms[Name], taxonomy.Default())
	for _, f := range spec.Fields {
		if f.Name == name {
			return f.Value(env)
		}
	}
	t.Fatalf("no field named %q", name)
	return ""
}

func TestAddressAssembledFromParts(t *testing.T) {
	t.Parallel()
	env := event.Envelope{
		VenueAddress: "100 Main St",
		City:         "Springfield",
		State:        "IL",
		Zip:          "62701",
	}
	got := fieldValue(t, "address", env)
	if got != "100 Main St, Springfield, IL 62701" {
		t.Fatalf("address = %q", got)
	}
	if got := fieldValue(t, "address", event.Envelope{City: "Springfield"}); got != "" {
		t.Fatalf("address without street = %q, want empty (skipped)", got)
	}
}

func TestDescriptionCarriesPresenter(t *testing.T) {
	t.Parallel()
	env := event.Envelope{Title: "Friday Night Jazz", PresentedBy: "The Jazz Society"}
	got := fieldValue(t, "description", env)
	if !strings.HasPrefix(got, "Friday Night Jazz") {
		t.Fatalf("description missing title fallback: %q", got)
	}
	if !strings.Contains(got, "Presented by The Jazz Society") {
		t.Fatalf("description missing presenter: %q", got)
	}
}

func TestCategoryDefault(t *testing.T) {
	t.Parallel()
	if got := fieldValue(t, "category", event.Envelope{Genre: "Quilting"}); got != "other" {
		t.Fatalf("category = %s, want other", got)
	}
}

func TestVenueIsKeyboardDrivenAutocomplete(t *testing.T) {
	t.Parallel()
	spec := Spec(config.Default().Platforms[Name], taxonomy.Default())
	for _, f := range spec.Fields {
		if f.Name == "venue" {
			if f.SuggestionSel != "" {
				t.Fatalf("venue should use keyboard selection, has selector %q", f.SuggestionSel)
			}
			return
		}
	}
	t.Fatal("no venue field")
}
