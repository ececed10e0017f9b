package cityspark

import (
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

func TestDateReformattedForForm(t *testing.T) {
	t.Parallel()
	got := fieldValue(t, "date", event.Envelope{Title: "x", Date: "2026-03-15"})
	if got != "03/15/2026" {
		t.Fatalf("date = %s, want 03/15/2026", got)
	}
}

func TestStartTimeDefault(t *testing.T) {
	t.Parallel()
	if got := fieldValue(t, "start time", event.Envelope{}); got != "19:00" {
		t.Fatalf("default start time = %s, want 19:00", got)
	}
	if got := fieldValue(t, "start time", event.Envelope{Time: "20:30"}); got != "20:30" {
		t.Fatalf("start time = %s, want 20:30", got)
	}
}

func TestCategoryResolvedThroughTaxonomy(t *testing.T) {
	t.Parallel()
	if got := fieldValue(t, "category", event.Envelope{Genre: "Live Music"}); got != "music" {
		t.Fatalf("category = %s, want music", got)
	}
	// Unmapped genre degrades to the platform default, never blocks.
	if got := fieldValue(t, "category", event.Envelope{Genre: "Competitive Napping"}); got != "music" {
		t.Fatalf("category fallback = %s, want platform default music", got)
	}
}

func TestPriceFieldPrefersFreeFlag(t *testing.T) {
	t.Parallel()
	if got := fieldValue(t, "price", event.Envelope{Free: true, TicketPrice: "$10"}); got != "Free" {
		t.Fatalf("price = %s, want Free", got)
	}
	if got := fieldValue(t, "price", event.Envelope{TicketPrice: "$10"}); got != "$10" {
		t.Fatalf("price = %s, want $10", got)
	}
}

func TestImageFallsBackToPoster(t *testing.T) {
	t.Parallel()
	env := event.Envelope{PosterURL: "https://cdn.example.com/poster.jpg"}
	if got := fieldValue(t, "image url", env); got != env.PosterURL {
		t.Fatalf("image url = %s, want poster fallback", got)
	}
}
