package browser

import (
	"time"

	"eventcast/internal/event"
)

// FieldKind selects how a form control is driven.
type FieldKind int

const (
	// FieldText types the value into an input or textarea.
	FieldText FieldKind = iota
	// FieldSelect picks an <option> by value.
	FieldSelect
	// FieldAutocomplete types the value, waits for the suggestion list to
	// settle, then picks the first suggestion.
	FieldAutocomplete
)

// Field pairs a form locator with a transform of some envelope attribute.
// Per-platform field maps are data, not branching code: adding a platform is
// a new Spec plus a small adapter body.
type Field struct {
	Name     string
	Selector string
	Kind     FieldKind
	// SuggestionSel, for FieldAutocomplete, locates the first suggestion to
	// click. Empty means drive the widget with ArrowDown+Enter instead.
	SuggestionSel string
	// Optional fields are diagnostic-grade: a fill failure is logged and
	// swallowed rather than failing the platform.
	Optional bool
	Value    func(env event.Envelope) string
}

// Spec is one browser platform's complete form description.
type Spec struct {
	Platform string

	LoginURL    string
	EmailSel    string
	PasswordSel string
	LoginSubmit string

	FormURL    string
	Fields     []Field
	SubmitSel  string
	// Settle is the fixed delay that lets client-side widgets (autocomplete
	// lists, date pickers) catch up after being driven programmatically.
	Settle time.Duration
}

// FormDate reformats the envelope date for platforms whose date inputs want
// a different layout. Falls back to the raw string when unparseable; the
// envelope was validated before any adapter ran, so this only happens in
// direct unit use.
func FormDate(env event.Envelope, layout string) string {
	t, err := event.ParseDate(env.Date)
	if err != nil {
		return env.Date
	}
	return t.Format(layout)
}
