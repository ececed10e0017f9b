// Package event defines the canonical event envelope handed to every
// platform adapter, and the single validation pass that runs before any
// adapter executes.
package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date format of Envelope.Date.
const DateLayout = "2006-01-02"

// Envelope is the canonical event record. It is constructed once per run and
// never mutated; adapters apply their own per-platform defaults when a field
// is absent, the envelope itself carries none.
type Envelope struct {
	Title        string `json:"title"`
	Date         string `json:"date"`
	Time         string `json:"time,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	VenueName    string `json:"venueName,omitempty"`
	VenueAddress string `json:"venueAddress,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
	Genre        string `json:"genre,omitempty"`
	Description  string `json:"description,omitempty"`
	TicketPrice  string `json:"ticketPrice,omitempty"`
	Free         bool   `json:"free,omitempty"`
	TicketLink   string `json:"ticketLink,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	PosterURL    string `json:"posterUrl,omitempty"`
	PresentedBy  string `json:"presentedBy,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	Capacity     string `json:"capacity,omitempty"`
	VenueID      string `json:"venueId,omitempty"`
}

// ValidationError reports a malformed or missing required envelope field.
// It is fatal to the whole run: no adapter executes after one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid envelope: %s %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks the two required fields and returns the envelope unchanged
// when they hold. Every other field is accepted as-is, including absent ones.
// Pure; no side effects.
func Validate(raw Envelope) (Envelope, error) {
	if strings.TrimSpace(raw.Title) == "" {
		return Envelope{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if _, err := ParseDate(raw.Date); err != nil {
		return Envelope{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a calendar date", raw.Date)}
	}
	return raw, nil
}

// ParseDate parses the envelope date. The canonical form is 2006-01-02;
// unpadded month/day is tolerated because upstream forms produce it.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range []string{DateLayout, "2006-1-2"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
