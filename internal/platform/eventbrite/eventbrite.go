// Package eventbrite submits events through the Eventbrite REST API:
// create the event, attach a ticket class, then publish.
package eventbrite

import (
	"context"
	"fmt"
	"time"

	"eventcast/internal/config"
	"eventcast/internal/event"
	"eventcast/internal/platform"
	"eventcast/internal/platform/api"
	"eventcast/internal/report"
	"eventcast/internal/taxonomy"
	"eventcast/pkg/logx"
)

const (
	Name = "eventbrite"

	currency   = "USD"
	timeLayout = "2006-01-02T15:04:05Z"
)

// Adapter is the API-family adapter for Eventbrite.
type Adapter struct {
	client  *api.Client
	tax     *taxonomy.Table
	venueID string
	zone    *time.Location
	hasTok  bool
	log     logx.Logger
}

// New builds the adapter. The bearer token comes from the process-wide
// credential set; a missing token fails this platform at submit time, not
// the whole run.
func New(cfg config.PlatformConfig, creds *config.Credentials, tax *taxonomy.Table, zone *time.Location, stepTimeout time.Duration, log logx.Logger) *Adapter {
	token, ok := creds.Token(Name)
	return &Adapter{
		client:  api.NewClient(cfg.BaseURL, token, stepTimeout, log),
		tax:     tax,
		venueID: cfg.VenueID,
		zone:    zone,
		hasTok:  ok,
		log:     log.With(logx.String("platform", Name)),
	}
}

func (a *Adapter) Name() string { return Name }

// Submit creates the event, attaches the ticket class, and publishes.
// Dry-run constructs every payload but performs no provider calls.
func (a *Adapter) Submit(ctx context.Context, env event.Envelope, opts platform.Options) (report.Result, error) {
	if !a.hasTok {
		return report.Result{}, &platform.AuthError{Platform: Name, Reason: "no API token configured"}
	}

	eventBody, err := a.eventPayload(env)
	if err != nil {
		return report.Result{}, fmt.Errorf("%s: %w", Name, err)
	}
	ticketBody := ticketPayload(env)

	if opts.DryRun {
		a.log.Info("dry run: payloads constructed, no provider calls",
			logx.Any("event", eventBody),
			logx.Any("ticket", ticketBody),
		)
		return report.Result{
			Platform: Name,
			Success:  true,
			Message:  "dry run: create/ticket/publish calls skipped",
			DryRun:   true,
			At:       time.Now(),
		}, nil
	}

	created, err := a.client.PostJSON(ctx, "/events/", eventBody)
	if err != nil {
		return report.Result{}, err
	}
	if desc, bad := api.ErrorDescription(created); bad {
		return report.Result{}, &platform.SubmitError{Platform: Name, Reason: desc}
	}

	id, _ := created["id"].(string)
	url, _ := created["url"].(string)
	if id == "" {
		return report.Result{}, &platform.SubmitError{Platform: Name, Reason: "provider answer carried no event id"}
	}
	a.log.Info("event created", logx.String("id", id))

	if _, err := a.client.PostJSON(ctx, "/events/"+id+"/ticket_classes/", ticketBody); err != nil {
		// The event exists; a broken tier is recoverable by hand but the
		// submission as a whole did not complete.
		return report.Result{}, fmt.Errorf("%s ticket class: %w", Name, err)
	}

	msg := "published"
	published, err := a.publish(ctx, id)
	if err != nil {
		return report.Result{}, err
	}
	if !published {
		// The draft exists and remains recoverable by manual action, so a
		// non-published answer is a warning, not a hard failure.
		msg = "created but not published; publish manually"
		a.log.Warn("publish call did not confirm", logx.String("id", id))
	}

	return report.Result{
		Platform: Name,
		Success:  true,
		URL:      url,
		Message:  msg,
		At:       time.Now(),
	}, nil
}

func (a *Adapter) publish(ctx context.Context, id string) (bool, error) {
	resp, err := a.client.PostJSON(ctx, "/events/"+id+"/publish/", map[string]any{})
	if err != nil {
		return false, fmt.Errorf("%s publish: %w", Name, err)
	}
	published, _ := resp["published"].(bool)
	return published, nil
}

func (a *Adapter) eventPayload(env event.Envelope) (map[string]any, error) {
	start, end, err := api.StartEnd(env, a.zone)
	if err != nil {
		return nil, err
	}

	ev := map[string]any{
		"name":        map[string]any{"html": env.Title},
		"start":       map[string]any{"timezone": "UTC", "utc": start.UTC().Format(timeLayout)},
		"end":         map[string]any{"timezone": "UTC", "utc": end.UTC().Format(timeLayout)},
		"currency":    currency,
		"category_id": a.tax.Resolve(Name, env.Genre),
		"listed":      true,
	}
	if env.Description != "" {
		ev["description"] = map[string]any{"html": env.Description}
	}
	if env.Capacity != "" {
		ev["capacity"] = env.Capacity
	}
	venue := env.VenueID
	if venue == "" {
		venue = a.venueID
	}
	if venue != "" {
		ev["venue_id"] = venue
	}
	return map[string]any{"event": ev}, nil
}

// ticketPayload decides the secondary ticket-class call: priced when a
// numeric amount parses out of the free-text price field, free otherwise.
func ticketPayload(env event.Envelope) map[string]any {
	tc := map[string]any{
		"name":     "General Admission",
		"quantity": 100,
	}
	if env.Capacity != "" {
		tc["quantity"] = env.Capacity
	}
	if amount, ok := api.ExtractAmount(env.TicketPrice); ok && !env.Free {
		tc["free"] = false
		tc["cost"] = fmt.Sprintf("%s,%d", currency, api.Cents(amount))
	} else {
		tc["free"] = true
	}
	return map[string]any{"ticket_class": tc}
}
