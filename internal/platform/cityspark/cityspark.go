// Package cityspark submits events to CitySpark-style community calendars
// through their submission form; the platform has no public write API.
package cityspark

import (
	"time"

	sessions "eventcast/internal/browser"
	"eventcast/internal/config"
	"eventcast/internal/event"
	"eventcast/internal/platform"
	"eventcast/internal/platform/browser"
	"eventcast/internal/taxonomy"
	"eventcast/pkg/logx"
)

const Name = "cityspark"

// New wires the CitySpark form spec into a browser-family adapter.
func New(cfg config.PlatformConfig, creds *config.Credentials, tax *taxonomy.Table, stepTimeout time.Duration, shots sessions.ScreenshotSink, log logx.Logger) platform.Adapter {
	return browser.New(Spec(cfg, tax), creds, stepTimeout, shots, log)
}

// Spec is the CitySpark field map. Selectors follow the production form as
// of the last manual audit; they are data, not logic, so drift is a
// config-level fix.
func Spec(cfg config.PlatformConfig, tax *taxonomy.Table) browser.Spec {
	return browser.Spec{
		Platform: Name,

		LoginURL:    cfg.LoginURL,
		EmailSel:    `input[name="email"]`,
		PasswordSel: `input[name="password"]`,
		LoginSubmit: `button[type="submit"]`,

		FormURL:   cfg.FormURL,
		SubmitSel: `#event-submit`,
		Settle:    2 * time.Second,

		Fields: []browser.Field{
			{
				Name:     "title",
				Selector: `input[name="title"]`,
				Value:    func(env event.Envelope) string { return env.Title },
			},
			{
				Name:     "date",
				Selector: `input[name="startdate"]`,
				Value: func(env event.Envelope) string {
					return browser.FormDate(env, "01/02/2006")
				},
			},
			{
				Name:     "start time",
				Selector: `input[name="starttime"]`,
				Value: func(env event.Envelope) string {
					if env.Time == "" {
						return "19:00"
					}
					return env.Time
				},
			},
			{
				Name:     "end time",
				Selector: `input[name="endtime"]`,
				Optional: true,
				Value:    func(env event.Envelope) string { return env.EndTime },
			},
			{
				Name:          "venue",
				Selector:      `input[name="venue"]`,
				Kind:          browser.FieldAutocomplete,
				SuggestionSel: `.venue-suggestions li:first-child`,
				Value:         func(env event.Envelope) string { return env.VenueName },
			},
			{
				Name:     "category",
				Selector: `select[name="category"]`,
				Kind:     browser.FieldSelect,
				Value: func(env event.Envelope) string {
					return tax.Resolve(Name, env.Genre)
				},
			},
			{
				Name:     "description",
				Selector: `textarea[name="description"]`,
				Value: func(env event.Envelope) string {
					if env.Description == "" {
						return env.Title
					}
					return env.Description
				},
			},
			{
				Name:     "price",
				Selector: `input[name="price"]`,
				Optional: true,
				Value: func(env event.Envelope) string {
					if env.Free {
						return "Free"
					}
					return env.TicketPrice
				},
			},
			{
				Name:     "ticket link",
				Selector: `input[name="ticketurl"]`,
				Optional: true,
				Value:    func(env event.Envelope) string { return env.TicketLink },
			},
			{
				Name:     "image url",
				Selector: `input[name="imageurl"]`,
				Optional: true,
				Value: func(env event.Envelope) string {
					if env.ImageURL != "" {
						return env.ImageURL
					}
					return env.PosterURL
				},
			},
			{
				Name:     "contact email",
				Selector: `input[name="contactemail"]`,
				Optional: true,
				Value:    func(env event.Envelope) string { return env.ContactEmail },
			},
		},
	}
}
