// Package localfeed submits events to the LocalFeed listings site through
// its public submission form.
package localfeed

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

const Name = "localfeed"

func New(cfg config.PlatformConfig, creds *config.Credentials, tax *taxonomy.Table, stepTimeout time.Duration, shots sessions.ScreenshotSink, log logx.Logger) platform.Adapter {
	return browser.New(Spec(cfg, tax), creds, stepTimeout, shots, log)
}

// Spec is the LocalFeed field map. The form takes ISO dates directly and
// drives its venue picker with keyboard selection (no stable suggestion
// selector).
func Spec(cfg config.PlatformConfig, tax *taxonomy.Table) browser.Spec {
	return browser.Spec{
		Platform: Name,

		LoginURL:    cfg.LoginURL,
		EmailSel:    `#user_email`,
		PasswordSel: `#user_password`,
		LoginSubmit: `input[type="submit"]`,

		FormURL:   cfg.FormURL,
		SubmitSel: `button.submit-event`,
		Settle:    2 * time.Second,

		Fields: []browser.Field{
			{
				Name:     "title",
				Selector: `#event_name`,
				Value:    func(env event.Envelope) string { return env.Title },
			},
			{
				Name:     "date",
				Selector: `#event_date`,
				Value: func(env event.Envelope) string {
					return browser.FormDate(env, event.DateLayout)
				},
			},
			{
				Name:     "time",
				Selector: `#event_start_time`,
				Optional: true,
				Value:    func(env event.Envelope) string { return env.Time },
			},
			{
				Name:     "venue",
				Selector: `#event_venue_name`,
				Kind:     browser.FieldAutocomplete,
				Value:    func(env event.Envelope) string { return env.VenueName },
			},
			{
				Name:     "address",
				Selector: `#event_address`,
				Optional: true,
				Value: func(env event.Envelope) string {
					if env.VenueAddress == "" {
						return ""
					}
					addr := env.VenueAddress
					if env.City != "" {
						addr += ", " + env.City
					}
					if env.State != "" {
						addr += ", " + env.State
					}
					if env.Zip != "" {
						addr += " " + env.Zip
					}
					return addr
				},
			},
			{
				Name:     "category",
				Selector: `#event_category`,
				Kind:     browser.FieldSelect,
				Value: func(env event.Envelope) string {
					return tax.Resolve(Name, env.Genre)
				},
			},
			{
				Name:     "description",
				Selector: `#event_description`,
				Value: func(env event.Envelope) string {
					desc := env.Description
					if desc == "" {
						desc = env.Title
					}
					if env.PresentedBy != "" {
						desc += "\n\nPresented by " + env.PresentedBy
					}
					return desc
				},
			},
			{
				Name:     "ticket link",
				Selector: `#event_url`,
				Optional: true,
				Value:    func(env event.Envelope) string { return env.TicketLink },
			},
		},
	}
}
