// Package config loads eventcast's run configuration: logging, platform
// settings, taxonomy overlays, and the optional run-history sink.
//
// Credentials never live in the config file; they come from the environment
// (see credentials.go) and are never serialized back out.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"eventcast/internal/taxonomy"
)

type Config struct {
	Logging     LoggingConfig                     `json:"logging"`
	History     HistoryConfig                     `json:"history"`
	Screenshots ScreenshotConfig                  `json:"screenshots"`
	Submission  SubmissionConfig                  `json:"submission"`
	Platforms   map[string]PlatformConfig         `json:"platforms"`
	Taxonomy    map[string]taxonomy.PlatformTable `json:"taxonomy,omitempty"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// HistoryConfig enables the local SQLite record of per-run results.
// Disabled when Path is empty.
type HistoryConfig struct {
	Path string `json:"path,omitempty"`
}

type ScreenshotConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir,omitempty"`
}

type SubmissionConfig struct {
	// StepTimeout is a Go duration string bounding each network-facing step
	// (navigation, element waits, provider calls). Defaults to 15s.
	StepTimeout string `json:"step_timeout,omitempty"`
	// UTCOffset is the fixed offset applied when turning the envelope's
	// local date/time into instants for API platforms, e.g. "-06:00".
	UTCOffset string `json:"utc_offset,omitempty"`
}

// PlatformConfig is one platform's non-secret settings. URLs are
// configurable so staging instances can be targeted without a rebuild.
type PlatformConfig struct {
	Enabled  bool   `json:"enabled"`
	BaseURL  string `json:"base_url,omitempty"`
	LoginURL string `json:"login_url,omitempty"`
	FormURL  string `json:"form_url,omitempty"`
	VenueID  string `json:"venue_id,omitempty"`
}

// Default is the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Console: true},
		Screenshots: ScreenshotConfig{
			Enabled: true,
			Dir:     "./screenshots",
		},
		Submission: SubmissionConfig{
			StepTimeout: "15s",
			UTCOffset:   "-06:00",
		},
		Platforms: map[string]PlatformConfig{
			"eventbrite": {Enabled: true, BaseURL: "https://www.eventbriteapi.com/v3"},
			"cityspark": {
				Enabled:  true,
				LoginURL: "https://events.cityspark.com/account/login",
				FormURL:  "https://events.cityspark.com/events/new",
			},
			"localfeed": {
				Enabled:  true,
				LoginURL: "https://www.localfeed.events/login",
				FormURL:  "https://www.localfeed.events/submit/new",
			},
		},
	}
}

// Load reads a YAML or JSON config file, strictly: unknown keys and trailing
// tokens are errors so stale settings are caught early. The result is
// layered over Default().
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jb, format, err := coerceToJSONBytes(path, b)
	if err != nil {
		return nil, fmt.Errorf("%s config: %w", format, err)
	}

	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("invalid config: trailing data")
		}
		return nil, err
	}
	return cfg, nil
}

// StepTimeout parses Submission.StepTimeout with a safe floor and default.
func (c *Config) StepTimeout() time.Duration {
	d, err := time.ParseDuration(c.Submission.StepTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// UTCOffset parses Submission.UTCOffset ("±HH:MM") into a fixed zone.
func (c *Config) UTCOffset() *time.Location {
	loc, err := parseOffset(c.Submission.UTCOffset)
	if err != nil {
		return time.FixedZone("UTC-6", -6*3600)
	}
	return loc
}

func parseOffset(s string) (*time.Location, error) {
	var sign int
	switch {
	case len(s) == 6 && s[0] == '-':
		sign = -1
	case len(s) == 6 && s[0] == '+':
		sign = 1
	default:
		return nil, fmt.Errorf("bad offset %q", s)
	}
	var hh, mm int
	if _, err := fmt.Sscanf(s[1:], "%d:%d", &hh, &mm); err != nil {
		return nil, fmt.Errorf("bad offset %q: %w", s, err)
	}
	if hh > 14 || mm > 59 {
		return nil, fmt.Errorf("bad offset %q", s)
	}
	secs := sign * (hh*3600 + mm*60)
	return time.FixedZone("UTC"+s, secs), nil
}
