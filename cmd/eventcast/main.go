package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"eventcast/internal/browser"
	"eventcast/internal/config"
	"eventcast/internal/event"
	"eventcast/internal/history"
	"eventcast/internal/orchestrator"
	"eventcast/internal/platform"
	"eventcast/internal/platform/cityspark"
	"eventcast/internal/platform/eventbrite"
	"eventcast/internal/platform/localfeed"
	"eventcast/internal/report"
	"eventcast/internal/taxonomy"
	"eventcast/pkg/logx"
)

func main() {
	var (
		cfgPath  string
		selector string
		dryRun   bool
		headless bool
		payload  string
		asJSON   bool
	)
	flag.StringVar(&cfgPath, "config", "", "path to config yaml/json (optional)")
	flag.StringVar(&selector, "platform", "all", "platform to submit to, or \"all\"")
	flag.BoolVar(&dryRun, "dry-run", false, "perform every preparatory step but skip the final submit/publish")
	flag.BoolVar(&headless, "headless", true, "run browsers headless; use -headless=false to watch")
	flag.StringVar(&payload, "event", "", "event payload: a JSON file path or literal JSON (demo envelope if absent)")
	flag.BoolVar(&asJSON, "json", false, "print the report as JSON instead of text")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Credentials ride in the environment; a local .env is a convenience.
	_ = godotenv.Load()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log, closeLog := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	defer func() { _ = closeLog() }()

	reg := buildRegistry(cfg, log)
	adapters, err := reg.Select(selector)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	env := loadEnvelope(payload, log)

	rep, err := orchestrator.New(log).SubmitAll(ctx, env, adapters, platform.Options{
		DryRun:   dryRun,
		Headless: headless,
	})
	if err != nil {
		// Only envelope validation is fatal; adapter failures live in the report.
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	recordHistory(ctx, cfg, rep, log)

	if asJSON {
		b, err := rep.JSON()
		if err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}
	fmt.Print(rep.Text())
}

// buildRegistry registers every enabled platform in submission order:
// browser platforms first (they are the slow, fragile ones), API last.
func buildRegistry(cfg *config.Config, log logx.Logger) *platform.Registry {
	names := []string{cityspark.Name, localfeed.Name, eventbrite.Name}
	creds := config.LoadCredentials(names)
	tax := taxonomyFromConfig(cfg)
	timeout := cfg.StepTimeout()

	var shots browser.ScreenshotSink = browser.NopSink{}
	if cfg.Screenshots.Enabled && cfg.Screenshots.Dir != "" {
		shots = browser.DirSink{Dir: cfg.Screenshots.Dir}
	}

	reg := platform.NewRegistry()
	if pc, ok := cfg.Platforms[cityspark.Name]; ok && pc.Enabled {
		reg.Register(cityspark.New(pc, creds, tax, timeout, shots, log))
	}
	if pc, ok := cfg.Platforms[localfeed.Name]; ok && pc.Enabled {
		reg.Register(localfeed.New(pc, creds, tax, timeout, shots, log))
	}
	if pc, ok := cfg.Platforms[eventbrite.Name]; ok && pc.Enabled {
		reg.Register(eventbrite.New(pc, creds, tax, cfg.UTCOffset(), timeout, log))
	}
	return reg
}

func taxonomyFromConfig(cfg *config.Config) *taxonomy.Table {
	tax := taxonomy.Default()
	if len(cfg.Taxonomy) > 0 {
		tax = tax.Merge(cfg.Taxonomy)
	}
	return tax
}

// loadEnvelope resolves -event: a readable file wins, then literal JSON,
// then the demo envelope. Unparseable input falls back to the demo too,
// with a warning, so an interactive run always has something to submit.
func loadEnvelope(payload string, log logx.Logger) event.Envelope {
	if payload == "" {
		return demoEnvelope()
	}

	raw := []byte(payload)
	if !strings.HasPrefix(strings.TrimSpace(payload), "{") {
		b, err := os.ReadFile(payload)
		if err != nil {
			log.Warn("event payload unreadable, using demo envelope", logx.Err(err))
			return demoEnvelope()
		}
		raw = b
	}

	var env event.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Warn("event payload unparseable, using demo envelope", logx.Err(err))
		return demoEnvelope()
	}
	return env
}

func demoEnvelope() event.Envelope {
	return event.Envelope{
		Title:        "Friday Night Jazz",
		Date:         "2026-12-11",
		Time:         "19:00",
		EndTime:      "22:00",
		VenueName:    "The Blue Room",
		VenueAddress: "100 Main St",
		City:         "Springfield",
		State:        "IL",
		Zip:          "62701",
		Genre:        "Live Music",
		Description:  "An evening of live jazz with the house quartet.",
		TicketPrice:  "$10",
		TicketLink:   "https://tickets.example.com/jazz",
		PresentedBy:  "The Jazz Society",
		ContactEmail: "events@example.com",
	}
}

func recordHistory(ctx context.Context, cfg *config.Config, rep report.Report, log logx.Logger) {
	sink, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Warn("history sink unavailable", logx.Err(err))
		return
	}
	defer func() { _ = sink.Close() }()
	if err := sink.Record(ctx, rep); err != nil {
		log.Warn("history record failed", logx.Err(err))
	}
}
