package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "config.yaml", `
logging:
  level: debug
  console: true
submission:
  step_timeout: 20s
  utc_offset: "-05:00"
history:
  path: ./runs.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Level = %s, want debug", cfg.Logging.Level)
	}
	if got := cfg.StepTimeout(); got != 20*time.Second {
		t.Fatalf("StepTimeout = %v, want 20s", got)
	}
	if cfg.History.Path != "./runs.db" {
		t.Fatalf("History.Path = %s", cfg.History.Path)
	}
	// Defaults survive for sections the file does not mention.
	if !cfg.Platforms["eventbrite"].Enabled {
		t.Fatal("default platform config lost in overlay")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "config.yaml", "loging:\n  level: info\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadRejectsTrailingData(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "config.json", `{"logging":{"level":"info","console":true,"file":{"enabled":false,"path":""}}}{"x":1}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for trailing data")
	}
}

func TestUTCOffsetParsing(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Submission.UTCOffset = "+05:30"
	_, off := time.Date(2026, 3, 15, 0, 0, 0, 0, cfg.UTCOffset()).Zone()
	if off != 5*3600+30*60 {
		t.Fatalf("offset = %d, want +05:30", off)
	}

	cfg.Submission.UTCOffset = "nonsense"
	_, off = time.Date(2026, 3, 15, 0, 0, 0, 0, cfg.UTCOffset()).Zone()
	if off != -6*3600 {
		t.Fatalf("fallback offset = %d, want -06:00", off)
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("EVENTCAST_CITYSPARK_EMAIL", "ops@example.com")
	t.Setenv("EVENTCAST_CITYSPARK_PASSWORD", "hunter2")
	t.Setenv("EVENTCAST_EVENTBRITE_TOKEN", "tok-123")

	creds := LoadCredentials([]string{"cityspark", "eventbrite", "localfeed"})

	login, ok := creds.Login("cityspark")
	if !ok || login.Email != "ops@example.com" || login.Password != "hunter2" {
		t.Fatalf("Login(cityspark) = %+v, %v", login, ok)
	}
	if tok, ok := creds.Token("eventbrite"); !ok || tok != "tok-123" {
		t.Fatalf("Token(eventbrite) = %q, %v", tok, ok)
	}
	if _, ok := creds.Login("localfeed"); ok {
		t.Fatal("expected no credentials for localfeed")
	}
}
