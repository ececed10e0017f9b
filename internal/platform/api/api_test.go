package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventcast/internal/event"
	"eventcast/pkg/logx"
)

func TestExtractAmount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"$10", 10, true},
		{"$10.50", 10.5, true},
		{"tickets from $12 at the door", 12, true},
		{"10", 10, true},
		{"free", 0, false},
		{"", 0, false},
		{"donation appreciated", 0, false},
		{"$0", 0, false},
	}
	for _, tt := range tests {
		got, ok := ExtractAmount(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("ExtractAmount(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCents(t *testing.T) {
	t.Parallel()
	if got := Cents(10); got != 1000 {
		t.Fatalf("Cents(10) = %d", got)
	}
	if got := Cents(10.55); got != 1055 {
		t.Fatalf("Cents(10.55) = %d", got)
	}
}

func TestStartEnd(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC-06:00", -6*3600)

	start, end, err := StartEnd(event.Envelope{Date: "2026-03-15", Time: "19:00"}, loc)
	if err != nil {
		t.Fatalf("StartEnd error: %v", err)
	}
	if start.Hour() != 19 || start.Day() != 15 {
		t.Fatalf("start = %v", start)
	}
	if end.Sub(start) != 3*time.Hour {
		t.Fatalf("default duration = %v, want 3h", end.Sub(start))
	}
	// The instant reflects the fixed offset.
	if got := start.UTC().Hour(); got != 1 {
		t.Fatalf("start UTC hour = %d, want 1 (19:00-06:00 next day)", got)
	}
}

func TestStartEndDefaultsAndRollover(t *testing.T) {
	t.Parallel()
	loc := time.UTC

	start, _, err := StartEnd(event.Envelope{Date: "2026-03-15"}, loc)
	if err != nil {
		t.Fatalf("StartEnd error: %v", err)
	}
	if start.Hour() != 19 {
		t.Fatalf("default start hour = %d, want 19", start.Hour())
	}

	start, end, err := StartEnd(event.Envelope{Date: "2026-03-15", Time: "22:00", EndTime: "01:00"}, loc)
	if err != nil {
		t.Fatalf("StartEnd error: %v", err)
	}
	if !end.After(start) || end.Day() != 16 {
		t.Fatalf("past-midnight end did not roll over: %v -> %v", start, end)
	}
}

func TestPostJSONDecodesAnswer(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"123","url":"https://example.com/e/123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", 5*time.Second, logx.Nop())
	resp, err := c.PostJSON(context.Background(), "/events/", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("PostJSON error: %v", err)
	}
	if resp["id"] != "123" {
		t.Fatalf("resp = %v", resp)
	}
}

func TestErrorDescription(t *testing.T) {
	t.Parallel()
	desc, ok := ErrorDescription(map[string]any{
		"error":             "INVALID_VENUE",
		"error_description": "The venue id is unknown.",
	})
	if !ok || desc != "The venue id is unknown." {
		t.Fatalf("ErrorDescription = %q, %v", desc, ok)
	}
	if _, ok := ErrorDescription(map[string]any{"id": "123"}); ok {
		t.Fatal("clean answer classified as error")
	}
	desc, ok = ErrorDescription(map[string]any{"error": "NOT_AUTHORIZED"})
	if !ok || desc != "NOT_AUTHORIZED" {
		t.Fatalf("ErrorDescription = %q, %v", desc, ok)
	}
}
