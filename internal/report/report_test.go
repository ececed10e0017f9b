package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAllSucceeded(t *testing.T) {
	t.Parallel()
	r := Report{Results: []Result{
		{Platform: "a", Success: true},
		{Platform: "b", Success: true},
	}}
	if !r.AllSucceeded() {
		t.Fatal("expected AllSucceeded")
	}
	r.Results = append(r.Results, Failure("c", errors.New("boom"), false))
	if r.AllSucceeded() {
		t.Fatal("expected AllSucceeded to be false after a failure")
	}
}

func TestTextEnumeratesEveryPlatform(t *testing.T) {
	t.Parallel()
	r := Report{Results: []Result{
		{Platform: "eventbrite", Success: true, URL: "https://example.com/e/1", At: time.Now()},
		{Platform: "cityspark", Success: false, Message: "may need manual review", At: time.Now()},
		{Platform: "localfeed", Success: true, DryRun: true, At: time.Now()},
	}}
	out := r.Text()
	for _, want := range []string{"eventbrite", "cityspark", "localfeed", "manual review", "[dry-run]", "2/3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Text() missing %q:\n%s", want, out)
		}
	}
}

func TestJSONRoundTripsResultOrder(t *testing.T) {
	t.Parallel()
	r := Report{RunID: "r1", Results: []Result{
		{Platform: "b"}, {Platform: "a"}, {Platform: "c"},
	}}
	b, err := r.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var got Report
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i, want := range []string{"b", "a", "c"} {
		if got.Results[i].Platform != want {
			t.Fatalf("result[%d] = %s, want %s", i, got.Results[i].Platform, want)
		}
	}
}
