// Package report holds the per-platform submission outcomes and the ordered
// aggregate handed back to the caller.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Result is one platform's outcome. Immutable once created.
type Result struct {
	Platform string    `json:"platform"`
	Success  bool      `json:"success"`
	URL      string    `json:"url,omitempty"`
	Message  string    `json:"message,omitempty"`
	Error    string    `json:"error,omitempty"`
	DryRun   bool      `json:"dryRun"`
	At       time.Time `json:"at"`
}

// Failure builds a failed Result from an adapter error.
func Failure(platform string, err error, dryRun bool) Result {
	return Result{
		Platform: platform,
		Success:  false,
		Message:  "submission failed",
		Error:    err.Error(),
		DryRun:   dryRun,
		At:       time.Now(),
	}
}

// Report is the ordered list of results, one per invoked adapter, in the
// order adapters were supplied (not completion order).
type Report struct {
	RunID   string    `json:"runId,omitempty"`
	Started time.Time `json:"started"`
	Results []Result  `json:"results"`
}

// AllSucceeded is true when every result in the report succeeded.
// An empty report trivially succeeds.
func (r Report) AllSucceeded() bool {
	for _, res := range r.Results {
		if !res.Success {
			return false
		}
	}
	return true
}

// JSON renders the report as indented JSON for the status collaborator.
func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Text renders a human-readable summary, one line per platform.
func (r Report) Text() string {
	var b strings.Builder
	for _, res := range r.Results {
		status := "FAIL"
		if res.Success {
			status = "OK"
		}
		fmt.Fprintf(&b, "%-4s %-12s", status, res.Platform)
		if res.DryRun {
			b.WriteString(" [dry-run]")
		}
		if res.URL != "" {
			fmt.Fprintf(&b, " %s", res.URL)
		}
		if res.Message != "" {
			fmt.Fprintf(&b, " - %s", res.Message)
		}
		if res.Error != "" {
			fmt.Fprintf(&b, " (%s)", res.Error)
		}
		b.WriteString("\n")
	}
	if r.AllSucceeded() {
		fmt.Fprintf(&b, "%d/%d platforms succeeded\n", len(r.Results), len(r.Results))
	} else {
		ok := 0
		for _, res := range r.Results {
			if res.Success {
				ok++
			}
		}
		fmt.Fprintf(&b, "%d/%d platforms succeeded, review the rest manually\n", ok, len(r.Results))
	}
	return b.String()
}
