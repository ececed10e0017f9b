// Package history records each run's per-platform results in a local
// SQLite file so the dashboard's status collaborator can pick them up.
//
// It is purely observational: no queueing, no retries, no scheduling. The
// sink is disabled unless a path is configured.
package history

import (
	"context"
	"time"

	"eventcast/internal/report"
)

// Sink receives a finished report. Implementations must tolerate being
// handed the same run twice (re-invocations happen).
type Sink interface {
	Record(ctx context.Context, rep report.Report) error
	Close() error
}

// Open initializes the configured sink. An empty path disables history
// and returns a no-op sink.
func Open(path string) (Sink, error) {
	if path == "" {
		return NopSink{}, nil
	}
	return openSQLite(path)
}

// NopSink discards reports.
type NopSink struct{}

func (NopSink) Record(context.Context, report.Report) error { return nil }
func (NopSink) Close() error                                { return nil }

func formatAt(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format(time.RFC3339Nano)
}
