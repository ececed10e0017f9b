package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"eventcast/internal/report"
)

func TestOpenEmptyPathIsNop(t *testing.T) {
	t.Parallel()
	sink, err := Open("")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, ok := sink.(NopSink); !ok {
		t.Fatalf("sink = %T, want NopSink", sink)
	}
}

func TestSQLiteRecordAndRerecord(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "runs.db")
	sink, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer sink.Close()

	rep := report.Report{
		RunID: "run-1",
		Results: []report.Result{
			{Platform: "eventbrite", Success: true, URL: "https://example.com/e/1", At: time.Now()},
			{Platform: "cityspark", Success: false, Message: "may need manual review", At: time.Now()},
		},
	}
	if err := sink.Record(context.Background(), rep); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	// Recording the same run again must not fail or duplicate.
	rep.Results[1].Success = true
	if err := sink.Record(context.Background(), rep); err != nil {
		t.Fatalf("re-Record error: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM submissions WHERE run_id = 'run-1'`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("rows = %d, want 2", count)
	}
	var success bool
	if err := db.QueryRow(`SELECT success FROM submissions WHERE run_id='run-1' AND platform='cityspark'`).Scan(&success); err != nil {
		t.Fatalf("select: %v", err)
	}
	if !success {
		t.Fatal("re-record did not upsert")
	}
}
