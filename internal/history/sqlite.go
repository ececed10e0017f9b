package history

import (
	"context"
	"database/sql"
	"embed"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"eventcast/internal/report"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type sqliteSink struct {
	db *sql.DB
}

func openSQLite(path string) (Sink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	s := &sqliteSink{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *sqliteSink) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteSink) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record upserts one row per platform result, keyed by (run, platform), so
// re-recording a run is harmless.
func (s *sqliteSink) Record(ctx context.Context, rep report.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, res := range rep.Results {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO submissions(run_id, platform, success, url, message, err, dry_run, at)
			 VALUES(?,?,?,?,?,?,?,?)
			 ON CONFLICT(run_id, platform) DO UPDATE SET
			   success=excluded.success, url=excluded.url, message=excluded.message,
			   err=excluded.err, dry_run=excluded.dry_run, at=excluded.at`,
			rep.RunID, res.Platform, res.Success, nullStr(res.URL), nullStr(res.Message),
			nullStr(res.Error), res.DryRun, formatAt(res.At),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
