package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TrendSpotter/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			run_id         TEXT PRIMARY KEY,
			started_at     INTEGER NOT NULL,
			finished_at    INTEGER NOT NULL,
			universe_size  INTEGER,
			batch_count    INTEGER,
			failed_batches INTEGER,
			matches        INTEGER,
			csv_path       TEXT,
			notified       INTEGER,
			summary        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON scan_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS scan_matches (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id                TEXT NOT NULL,
			ticker                TEXT NOT NULL,
			last_close            REAL,
			cumulative_return_pct REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_run ON scan_matches(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScan writes the run summary and its matched rows in one transaction.
func (r *SQLiteRecorder) RecordScan(run *ScanRun, rows []model.SignalRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	_, err = tx.Exec(`INSERT INTO scan_runs
		(run_id, started_at, finished_at, universe_size, batch_count, failed_batches,
		 matches, csv_path, notified, summary)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.StartedAt.Unix(), run.FinishedAt.Unix(),
		run.UniverseSize, run.BatchCount, run.FailedBatches,
		run.Matches, run.CSVPath, boolToInt(run.Notified), run.Summary,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}

	for _, row := range rows {
		if _, err := tx.Exec(`INSERT INTO scan_matches
			(run_id, ticker, last_close, cumulative_return_pct)
			VALUES (?,?,?,?)`,
			run.ID, row.Ticker, row.LastClose, row.CumulativeReturnPct,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert match %s: %w", row.Ticker, err)
		}
	}

	return tx.Commit()
}

// LastRun returns the most recently started run, or nil when none exist.
func (r *SQLiteRecorder) LastRun() (*ScanRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.db.QueryRow(`SELECT run_id, started_at, finished_at, universe_size,
		batch_count, failed_batches, matches, csv_path, notified, summary
		FROM scan_runs ORDER BY started_at DESC LIMIT 1`)

	var (
		run               ScanRun
		started, finished int64
		notified          int
	)
	err := row.Scan(&run.ID, &started, &finished, &run.UniverseSize,
		&run.BatchCount, &run.FailedBatches, &run.Matches,
		&run.CSVPath, &notified, &run.Summary)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last run: %w", err)
	}
	run.StartedAt = time.Unix(started, 0)
	run.FinishedAt = time.Unix(finished, 0)
	run.Notified = notified != 0
	return &run, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
