package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"TrendSpotter/internal/model"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "scans.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	if run, err := r.LastRun(); err != nil || run != nil {
		t.Fatalf("expected no runs yet, got %+v, %v", run, err)
	}

	started := time.Now().Add(-time.Minute).Truncate(time.Second)
	run := &ScanRun{
		ID:            "run-1",
		StartedAt:     started,
		FinishedAt:    started.Add(30 * time.Second),
		UniverseSize:  5000,
		BatchCount:    20,
		FailedBatches: 1,
		Matches:       2,
		CSVPath:       "/out/momentum_3x5_20260901.csv",
		Notified:      true,
		Summary:       "Found 2 tickers meeting 3x>5% rule.",
	}
	rows := []model.SignalRow{
		{Ticker: "AAPL", LastClose: 13.9, CumulativeReturnPct: 37.62},
		{Ticker: "TSLA", LastClose: 250.1234, CumulativeReturnPct: 18.5},
	}
	if err := r.RecordScan(run, rows); err != nil {
		t.Fatalf("record scan: %v", err)
	}

	got, err := r.LastRun()
	if err != nil {
		t.Fatalf("last run: %v", err)
	}
	if got == nil {
		t.Fatal("expected a recorded run")
	}
	if got.ID != "run-1" || got.Matches != 2 || !got.Notified {
		t.Errorf("unexpected run: %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("expected started %v, got %v", started, got.StartedAt)
	}
	if got.Summary != run.Summary {
		t.Errorf("unexpected summary: %q", got.Summary)
	}
}

func TestSQLiteRecorder_LastRunPicksLatest(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "scans.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	old := time.Now().Add(-2 * time.Hour)
	recent := time.Now().Add(-time.Minute)
	if err := r.RecordScan(&ScanRun{ID: "old", StartedAt: old, FinishedAt: old}, nil); err != nil {
		t.Fatal(err)
	}
	if err := r.RecordScan(&ScanRun{ID: "recent", StartedAt: recent, FinishedAt: recent}, nil); err != nil {
		t.Fatal(err)
	}

	got, err := r.LastRun()
	if err != nil {
		t.Fatalf("last run: %v", err)
	}
	if got.ID != "recent" {
		t.Errorf("expected most recent run, got %q", got.ID)
	}
}
