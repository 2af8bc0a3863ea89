package recorder

import (
	"time"

	"TrendSpotter/internal/model"
)

// ScanRun is the persisted summary of one completed scan.
type ScanRun struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	UniverseSize  int
	BatchCount    int
	FailedBatches int
	Matches       int
	CSVPath       string
	Notified      bool
	Summary       string
}

// Recorder persists scan history for later inspection.
type Recorder interface {
	RecordScan(run *ScanRun, rows []model.SignalRow) error
	LastRun() (*ScanRun, error)
	Close() error
}
