package model

import "time"

// UnknownTicker labels a series that arrived without ticker identity.
const UnknownTicker = "UNKNOWN"

// SignalRow is one matched ticker in the scan output.
type SignalRow struct {
	Ticker              string
	LastClose           float64
	CumulativeReturnPct float64
}

// ScanResult summarizes one completed scan run.
type ScanResult struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	UniverseSize  int
	BatchCount    int
	FailedBatches int
	Rows          []SignalRow
	CSVPath       string
	Notified      bool
	Summary       string
}
