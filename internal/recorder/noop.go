package recorder

import "TrendSpotter/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(_ *ScanRun, _ []model.SignalRow) error { return nil }
func (n *NoopRecorder) LastRun() (*ScanRun, error)                       { return nil, nil }
func (n *NoopRecorder) Close() error                                     { return nil }
