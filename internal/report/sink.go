package report

import (
	"log"
	"sort"
	"time"

	"TrendSpotter/internal/model"
)

// Notifier delivers a text message to an external channel.
type Notifier interface {
	Send(text string) error
}

// Outcome is what Finalize produced: the persisted artifact, whether the
// notification went out, and the status line.
type Outcome struct {
	CSVPath  string
	Notified bool
	Summary  string
}

// Sink routes the assembled result set to persistence and notification.
// A nil Notifier means credentials were not configured and delivery is a
// no-op.
type Sink struct {
	OutputDir    string
	DaysRequired int
	PctPerDay    float64
	Notifier     Notifier
}

// NewSink creates a Sink writing artifacts under outputDir.
func NewSink(outputDir string, daysRequired int, pctPerDay float64, notifier Notifier) *Sink {
	return &Sink{
		OutputDir:    outputDir,
		DaysRequired: daysRequired,
		PctPerDay:    pctPerDay,
		Notifier:     notifier,
	}
}

// Finalize writes the CSV artifact (even when rows is empty), composes the
// summary line, and attempts notification. A delivery failure is reported
// through Notified=false and never discards the written artifact.
func (s *Sink) Finalize(rows []model.SignalRow) (Outcome, error) {
	sorted := make([]model.SignalRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Ticker < sorted[j].Ticker })

	now := time.Now()
	out := Outcome{Summary: Summary(sorted, s.DaysRequired, s.PctPerDay)}

	path, err := WriteCSV(s.OutputDir, sorted, s.DaysRequired, s.PctPerDay, now)
	if err != nil {
		return out, err
	}
	out.CSVPath = path

	if s.Notifier != nil {
		msg := FormatScanReport(sorted, out.Summary, now)
		if err := s.Notifier.Send(msg); err != nil {
			log.Printf("[WARN] notification failed: %v", err)
		} else {
			out.Notified = true
		}
	}
	return out, nil
}
