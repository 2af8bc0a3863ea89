// Package scanner orchestrates one scan: universe, batched retrieval,
// signal evaluation, and result sinking.
package scanner

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"TrendSpotter/internal/batch"
	"TrendSpotter/internal/config"
	"TrendSpotter/internal/model"
	"TrendSpotter/internal/provider"
	"TrendSpotter/internal/recorder"
	"TrendSpotter/internal/report"
	"TrendSpotter/internal/signal"
	"TrendSpotter/internal/universe"
)

// Scanner wires the scan pipeline together and optionally re-runs it on a
// cron schedule.
type Scanner struct {
	Universe *universe.Builder
	Provider provider.Provider
	Sink     *report.Sink
	Recorder recorder.Recorder
	Cfg      *config.Config
	Cron     *cron.Cron
	Ctx      context.Context
}

// New creates a Scanner.
func New(ctx context.Context, ub *universe.Builder, p provider.Provider, sink *report.Sink, rec recorder.Recorder, cfg *config.Config) *Scanner {
	return &Scanner{
		Universe: ub,
		Provider: p,
		Sink:     sink,
		Recorder: rec,
		Cfg:      cfg,
		Cron:     cron.New(cron.WithSeconds()),
		Ctx:      ctx,
	}
}

// RunScan executes one full scan. It fails only when the universe cannot be
// built; batch retrieval failures are logged and skipped, and the result
// artifact is written regardless of how many batches survived.
func (s *Scanner) RunScan() (*model.ScanResult, error) {
	result := &model.ScanResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	symbols, err := s.Universe.Build()
	if err != nil {
		return nil, fmt.Errorf("build universe: %w", err)
	}
	result.UniverseSize = len(symbols)
	log.Printf("[INFO] scan %s: universe of %d symbols", result.RunID, len(symbols))

	params := signal.Params{
		MinPrice:        s.Cfg.Scan.MinPrice,
		MinAvgDollarVol: s.Cfg.Scan.MinAvgDollarVol,
		MinLastDayVol:   s.Cfg.Scan.MinLastDayVol,
		DaysRequired:    s.Cfg.Scan.DaysRequired,
		PctPerDay:       s.Cfg.Scan.PctPerDay,
	}

	batches := batch.Partition(symbols, s.Cfg.Scan.BatchSize)
	result.BatchCount = len(batches)
	for i, group := range batches {
		series, err := s.Provider.FetchDailySeries(group, s.Cfg.Scan.LookbackDays)
		if err != nil {
			log.Printf("[WARN] batch %d/%d failed, skipping: %v", i+1, len(batches), err)
			result.FailedBatches++
			continue
		}
		result.Rows = append(result.Rows, signal.Evaluate(series, params)...)
	}

	outcome, err := s.Sink.Finalize(result.Rows)
	result.Summary = outcome.Summary
	result.Notified = outcome.Notified
	result.CSVPath = outcome.CSVPath
	if err != nil {
		log.Printf("[ERROR] finalize results: %v", err)
	}
	result.FinishedAt = time.Now()

	if err := s.Recorder.RecordScan(&recorder.ScanRun{
		ID:            result.RunID,
		StartedAt:     result.StartedAt,
		FinishedAt:    result.FinishedAt,
		UniverseSize:  result.UniverseSize,
		BatchCount:    result.BatchCount,
		FailedBatches: result.FailedBatches,
		Matches:       len(result.Rows),
		CSVPath:       result.CSVPath,
		Notified:      result.Notified,
		Summary:       result.Summary,
	}, result.Rows); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}

	log.Printf("[INFO] %s CSV saved to %s", result.Summary, result.CSVPath)
	return result, nil
}

// Schedule registers the scan under the given cron expression.
func (s *Scanner) Schedule(cronSpec string) error {
	if _, err := s.Cron.AddFunc(cronSpec, s.runScheduled); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scanner) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scanner) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scanner) runScheduled() {
	log.Println("[INFO] running scheduled scan")
	if _, err := s.RunScan(); err != nil {
		log.Printf("[ERROR] scheduled scan: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scanner) HandleCommand(command string) string {
	switch command {
	case "/scan":
		go s.runScheduled()
		return "Scan started."
	case "/last":
		run, err := s.Recorder.LastRun()
		if err != nil {
			return fmt.Sprintf("Failed to read last run: %v", err)
		}
		if run == nil {
			return "No scans recorded yet."
		}
		return fmt.Sprintf("%s | %s\nUniverse: %d, batches: %d (%d failed), matches: %d\nCSV: %s",
			run.FinishedAt.Format("2006-01-02 15:04"), run.Summary,
			run.UniverseSize, run.BatchCount, run.FailedBatches, run.Matches, run.CSVPath)
	default:
		return "Available commands:\n• /scan — run a scan now\n• /last — show the last recorded run"
	}
}
