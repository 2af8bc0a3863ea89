package scanner

import (
	"context"
	"errors"
	"os"
	"testing"

	"TrendSpotter/internal/config"
	"TrendSpotter/internal/model"
	"TrendSpotter/internal/provider"
	"TrendSpotter/internal/recorder"
	"TrendSpotter/internal/report"
	"TrendSpotter/internal/universe"
)

type fakeSource struct {
	symbols []string
	err     error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Symbols() ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.symbols, nil
}

// scriptedProvider fails or answers per call, in order.
type scriptedProvider struct {
	responses []map[string]model.TickerSeries
	errs      []error
	call      int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) FetchDailySeries(symbols []string, _ int) (map[string]model.TickerSeries, error) {
	i := p.call
	p.call++
	if i < len(p.errs) && p.errs[i] != nil {
		return nil, p.errs[i]
	}
	if i < len(p.responses) {
		return p.responses[i], nil
	}
	return map[string]model.TickerSeries{}, nil
}

type captureRecorder struct {
	run  *recorder.ScanRun
	rows []model.SignalRow
}

func (c *captureRecorder) RecordScan(run *recorder.ScanRun, rows []model.SignalRow) error {
	c.run = run
	c.rows = rows
	return nil
}
func (c *captureRecorder) LastRun() (*recorder.ScanRun, error) { return c.run, nil }
func (c *captureRecorder) Close() error                        { return nil }

func testConfig(t *testing.T, batchSize int) *config.Config {
	t.Helper()
	cfg, err := config.Load(t.TempDir() + "/missing.yaml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Scan.BatchSize = batchSize
	cfg.Output.Dir = t.TempDir()
	return cfg
}

func newTestScanner(t *testing.T, src universe.ListingSource, prov provider.Provider, cfg *config.Config) (*Scanner, *captureRecorder) {
	t.Helper()
	ub := universe.NewBuilder(map[string]universe.ListingSource{"NASDAQ": src},
		[]string{"NASDAQ"}, nil, "")
	sink := report.NewSink(cfg.Output.Dir, cfg.Scan.DaysRequired, cfg.Scan.PctPerDay, nil)
	rec := &captureRecorder{}
	return New(context.Background(), ub, prov, sink, rec, cfg), rec
}

func TestRunScan_FailedBatchDoesNotAbort(t *testing.T) {
	match := provider.SeriesFromCloses("WINS", []float64{10, 10.1, 11.2, 12.5, 13.9}, 1000000)
	prov := &scriptedProvider{
		errs: []error{errors.New("transport failure"), nil},
		responses: []map[string]model.TickerSeries{
			nil,
			{"WINS": match},
		},
	}
	cfg := testConfig(t, 2)
	// Batch size 2 over 4 symbols: WINS lands in the second batch.
	sc, rec := newTestScanner(t, &fakeSource{symbols: []string{"AAAA", "BBBB", "CCCC", "WINS"}}, prov, cfg)

	result, err := sc.RunScan()
	if err != nil {
		t.Fatalf("batch failure must not abort the scan: %v", err)
	}
	if result.FailedBatches != 1 {
		t.Errorf("expected 1 failed batch, got %d", result.FailedBatches)
	}
	if len(result.Rows) != 1 || result.Rows[0].Ticker != "WINS" {
		t.Errorf("expected only the surviving batch's match, got %v", result.Rows)
	}
	if rec.run == nil || rec.run.Matches != 1 {
		t.Errorf("expected recorded run with 1 match, got %+v", rec.run)
	}
}

func TestRunScan_EmptyUniverse(t *testing.T) {
	prov := &scriptedProvider{}
	cfg := testConfig(t, 250)
	sc, _ := newTestScanner(t, &fakeSource{symbols: nil}, prov, cfg)

	result, err := sc.RunScan()
	if err != nil {
		t.Fatalf("empty universe must not fail: %v", err)
	}
	if result.Summary != "No tickers found." {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if prov.call != 0 {
		t.Errorf("expected no provider calls for empty universe, got %d", prov.call)
	}
	if _, statErr := os.Stat(result.CSVPath); statErr != nil {
		t.Errorf("empty artifact must still be written: %v", statErr)
	}
}

func TestRunScan_ListingFailureAborts(t *testing.T) {
	transportErr := errors.New("ftp unreachable")
	cfg := testConfig(t, 250)
	sc, rec := newTestScanner(t, &fakeSource{err: transportErr}, &scriptedProvider{}, cfg)

	if _, err := sc.RunScan(); !errors.Is(err, transportErr) {
		t.Fatalf("expected listing failure to abort the scan, got %v", err)
	}
	if rec.run != nil {
		t.Error("no run should be recorded when the universe build fails")
	}
}

func TestHandleCommand(t *testing.T) {
	cfg := testConfig(t, 250)
	sc, rec := newTestScanner(t, &fakeSource{symbols: nil}, &scriptedProvider{}, cfg)

	if reply := sc.HandleCommand("/last"); reply != "No scans recorded yet." {
		t.Errorf("unexpected /last reply before any run: %q", reply)
	}

	if _, err := sc.RunScan(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if rec.run == nil {
		t.Fatal("expected a recorded run")
	}
	reply := sc.HandleCommand("/last")
	if reply == "No scans recorded yet." {
		t.Errorf("expected run details, got %q", reply)
	}

	if reply := sc.HandleCommand("/bogus"); reply == "" {
		t.Error("expected help text for unknown command")
	}
}
