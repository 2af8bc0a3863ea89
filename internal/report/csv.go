package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"TrendSpotter/internal/model"
)

// csvFileName embeds the rule (days x threshold) and the scan date, e.g.
// momentum_3x5_20260901.csv.
func csvFileName(days int, pctPerDay float64, now time.Time) string {
	return fmt.Sprintf("momentum_%dx%s_%s.csv",
		days, strconv.FormatFloat(pctPerDay, 'f', -1, 64), now.Format("20060102"))
}

// WriteCSV persists the result rows under dir, creating it if absent. The
// header is written even for an empty result set.
func WriteCSV(dir string, rows []model.SignalRow, days int, pctPerDay float64, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, csvFileName(days, pctPerDay, now))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ticker", "last_close", "cumulative_return_pct"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Ticker,
			strconv.FormatFloat(r.LastClose, 'f', -1, 64),
			strconv.FormatFloat(r.CumulativeReturnPct, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}
