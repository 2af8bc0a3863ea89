package report

import (
	"fmt"
	"strings"
	"time"

	"TrendSpotter/internal/model"
)

// maxNotifyRows caps how many matches the notification message lists.
const maxNotifyRows = 25

// Summary composes the one-line scan outcome.
func Summary(rows []model.SignalRow, days int, pctPerDay float64) string {
	if len(rows) == 0 {
		return "No tickers found."
	}
	return fmt.Sprintf("Found %d tickers meeting %dx>%s%% rule.",
		len(rows), days, trimFloat(pctPerDay))
}

// FormatScanReport formats the scan outcome into a Telegram message.
func FormatScanReport(rows []model.SignalRow, summary string, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>TrendSpotter Scan</b> | %s\n\n", now.Format("2006-01-02")))
	b.WriteString(summary)
	b.WriteString("\n")

	for i, r := range rows {
		if i == maxNotifyRows {
			b.WriteString(fmt.Sprintf("… and %d more\n", len(rows)-maxNotifyRows))
			break
		}
		b.WriteString(fmt.Sprintf("  %s: close %.4f, +%.2f%%\n", r.Ticker, r.LastClose, r.CumulativeReturnPct))
	}

	return b.String()
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
