package provider

import "TrendSpotter/internal/model"

// Provider retrieves daily OHLCV series for a batch of symbols. A partial
// result (some symbols missing) is valid; an error means the whole batch
// failed and should be skipped by the caller.
type Provider interface {
	FetchDailySeries(symbols []string, lookbackDays int) (map[string]model.TickerSeries, error)
	Name() string
}
