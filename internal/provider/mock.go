package provider

import (
	"time"

	"TrendSpotter/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Series map[string]model.TickerSeries
	Err    error
	Calls  [][]string
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchDailySeries(symbols []string, _ int) (map[string]model.TickerSeries, error) {
	m.Calls = append(m.Calls, symbols)
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]model.TickerSeries, len(symbols))
	for _, sym := range symbols {
		if s, ok := m.Series[sym]; ok {
			out[sym] = s
		}
	}
	return out, nil
}

// SeriesFromCloses builds a daily series from close prices, one bar per day
// ending today, with a constant volume.
func SeriesFromCloses(symbol string, closes []float64, volume float64) model.TickerSeries {
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Time:   time.Now().AddDate(0, 0, -(len(closes) - i)),
			Open:   c,
			High:   c * 1.005,
			Low:    c * 0.995,
			Close:  c,
			Volume: volume,
		}
	}
	return model.TickerSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}
}
