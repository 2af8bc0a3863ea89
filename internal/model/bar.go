package model

import (
	"math"
	"time"
)

// PriceBar represents a single daily OHLCV observation.
type PriceBar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Valid reports whether the bar carries usable close and volume values.
func (b PriceBar) Valid() bool {
	return !math.IsNaN(b.Close) && !math.IsNaN(b.Volume)
}

// TickerSeries holds the retrieved daily bars for one ticker, ordered by date.
type TickerSeries struct {
	Symbol    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// CleanBars returns the bars with unusable rows dropped, preserving order.
func (s TickerSeries) CleanBars() []PriceBar {
	out := make([]PriceBar, 0, len(s.Bars))
	for _, b := range s.Bars {
		if b.Valid() {
			out = append(out, b)
		}
	}
	return out
}
