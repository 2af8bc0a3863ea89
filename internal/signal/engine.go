// Package signal detects the consecutive-day momentum pattern on retrieved
// price series.
package signal

import (
	"math"
	"sort"

	"TrendSpotter/internal/calculator"
	"TrendSpotter/internal/model"
)

// avgDollarVolBars is the trailing window used for the liquidity gate.
const avgDollarVolBars = 20

// Params holds the per-ticker gate and pattern thresholds.
type Params struct {
	MinPrice        float64
	MinAvgDollarVol float64
	MinLastDayVol   float64
	DaysRequired    int
	PctPerDay       float64
}

// SkipReason explains why a ticker produced no signal.
type SkipReason string

const (
	SkipNone                SkipReason = ""
	SkipEmptySeries         SkipReason = "empty_series"
	SkipPriceBelowMin       SkipReason = "price_below_min"
	SkipLowDollarVolume     SkipReason = "low_dollar_volume"
	SkipLowLastDayVolume    SkipReason = "low_last_day_volume"
	SkipInsufficientHistory SkipReason = "insufficient_history"
	SkipNoStreak            SkipReason = "no_streak"
)

// Evaluation is the explicit per-ticker outcome: a row on match, otherwise
// the reason the ticker was excluded.
type Evaluation struct {
	Ticker string
	Row    *model.SignalRow
	Skip   SkipReason
}

// Matched reports whether the evaluation produced a signal row.
func (e Evaluation) Matched() bool { return e.Row != nil }

// Evaluate runs the engine over one retrieved batch and returns the matched
// rows. Tickers are evaluated independently; an excluded ticker never
// affects the others.
func Evaluate(series map[string]model.TickerSeries, p Params) []model.SignalRow {
	tickers := make([]string, 0, len(series))
	for t := range series {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	var rows []model.SignalRow
	for _, t := range tickers {
		ev := EvaluateTicker(t, series[t], p)
		if ev.Matched() {
			rows = append(rows, *ev.Row)
		}
	}
	return rows
}

// EvaluateTicker applies the liquidity and price gates and the streak test
// to a single ticker's series.
func EvaluateTicker(ticker string, series model.TickerSeries, p Params) Evaluation {
	if ticker == "" {
		ticker = model.UnknownTicker
	}
	ev := Evaluation{Ticker: ticker}

	bars := series.CleanBars()
	if len(bars) == 0 {
		ev.Skip = SkipEmptySeries
		return ev
	}

	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	lastClose := closes[len(closes)-1]
	if math.IsNaN(lastClose) || lastClose < p.MinPrice {
		ev.Skip = SkipPriceBelowMin
		return ev
	}

	avgDollarVol, err := calculator.TrailingMean(calculator.DollarVolumes(closes, volumes), avgDollarVolBars)
	if err != nil || avgDollarVol < p.MinAvgDollarVol {
		ev.Skip = SkipLowDollarVolume
		return ev
	}

	lastVolume := volumes[len(volumes)-1]
	if math.IsNaN(lastVolume) {
		lastVolume = 0
	}
	if lastVolume < p.MinLastDayVol {
		ev.Skip = SkipLowLastDayVolume
		return ev
	}

	changes := calculator.PercentChanges(closes)
	if len(changes) < p.DaysRequired {
		ev.Skip = SkipInsufficientHistory
		return ev
	}

	// Only the most recent window is tested, not a rolling search.
	window := changes[len(changes)-p.DaysRequired:]
	for _, pct := range window {
		if pct <= p.PctPerDay {
			ev.Skip = SkipNoStreak
			return ev
		}
	}

	baseClose := closes[len(closes)-1-p.DaysRequired]
	cumReturn := (lastClose/baseClose - 1) * 100

	ev.Row = &model.SignalRow{
		Ticker:              ticker,
		LastClose:           round(lastClose, 4),
		CumulativeReturnPct: round(cumReturn, 2),
	}
	return ev
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
