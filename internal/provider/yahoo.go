package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"TrendSpotter/internal/model"
)

// fetchWorkers bounds concurrent chart requests within one batch.
const fetchWorkers = 8

// YahooProvider fetches daily series from the Yahoo Finance chart API.
// Requests are rate limited; Yahoo throttles unauthenticated clients.
type YahooProvider struct {
	Client  *http.Client
	BaseURL string
	limiter *rate.Limiter
}

// NewYahooProvider creates a provider with optional proxy support.
func NewYahooProvider(proxyURL string) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://query1.finance.yahoo.com",
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return math.NaN()
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return math.NaN()
	}
}

// FetchDailySeries retrieves each symbol's chart concurrently and returns
// whatever succeeded. It fails only when every symbol in a non-empty batch
// failed, which indicates a transport-level problem rather than per-symbol
// data gaps.
func (p *YahooProvider) FetchDailySeries(symbols []string, lookbackDays int) (map[string]model.TickerSeries, error) {
	if len(symbols) == 0 {
		return map[string]model.TickerSeries{}, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		series   = make(map[string]model.TickerSeries, len(symbols))
		firstErr error
	)

	jobs := make(chan string)
	for w := 0; w < fetchWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range jobs {
				bars, err := p.fetchChart(sym, lookbackDays)
				if err != nil {
					log.Printf("[WARN] yahoo fetch %s: %v", sym, err)
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				mu.Lock()
				series[sym] = model.TickerSeries{Symbol: sym, Bars: bars, FetchedAt: time.Now()}
				mu.Unlock()
			}
		}()
	}
	for _, sym := range symbols {
		jobs <- sym
	}
	close(jobs)
	wg.Wait()

	if len(series) == 0 {
		return nil, fmt.Errorf("yahoo batch of %d symbols: all fetches failed: %w", len(symbols), firstErr)
	}
	return series, nil
}

func (p *YahooProvider) fetchChart(symbol string, lookbackDays int) ([]model.PriceBar, error) {
	if err := p.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		p.BaseURL, url.PathEscape(symbol), rangeForDays(lookbackDays))

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data")
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.PriceBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		c := toFloat(quote.Close[i])
		if math.IsNaN(c) {
			continue // null bar (holiday etc.)
		}
		bars = append(bars, model.PriceBar{
			Time:   time.Unix(ts, 0),
			Open:   toFloat(quote.Open[i]),
			High:   toFloat(quote.High[i]),
			Low:    toFloat(quote.Low[i]),
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > lookbackDays {
		bars = bars[len(bars)-lookbackDays:]
	}
	return bars, nil
}

// rangeForDays maps a calendar lookback onto the nearest Yahoo range token.
func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}
