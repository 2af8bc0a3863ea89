package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"TrendSpotter/internal/model"
)

// RESTProvider fetches daily bars from a self-hosted market data REST API,
// used when a base URL is configured instead of Yahoo.
type RESTProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTProvider creates a provider with optional proxy support.
func NewRESTProvider(baseURL, apiKey, proxyURL string) *RESTProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (p *RESTProvider) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars endpoint.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// FetchDailySeries retrieves each symbol sequentially. Like the Yahoo
// provider, a batch fails only when no symbol could be fetched.
func (p *RESTProvider) FetchDailySeries(symbols []string, lookbackDays int) (map[string]model.TickerSeries, error) {
	series := make(map[string]model.TickerSeries, len(symbols))
	var firstErr error
	for _, sym := range symbols {
		bars, err := p.fetchBars(sym, lookbackDays)
		if err != nil {
			log.Printf("[WARN] rest fetch %s: %v", sym, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		series[sym] = model.TickerSeries{Symbol: sym, Bars: bars, FetchedAt: time.Now()}
	}
	if len(series) == 0 && len(symbols) > 0 {
		return nil, fmt.Errorf("rest batch of %d symbols: all fetches failed: %w", len(symbols), firstErr)
	}
	return series, nil
}

func (p *RESTProvider) fetchBars(symbol string, limit int) ([]model.PriceBar, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d", p.BaseURL, url.QueryEscape(symbol), limit)
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}
	var raw []restBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.PriceBar, len(raw))
	for i, rb := range raw {
		bars[i] = model.PriceBar{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
