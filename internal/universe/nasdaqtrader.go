package universe

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	nasdaqListedURL = "https://ftp.nasdaqtrader.com/dynamic/SymDir/nasdaqlisted.txt"
	otherListedURL  = "https://ftp.nasdaqtrader.com/dynamic/SymDir/otherlisted.txt"
)

// NasdaqTraderSource fetches a pipe-delimited symbol directory file and
// extracts the ticker column named for its exchange.
type NasdaqTraderSource struct {
	Exchange     string
	URL          string
	SymbolColumn string
	Client       *http.Client
}

// NewNasdaqTraderSource creates a source with optional proxy support.
func NewNasdaqTraderSource(exchange, fileURL, symbolColumn, proxyURL string) *NasdaqTraderSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &NasdaqTraderSource{
		Exchange:     exchange,
		URL:          fileURL,
		SymbolColumn: symbolColumn,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// DefaultSources maps exchange identifiers to their listing sources.
// The NASDAQ directory names its ticker column "Symbol"; the combined
// NYSE/AMEX directory names it "ACT Symbol". Exchanges outside this map
// are skipped by the builder.
func DefaultSources(proxyURL string) map[string]ListingSource {
	return map[string]ListingSource{
		"NASDAQ": NewNasdaqTraderSource("NASDAQ", nasdaqListedURL, "Symbol", proxyURL),
		"NYSE":   NewNasdaqTraderSource("NYSE", otherListedURL, "ACT Symbol", proxyURL),
		"AMEX":   NewNasdaqTraderSource("AMEX", otherListedURL, "ACT Symbol", proxyURL),
	}
}

func (s *NasdaqTraderSource) Name() string { return s.Exchange }

// Symbols downloads the directory file and returns the raw ticker column.
func (s *NasdaqTraderSource) Symbols() ([]string, error) {
	req, err := http.NewRequest("GET", s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s listing: %w", s.Exchange, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch %s listing: status %d, body: %s", s.Exchange, resp.StatusCode, string(body))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s listing: %w", s.Exchange, err)
	}
	return parsePipeDelimited(string(body), s.SymbolColumn)
}

// parsePipeDelimited extracts one column from a pipe-delimited directory file.
// The trailer line carrying the file creation time is not a data row and is
// dropped. When the named column is absent the first column is used.
func parsePipeDelimited(text, column string) ([]string, error) {
	var lines []string
	for _, ln := range strings.Split(strings.TrimSpace(text), "\n") {
		ln = strings.TrimRight(ln, "\r")
		if ln == "" || strings.Contains(ln, "File Creation Time") {
			continue
		}
		lines = append(lines, ln)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty listing file")
	}

	header := strings.Split(lines[0], "|")
	col := 0
	for i, h := range header {
		if h == column {
			col = i
			break
		}
	}

	symbols := make([]string, 0, len(lines)-1)
	for _, ln := range lines[1:] {
		fields := strings.Split(ln, "|")
		if col >= len(fields) {
			continue
		}
		symbols = append(symbols, strings.TrimSpace(fields[col]))
	}
	return symbols, nil
}
