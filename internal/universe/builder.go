package universe

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
)

// blacklist holds sentinel placeholders the symbol directories emit for
// non-tradable entries.
var blacklist = map[string]bool{
	"TEST": true,
	"ZZZZ": true,
	"N/A":  true,
}

// Builder resolves the candidate ticker universe for one scan.
type Builder struct {
	Sources      map[string]ListingSource
	Exchanges    []string
	ExtraTickers []string
	LimitTickers string
}

// NewBuilder creates a Builder over the given listing sources.
func NewBuilder(sources map[string]ListingSource, exchanges, extras []string, limit string) *Builder {
	return &Builder{
		Sources:      sources,
		Exchanges:    exchanges,
		ExtraTickers: extras,
		LimitTickers: limit,
	}
}

// Build returns the deduplicated, sorted candidate universe. An exchange
// without a mapped source is skipped; a mapped source that fails to fetch
// aborts the build.
func (b *Builder) Build() ([]string, error) {
	var raw []string
	for _, ex := range b.Exchanges {
		ex = strings.ToUpper(strings.TrimSpace(ex))
		src, ok := b.Sources[ex]
		if !ok {
			log.Printf("[WARN] no listing source for exchange %q, skipping", ex)
			continue
		}
		symbols, err := src.Symbols()
		if err != nil {
			return nil, fmt.Errorf("listing source %s: %w", src.Name(), err)
		}
		raw = append(raw, symbols...)
	}

	var syms []string
	for _, s := range raw {
		if !isUpperASCII(s) || blacklist[s] {
			continue
		}
		syms = append(syms, s)
	}

	// Extras are operator-supplied and trusted as-is.
	syms = append(syms, b.ExtraTickers...)

	if b.LimitTickers != "" {
		if n, err := strconv.Atoi(b.LimitTickers); err == nil && n >= 0 && n < len(syms) {
			syms = syms[:n]
		}
	}

	return dedupeSorted(syms), nil
}

// isUpperASCII reports whether s is non-empty, pure ASCII, contains at least
// one uppercase letter, and no lowercase letters.
func isUpperASCII(s string) bool {
	if s == "" {
		return false
	}
	hasUpper := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 {
			return false
		}
		if c >= 'a' && c <= 'z' {
			return false
		}
		if c >= 'A' && c <= 'Z' {
			hasUpper = true
		}
	}
	return hasUpper
}

func dedupeSorted(syms []string) []string {
	seen := make(map[string]bool, len(syms))
	out := make([]string, 0, len(syms))
	for _, s := range syms {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
