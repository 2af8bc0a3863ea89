package universe

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const nasdaqListing = "Symbol|Security Name|Market Category\r\n" +
	"AAPL|Apple Inc.|Q\r\n" +
	"MSFT|Microsoft Corp.|Q\r\n" +
	"File Creation Time: 0831202522:01|||\r\n"

const otherListing = "ACT Symbol|Security Name|Exchange\r\n" +
	"IBM|IBM Corp.|N\r\n" +
	"GE|General Electric|N\r\n" +
	"File Creation Time: 0831202522:01|||\r\n"

func TestParsePipeDelimited_NamedColumn(t *testing.T) {
	got, err := parsePipeDelimited(otherListing, "ACT Symbol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"IBM", "GE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParsePipeDelimited_FallbackToFirstColumn(t *testing.T) {
	got, err := parsePipeDelimited(otherListing, "Symbol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "Symbol" is absent, so the first column is used.
	want := []string{"IBM", "GE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParsePipeDelimited_SkipsCreationTimeTrailer(t *testing.T) {
	got, err := parsePipeDelimited(nasdaqListing, "Symbol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range got {
		if s == "File Creation Time: 0831202522:01" {
			t.Error("creation-time trailer leaked into symbols")
		}
	}
	if len(got) != 2 {
		t.Errorf("expected 2 symbols, got %v", got)
	}
}

func TestNasdaqTraderSource_Symbols(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(nasdaqListing))
	}))
	defer srv.Close()

	src := &NasdaqTraderSource{
		Exchange:     "NASDAQ",
		URL:          srv.URL,
		SymbolColumn: "Symbol",
		Client:       srv.Client(),
	}
	got, err := src.Symbols()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"AAPL", "MSFT"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNasdaqTraderSource_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := &NasdaqTraderSource{
		Exchange:     "NYSE",
		URL:          srv.URL,
		SymbolColumn: "ACT Symbol",
		Client:       srv.Client(),
	}
	if _, err := src.Symbols(); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
