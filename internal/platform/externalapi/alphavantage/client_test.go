package alphavantage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sector_dashboard/internal/feature/quotes/domain/entity"
)

func testConfig(base string) Config {
	return Config{APIKey: "demo", BaseURL: base, Timeout: 2 * time.Second}
}

func globalQuote(symbol string, price, prevClose float64) string {
	return fmt.Sprintf(`{
		"Global Quote": {
			"01. symbol": "%s",
			"02. open": "187.00",
			"03. high": "191.00",
			"04. low": "186.50",
			"05. price": "%.2f",
			"06. volume": "42000000",
			"08. previous close": "%.2f"
		}
	}`, symbol, price, prevClose)
}

// TestClient_FetchQuotes verifies per-symbol lookups and derived figures.
func TestClient_FetchQuotes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("function") != "GLOBAL_QUOTE" {
			t.Errorf("function = %q, want GLOBAL_QUOTE", r.URL.Query().Get("function"))
		}
		symbol := r.URL.Query().Get("symbol")
		_, _ = w.Write([]byte(globalQuote(symbol, 190.00, 185.00)))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())

	quotes, err := c.FetchQuotes(context.Background(), []string{"AAPL", "MSFT"}, entity.MarketUS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, want 2", len(quotes))
	}
	if quotes[0].Symbol != "AAPL" || quotes[1].Symbol != "MSFT" {
		t.Errorf("symbols = %s, %s", quotes[0].Symbol, quotes[1].Symbol)
	}
	if quotes[0].Price != 190.00 || quotes[0].PrevClose != 185.00 {
		t.Errorf("price/prevClose = %v/%v", quotes[0].Price, quotes[0].PrevClose)
	}
	if quotes[0].Change != 5.00 {
		t.Errorf("change = %v, want 5.00", quotes[0].Change)
	}
	if quotes[0].ChangePercent != 2.70 {
		t.Errorf("changePercent = %v, want 2.70", quotes[0].ChangePercent)
	}
	if quotes[0].Volume != 42000000 {
		t.Errorf("volume = %v", quotes[0].Volume)
	}
}

// TestClient_FetchQuotes_PartialFailure verifies one failed symbol does not
// abort the batch.
func TestClient_FetchQuotes_PartialFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") == "BAD" {
			_, _ = w.Write([]byte(`{"Global Quote": {}}`))
			return
		}
		_, _ = w.Write([]byte(globalQuote(r.URL.Query().Get("symbol"), 100.00, 99.00)))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())

	quotes, err := c.FetchQuotes(context.Background(), []string{"BAD", "NVDA"}, entity.MarketUS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 || quotes[0].Symbol != "NVDA" {
		t.Fatalf("quotes = %+v, want only NVDA", quotes)
	}
}

// TestClient_FetchQuotes_NoKey verifies the source declines cleanly when
// unconfigured so the chain can advance.
func TestClient_FetchQuotes_NoKey(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{BaseURL: "http://localhost:0", Timeout: time.Second}, http.DefaultClient)

	if _, err := c.FetchQuotes(context.Background(), []string{"AAPL"}, entity.MarketUS); err != ErrNotConfigured {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
}

// TestClient_FetchQuotes_UnsupportedMarket verifies the market guard.
func TestClient_FetchQuotes_UnsupportedMarket(t *testing.T) {
	t.Parallel()

	c := NewClient(testConfig("http://localhost:0"), http.DefaultClient)

	if _, err := c.FetchQuotes(context.Background(), []string{"sh600519"}, entity.MarketCN); err != ErrUnsupportedMarket {
		t.Fatalf("error = %v, want ErrUnsupportedMarket", err)
	}
}

// TestClient_FetchQuotes_AllFail verifies the batch errors when nothing
// resolves.
func TestClient_FetchQuotes_AllFail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())

	if _, err := c.FetchQuotes(context.Background(), []string{"AAPL"}, entity.MarketUS); err == nil {
		t.Fatal("expected an error when every symbol fails")
	}
}
