package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"sector_dashboard/internal/feature/quotes/domain/entity"
)

var (
	// ErrNotConfigured is returned when no API key is set; the source chain
	// treats it like any other failed attempt and moves on.
	ErrNotConfigured = errors.New("alphavantage: no API key configured")
	// ErrUnsupportedMarket is returned for non-US markets.
	ErrUnsupportedMarket = errors.New("alphavantage: only the US market is supported")
)

// Client fetches US quotes from the GLOBAL_QUOTE endpoint, one request per
// symbol. Quote fields arrive under numbered keys ("05. price"), plucked
// with gjson.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a Client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Name identifies this source in logs.
func (c *Client) Name() string { return "alphavantage" }

// FetchQuotes retrieves quotes for the given tickers. A symbol whose lookup
// fails is skipped; the batch fails only when nothing resolves.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
	if market != entity.MarketUS {
		return nil, ErrUnsupportedMarket
	}
	if c.cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if len(symbols) == 0 {
		return nil, nil
	}

	quotes := make([]entity.Quote, 0, len(symbols))
	var lastErr error
	for _, symbol := range symbols {
		q, err := c.fetchOne(ctx, symbol)
		if err != nil {
			slog.Warn("US quote lookup failed", "symbol", symbol, "error", err)
			lastErr = err
			continue
		}
		quotes = append(quotes, q)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("alphavantage: no symbols resolved: %w", lastErr)
	}
	return quotes, nil
}

func (c *Client) fetchOne(ctx context.Context, symbol string) (entity.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	p := url.Values{}
	p.Set("function", "GLOBAL_QUOTE")
	p.Set("symbol", symbol)
	p.Set("apikey", c.cfg.APIKey)
	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(c.cfg.BaseURL, "/"), p.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.Quote{}, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return entity.Quote{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.Quote{}, fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("alphavantage: read body: %w", err)
	}

	g := gjson.GetBytes(body, "Global Quote")
	if !g.Exists() || g.Get("05\\. price").String() == "" {
		return entity.Quote{}, fmt.Errorf("alphavantage: empty quote for %s", symbol)
	}

	price := g.Get("05\\. price").Float()
	prevClose := g.Get("08\\. previous close").Float()
	change := entity.Round2(price - prevClose)
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = entity.Round2(change / prevClose * 100)
	}

	return entity.Quote{
		Symbol:        symbol,
		Name:          symbol,
		Market:        entity.MarketUS,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        g.Get("06\\. volume").Int(),
		Open:          g.Get("02\\. open").Float(),
		High:          g.Get("03\\. high").Float(),
		Low:           g.Get("04\\. low").Float(),
		PrevClose:     prevClose,
	}, nil
}
