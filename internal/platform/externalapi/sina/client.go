package sina

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"sector_dashboard/internal/feature/quotes/domain/entity"
	"sector_dashboard/internal/shared/ratelimiter"
)

// ErrUnsupportedMarket is returned when the client is asked for a market it
// does not serve.
var ErrUnsupportedMarket = errors.New("sina: only the CN market is supported")

// Client fetches CN quotes from the Sina line-protocol endpoint. Several base
// URLs may be configured; they are attempted in order and the first one
// yielding at least one parsed quote wins.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// NewClient creates a Client. limiter may be nil to disable rate limiting.
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// Name identifies this source in logs.
func (c *Client) Name() string { return "sina" }

// FetchQuotes retrieves quotes for the given symbols. Callers are responsible
// for deduplicating symbols. An attempt that errors, hangs past the timeout
// or parses zero records advances to the next base URL; when every candidate
// is exhausted the last error is returned.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
	if market != entity.MarketCN {
		return nil, ErrUnsupportedMarket
	}
	if len(symbols) == 0 {
		return nil, nil
	}
	if c.limiter != nil {
		c.limiter.WaitIfNeeded()
	}

	var lastErr error
	for _, base := range c.cfg.BaseURLs {
		quotes, err := c.fetchFrom(ctx, base, symbols, market)
		if err != nil {
			slog.Warn("quote source attempt failed", "source", c.Name(), "base", base, "error", err)
			lastErr = err
			continue
		}
		if len(quotes) > 0 {
			return quotes, nil
		}
		lastErr = fmt.Errorf("sina: %s returned no parseable records", base)
	}
	return nil, lastErr
}

func (c *Client) fetchFrom(ctx context.Context, base string, symbols []string, market entity.Market) ([]entity.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	u := strings.TrimRight(base, "/") + "/list=" + strings.Join(symbols, ",")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	// The upstream rejects requests without browser-shaped headers.
	req.Header.Set("Referer", c.cfg.Referer)
	req.Header.Set("Origin", c.cfg.Origin)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.8,en-US;q=0.5,en;q=0.3")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("sina http %d", res.StatusCode)
	}

	// Sina serves GBK, not UTF-8.
	body, err := io.ReadAll(transform.NewReader(res.Body, simplifiedchinese.GBK.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("sina: read body: %w", err)
	}

	return ParseResponse(string(body), market), nil
}
