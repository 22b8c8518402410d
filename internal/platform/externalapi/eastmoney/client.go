package eastmoney

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

// ErrUnsupportedMarket is returned when the client is asked for a market it
// does not serve.
var ErrUnsupportedMarket = errors.New("eastmoney: only the CN market is supported")

// quoteFields selects the push2 field set: f2 price, f3 percent change,
// f4 change, f5 volume, f9 P/E, f12 code, f14 name, f15 high, f16 low,
// f17 open, f18 previous close, f20 market cap.
const quoteFields = "f2,f3,f4,f5,f9,f12,f14,f15,f16,f17,f18,f20"

// Client fetches CN quotes from the Eastmoney ulist endpoint. The response
// is JSON; fields are plucked with gjson because the payload nests a sparse
// numeric-keyed schema that is not worth a struct.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a Client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Name identifies this source in logs.
func (c *Client) Name() string { return "eastmoney" }

// FetchQuotes retrieves quotes for the given exchange-prefixed symbols.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
	if market != entity.MarketCN {
		return nil, ErrUnsupportedMarket
	}
	if len(symbols) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	secids := make([]string, 0, len(symbols))
	for _, s := range symbols {
		secids = append(secids, secID(s))
	}

	q := url.Values{}
	q.Set("secids", strings.Join(secids, ","))
	q.Set("fields", quoteFields)
	q.Set("fltt", "2")
	q.Set("invt", "2")
	u := fmt.Sprintf("%s/api/qt/ulist.np/get?%s", strings.TrimRight(c.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Referer", c.cfg.Referer)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

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
		return nil, fmt.Errorf("eastmoney http %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("eastmoney: read body: %w", err)
	}

	return parseDiff(body, symbols), nil
}

// parseDiff maps the data.diff array back onto the requested symbols. The
// upstream echoes the bare code in f12, so the exchange prefix is restored
// from the request order-independent lookup.
func parseDiff(body []byte, symbols []string) []entity.Quote {
	bySuffix := make(map[string]string, len(symbols))
	for _, s := range symbols {
		bySuffix[bareCode(s)] = s
	}

	quotes := make([]entity.Quote, 0, len(symbols))
	gjson.GetBytes(body, "data.diff").ForEach(func(_, item gjson.Result) bool {
		code := item.Get("f12").String()
		symbol, ok := bySuffix[code]
		if !ok {
			return true
		}

		price := item.Get("f2").Float()
		prevClose := item.Get("f18").Float()
		change := entity.Round2(price - prevClose)
		changePercent := 0.0
		if prevClose != 0 {
			changePercent = entity.Round2(change / prevClose * 100)
		}

		name := item.Get("f14").String()
		quotes = append(quotes, entity.Quote{
			Symbol:        symbol,
			Name:          name,
			LocalName:     name,
			Market:        entity.MarketCN,
			Price:         price,
			Change:        change,
			ChangePercent: changePercent,
			Volume:        item.Get("f5").Int(),
			Open:          item.Get("f17").Float(),
			High:          item.Get("f15").Float(),
			Low:           item.Get("f16").Float(),
			PrevClose:     prevClose,
			MarketCap:     item.Get("f20").Float(),
			PERatio:       item.Get("f9").Float(),
		})
		return true
	})
	return quotes
}

// secID converts an exchange-prefixed symbol to the push2 secid form:
// sh600519 -> 1.600519, sz000858 -> 0.000858.
func secID(symbol string) string {
	switch {
	case strings.HasPrefix(symbol, "sh"):
		return "1." + symbol[2:]
	case strings.HasPrefix(symbol, "sz"):
		return "0." + symbol[2:]
	default:
		return "1." + symbol
	}
}

func bareCode(symbol string) string {
	if strings.HasPrefix(symbol, "sh") || strings.HasPrefix(symbol, "sz") {
		return symbol[2:]
	}
	return symbol
}
