package sina

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"sector_dashboard/internal/feature/quotes/domain/entity"
)

// The upstream answers one line per queried symbol:
//
//	var hq_str_sh600519="贵州茅台,1700.00,1690.00,1720.00,...";
//
// with at least 32 comma-separated fields. Field positions are a fixed
// contract: 0=name, 1=open, 2=previous close, 3=current price, 4=high,
// 5=low, 6=volume, 7=turnover amount; the rest is order-book depth and
// timestamps, which this system does not use.
const minFields = 32

const linePrefix = "var hq_str_"

// ErrShortRecord marks a record with fewer than the contractual 32 fields.
var ErrShortRecord = errors.New("sina: record has fewer than 32 fields")

// ParseLine converts one raw record payload into a Quote. The market tag is
// supplied by the caller: the protocol itself does not encode it.
func ParseLine(raw string, symbol string, market entity.Market) (entity.Quote, error) {
	fields := strings.Split(raw, ",")
	if len(fields) < minFields {
		return entity.Quote{}, fmt.Errorf("%w: got %d (symbol %s)", ErrShortRecord, len(fields), symbol)
	}

	name := fields[0]
	open, err := parseFloat(fields[1], "open", symbol)
	if err != nil {
		return entity.Quote{}, err
	}
	prevClose, err := parseFloat(fields[2], "previous close", symbol)
	if err != nil {
		return entity.Quote{}, err
	}
	price, err := parseFloat(fields[3], "price", symbol)
	if err != nil {
		return entity.Quote{}, err
	}
	high, err := parseFloat(fields[4], "high", symbol)
	if err != nil {
		return entity.Quote{}, err
	}
	low, err := parseFloat(fields[5], "low", symbol)
	if err != nil {
		return entity.Quote{}, err
	}
	// Volume is tolerated missing; the upstream occasionally blanks it.
	volume, _ := strconv.ParseInt(strings.TrimSpace(fields[6]), 10, 64)

	change := entity.Round2(price - prevClose)
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = entity.Round2(change / prevClose * 100)
	}

	return entity.Quote{
		Symbol:        symbol,
		Name:          name,
		LocalName:     name,
		Market:        market,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		Open:          open,
		High:          high,
		Low:           low,
		PrevClose:     prevClose,
	}, nil
}

// ParseResponse extracts every record from a full response body. A record
// that fails to parse is logged and skipped; it never aborts its siblings.
func ParseResponse(body string, market entity.Market) []entity.Quote {
	quotes := make([]entity.Quote, 0)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, linePrefix) {
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			continue
		}
		symbol := line[len(linePrefix):eq]

		start := strings.Index(line, `"`)
		end := strings.LastIndex(line, `"`)
		if start < 0 || end <= start {
			continue
		}
		payload := line[start+1 : end]
		if payload == "" {
			// Unknown symbols come back as empty strings.
			continue
		}

		q, err := ParseLine(payload, symbol, market)
		if err != nil {
			slog.Warn("skipping unparseable quote record", "symbol", symbol, "error", err)
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes
}

func parseFloat(s, label, symbol string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("sina: parse %s %q for %s: %w", label, s, symbol, err)
	}
	return v, nil
}
