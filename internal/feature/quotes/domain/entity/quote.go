// Package entity defines the core domain objects for stock quotes.
package entity

import "math"

// Market identifies which exchange universe a symbol belongs to.
type Market string

const (
	// MarketCN covers Chinese A-shares (exchange-prefixed codes, e.g. "sh600519").
	MarketCN Market = "CN"
	// MarketUS covers US equities (plain ticker symbols, e.g. "AAPL").
	MarketUS Market = "US"
)

// Valid reports whether m is one of the supported markets.
func (m Market) Valid() bool {
	return m == MarketCN || m == MarketUS
}

// Quote is an immutable snapshot of a single instrument.
// Change and ChangePercent are always derived from Price and PrevClose:
// change = round2(price - prevClose), changePercent = round2(change/prevClose*100)
// (0 when PrevClose is 0). A refresh produces a new Quote; existing values
// are never mutated in place.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	LocalName     string  `json:"chineseName,omitempty"`
	Market        Market  `json:"market"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	Open          float64 `json:"open,omitempty"`
	High          float64 `json:"high,omitempty"`
	Low           float64 `json:"low,omitempty"`
	PrevClose     float64 `json:"preClose,omitempty"`
	MarketCap     float64 `json:"marketCap,omitempty"`
	PERatio       float64 `json:"peRatio,omitempty"`
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WithPrice returns a copy of q repriced to price, with Change and
// ChangePercent recomputed against the original PrevClose. The previous
// close is the session baseline, so repeated repricing never compounds.
func (q Quote) WithPrice(price float64) Quote {
	q.Price = Round2(price)
	q.Change = Round2(q.Price - q.PrevClose)
	if q.PrevClose != 0 {
		q.ChangePercent = Round2(q.Change / q.PrevClose * 100)
	} else {
		q.ChangePercent = 0
	}
	return q
}
