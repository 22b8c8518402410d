// Package synthetic generates plausible random-walk quotes for symbols with
// no live data, so the dashboard always has something to render.
package synthetic

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"sector_dashboard/internal/feature/quotes/domain/entity"
)

// Value ranges for generated quotes. Derived fields (open/high/low/previous
// close) are computed from price and change so the Quote invariant holds.
const (
	cnBaseMin = 10.0
	cnBaseMax = 110.0
	usBaseMin = 20.0
	usBaseMax = 320.0

	maxAbsPercent = 10.0 // percent change drawn from ±10%

	volumeMin = 1_000_000
	volumeMax = 11_000_000

	marketCapMin = 50.0
	marketCapMax = 550.0
	peMin        = 5.0
	peMax        = 35.0
)

// Generator produces synthetic quotes. It always succeeds, which makes it
// the terminal strategy of every source chain.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator. If rng is nil, a time-seeded source is
// used; tests inject a fixed seed.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Name identifies this source in logs.
func (g *Generator) Name() string { return "synthetic" }

// FetchQuotes generates one quote per symbol. The error return exists only
// to satisfy the source contract; it is always nil.
func (g *Generator) FetchQuotes(_ context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
	quotes := make([]entity.Quote, 0, len(symbols))
	for i, symbol := range symbols {
		quotes = append(quotes, g.generate(symbol, i, market))
	}
	return quotes, nil
}

func (g *Generator) generate(symbol string, ordinal int, market entity.Market) entity.Quote {
	baseMin, baseMax := cnBaseMin, cnBaseMax
	name := "模拟股票"
	if market == entity.MarketUS {
		baseMin, baseMax = usBaseMin, usBaseMax
		name = "Stock"
	}

	price := entity.Round2(baseMin + g.rng.Float64()*(baseMax-baseMin))
	pct := (g.rng.Float64()*2 - 1) * maxAbsPercent

	// Derive the previous close from price and percent, then recompute the
	// published figures from the rounded values so they stay consistent.
	prevClose := entity.Round2(price / (1 + pct/100))
	change := entity.Round2(price - prevClose)
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = entity.Round2(change / prevClose * 100)
	}

	open := entity.Round2(prevClose + change/2)
	high := entity.Round2(maxf(open, price) + g.rng.Float64()*absf(change))
	low := entity.Round2(minf(open, price) - g.rng.Float64()*absf(change))

	q := entity.Quote{
		Symbol:        symbol,
		Name:          displayName(name, market, ordinal),
		Market:        market,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volumeMin + g.rng.Int63n(volumeMax-volumeMin),
		Open:          open,
		High:          high,
		Low:           low,
		PrevClose:     prevClose,
		MarketCap:     entity.Round2(marketCapMin + g.rng.Float64()*(marketCapMax-marketCapMin)),
		PERatio:       entity.Round2(peMin + g.rng.Float64()*(peMax-peMin)),
	}
	if market == entity.MarketCN {
		q.LocalName = q.Name
	}
	return q
}

func displayName(base string, market entity.Market, ordinal int) string {
	n := strconv.Itoa(ordinal + 1)
	if market == entity.MarketCN {
		return base + n
	}
	return base + " " + n
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
