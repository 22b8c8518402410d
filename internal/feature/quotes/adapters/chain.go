// Package adapters wires concrete quote sources into the fallback policy the
// quotes usecase consumes.
package adapters

import (
	"context"
	"log/slog"

	"sector_dashboard/internal/feature/quotes/domain/entity"
)

// Source is one upstream quote strategy. Implementations: the Sina and
// Eastmoney clients, the Alpha Vantage client, and the synthetic generator.
type Source interface {
	FetchQuotes(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error)
	Name() string
}

// SourceChain tries an ordered list of sources and returns the first result
// with at least one quote. The fallback terminates the chain: it must always
// succeed (the synthetic generator), so a chain never propagates an upstream
// failure and the dashboard always has data to render.
type SourceChain struct {
	sources  []Source
	fallback Source
}

// NewSourceChain creates a chain over sources, terminated by fallback.
func NewSourceChain(fallback Source, sources ...Source) *SourceChain {
	return &SourceChain{sources: sources, fallback: fallback}
}

// Name identifies this source in logs.
func (c *SourceChain) Name() string { return "chain" }

// FetchQuotes walks the chain. Each failing or empty source is logged and
// skipped; the synthetic fallback closes the chain.
func (c *SourceChain) FetchQuotes(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
	if len(symbols) == 0 {
		return []entity.Quote{}, nil
	}

	for _, src := range c.sources {
		quotes, err := src.FetchQuotes(ctx, symbols, market)
		if err != nil {
			slog.Warn("quote source failed, trying next", "source", src.Name(), "market", market, "error", err)
			continue
		}
		if len(quotes) == 0 {
			slog.Warn("quote source returned nothing, trying next", "source", src.Name(), "market", market)
			continue
		}
		return quotes, nil
	}

	slog.Info("all live sources exhausted, generating synthetic quotes", "market", market, "symbols", len(symbols))
	return c.fallback.FetchQuotes(ctx, symbols, market)
}
