// Package usecase implements the sector aggregation pipeline.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	quote "sector_dashboard/internal/feature/quotes/domain/entity"
	"sector_dashboard/internal/feature/sectors/adapters"
	"sector_dashboard/internal/feature/sectors/domain/entity"
	"sector_dashboard/internal/platform/cache"
)

// QuoteFetcher abstracts the quote layer (the quotes usecase). Following Go
// convention: interfaces are defined by the consumer, not the provider.
type QuoteFetcher interface {
	GetQuotes(ctx context.Context, symbols []string, market quote.Market) ([]quote.Quote, error)
}

// SectorsUsecase groups quotes into configured sectors and derives sector
// performance. Aggregation is pure: configuration and quotes in, sectors
// out; the only mutable state lives in the cache and the refresh scheduler.
type SectorsUsecase struct {
	quotes  QuoteFetcher
	catalog *adapters.Catalog
	cache   cache.Store
}

// NewSectorsUsecase creates a SectorsUsecase.
func NewSectorsUsecase(quotes QuoteFetcher, catalog *adapters.Catalog, store cache.Store) *SectorsUsecase {
	return &SectorsUsecase{quotes: quotes, catalog: catalog, cache: store}
}

// AggregateSectors returns the sector list for one market, or for both when
// market is empty. The combined list always orders CN before US. The two
// markets are aggregated concurrently and settled independently: a failure
// on one side is logged and the other side's sectors are still returned.
func (u *SectorsUsecase) AggregateSectors(ctx context.Context, market quote.Market) ([]entity.Sector, error) {
	if market != "" {
		if !market.Valid() {
			return nil, fmt.Errorf("unknown market %q", market)
		}
		return u.aggregateMarket(ctx, market)
	}

	markets := []quote.Market{quote.MarketCN, quote.MarketUS}
	results := make([][]entity.Sector, len(markets))
	errs := make([]error, len(markets))

	var wg sync.WaitGroup
	for i, m := range markets {
		wg.Add(1)
		go func(i int, m quote.Market) {
			defer wg.Done()
			results[i], errs[i] = u.aggregateMarket(ctx, m)
		}(i, m)
	}
	wg.Wait()

	var out []entity.Sector
	var failed int
	for i, m := range markets {
		if errs[i] != nil {
			slog.Error("market aggregation failed", "market", m, "error", errs[i])
			failed++
			continue
		}
		out = append(out, results[i]...)
	}
	if failed == len(markets) {
		return nil, fmt.Errorf("aggregation failed for all markets: %w", errs[0])
	}
	return out, nil
}

// aggregateMarket builds every configured sector for one market, reading
// through the result cache. A sector whose constituents resolve to nothing
// is still emitted, degenerate, so the caller can decide how to render it.
func (u *SectorsUsecase) aggregateMarket(ctx context.Context, market quote.Market) ([]entity.Sector, error) {
	key := cache.Key("aggregateSectors", string(market))

	var cached []entity.Sector
	if u.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	configs := u.catalog.Sectors(market)
	if len(configs) == 0 {
		return nil, fmt.Errorf("no sectors configured for market %q", market)
	}

	sectors := make([]entity.Sector, 0, len(configs))
	for _, cfg := range configs {
		// A batch that resolves zero quotes yields a degenerate sector; an
		// actual fetch error fails this market's branch (the source chain
		// never errors in production wiring, so this is exceptional).
		quotes, err := u.quotes.GetQuotes(ctx, cfg.Symbols, market)
		if err != nil {
			return nil, fmt.Errorf("sector %q: %w", cfg.Name, err)
		}
		sectors = append(sectors, entity.New(cfg.Name, market, quotes))
	}

	u.cache.Set(ctx, key, sectors)
	return sectors, nil
}

// ClearCache evicts every cached result.
func (u *SectorsUsecase) ClearCache(ctx context.Context) error {
	return u.cache.Clear(ctx)
}
