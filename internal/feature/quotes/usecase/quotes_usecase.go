// Package usecase implements the business logic for quote retrieval.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"sector_dashboard/internal/feature/quotes/domain/entity"
	"sector_dashboard/internal/platform/cache"
)

// MaxBatchSize caps one fetch batch; upstream endpoints truncate beyond this.
const MaxBatchSize = 100

// QuoteSource abstracts the upstream fetch layer (the source chain).
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type QuoteSource interface {
	FetchQuotes(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error)
}

// QuotesUsecase fetches quote batches through the result cache. Read-through
// is handled here: check the cache, fall through to the source on a miss,
// write back before returning. Synthetic-fallback results are cached like
// real ones so a failing upstream is not hammered on every poll tick.
type QuotesUsecase struct {
	source QuoteSource
	cache  cache.Store
}

// NewQuotesUsecase creates a QuotesUsecase.
func NewQuotesUsecase(source QuoteSource, store cache.Store) *QuotesUsecase {
	return &QuotesUsecase{source: source, cache: store}
}

// GetQuotes returns quotes for the given symbols. Symbols are used as given:
// deduplication is the caller's responsibility, and two calls with different
// symbol lists occupy distinct cache entries.
func (u *QuotesUsecase) GetQuotes(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
	if !market.Valid() {
		return nil, fmt.Errorf("unknown market %q", market)
	}
	if len(symbols) == 0 {
		return []entity.Quote{}, nil
	}
	if len(symbols) > MaxBatchSize {
		symbols = symbols[:MaxBatchSize]
	}

	key := cache.Key("fetchQuotes", string(market), strings.Join(symbols, ","))

	var cached []entity.Quote
	if u.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	quotes, err := u.source.FetchQuotes(ctx, symbols, market)
	if err != nil {
		return nil, err
	}

	u.cache.Set(ctx, key, quotes)
	return quotes, nil
}

// ClearCache evicts every cached result.
func (u *QuotesUsecase) ClearCache(ctx context.Context) error {
	return u.cache.Clear(ctx)
}
