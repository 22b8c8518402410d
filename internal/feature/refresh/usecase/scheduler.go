// Package usecase implements the dashboard refresh scheduler: cold loads,
// warm ticks and manual refreshes over the latest sector snapshot.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	quote "sector_dashboard/internal/feature/quotes/domain/entity"
	"sector_dashboard/internal/feature/sectors/domain/entity"
	"sector_dashboard/internal/platform/cache"
)

// DefaultInterval is the warm-tick period when none is configured.
const DefaultInterval = 5 * time.Second

// maxPerturbation bounds a warm-tick price move to ±1% of the current price.
const maxPerturbation = 0.01

// ErrRefreshInFlight is returned when a manual refresh overlaps another.
var ErrRefreshInFlight = errors.New("refresh already in flight")

// Aggregator abstracts the sector aggregation layer. Following Go
// convention: interfaces are defined by the consumer, not the provider.
type Aggregator interface {
	AggregateSectors(ctx context.Context, market quote.Market) ([]entity.Sector, error)
}

// Scheduler owns the only time-driven mutable state in the pipeline: the
// latest sector snapshot and its timestamp. Between full aggregations it
// perturbs the already-loaded quotes in memory instead of re-fetching, and
// re-ranks each sector since relative order may change.
type Scheduler struct {
	agg      Aggregator
	cache    cache.Store
	interval time.Duration
	rng      *rand.Rand

	mu          sync.Mutex
	sectors     []entity.Sector
	lastUpdated time.Time
	refreshing  bool
	stopTick    chan struct{}
	done        chan struct{}
}

// NewScheduler creates a Scheduler. If interval is 0 or negative it defaults
// to DefaultInterval. If rng is nil, a time-seeded source is used.
func NewScheduler(agg Aggregator, store cache.Store, interval time.Duration, rng *rand.Rand) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{agg: agg, cache: store, interval: interval, rng: rng}
}

// Start performs the cold load and then launches the warm-tick loop. It
// returns the cold-load error but leaves the ticker running either way, so a
// transient startup failure heals on the next manual refresh.
func (s *Scheduler) Start(ctx context.Context) error {
	err := s.coldLoad(ctx)
	s.startTicker()
	return err
}

// Stop cancels the warm-tick loop. Safe to call more than once and required
// on teardown so no orphaned timer keeps mutating discarded state.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTickerLocked()
}

// Refresh is the user-triggered full reload: it cancels the pending warm
// tick, clears the result cache, re-runs the cold load and reschedules the
// ticker. Overlapping calls are rejected with ErrRefreshInFlight.
func (s *Scheduler) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return ErrRefreshInFlight
	}
	s.refreshing = true
	s.stopTickerLocked()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
		s.startTicker()
	}()

	if err := s.cache.Clear(ctx); err != nil {
		slog.Warn("cache clear failed during refresh", "error", err)
	}
	return s.coldLoad(ctx)
}

// Snapshot returns a copy of the latest sector list and its timestamp.
func (s *Scheduler) Snapshot() ([]entity.Sector, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySectors(s.sectors), s.lastUpdated
}

func (s *Scheduler) coldLoad(ctx context.Context) error {
	sectors, err := s.agg.AggregateSectors(ctx, "")
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sectors = sectors
	s.lastUpdated = time.Now()
	s.mu.Unlock()
	return nil
}

func (s *Scheduler) startTicker() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopTick != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stopTick = stop
	s.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.warmTick()
			case <-stop:
				return
			}
		}
	}()
}

// stopTickerLocked signals the tick goroutine and waits for it to exit.
// Callers must hold s.mu.
func (s *Scheduler) stopTickerLocked() {
	if s.stopTick == nil {
		return
	}
	close(s.stopTick)
	done := s.done
	s.stopTick = nil
	s.done = nil
	s.mu.Unlock()
	<-done
	s.mu.Lock()
}

// warmTick perturbs every displayed quote and rebuilds each sector, since
// the perturbation can reorder the top movers.
func (s *Scheduler) warmTick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sectors) == 0 {
		return
	}

	next := make([]entity.Sector, 0, len(s.sectors))
	for _, sec := range s.sectors {
		perturbed := make([]quote.Quote, 0, len(sec.TopStocks))
		for _, q := range sec.TopStocks {
			perturbed = append(perturbed, s.perturb(q))
		}
		next = append(next, entity.New(sec.Name, sec.Market, perturbed))
	}
	s.sectors = next
	s.lastUpdated = time.Now()
}

// perturb moves the price by a random delta within ±1% of the current
// price. Change and percent are recomputed by the entity against the
// session's original previous close, never against the prior tick.
func (s *Scheduler) perturb(q quote.Quote) quote.Quote {
	delta := (s.rng.Float64()*2 - 1) * maxPerturbation * q.Price
	return q.WithPrice(q.Price + delta)
}

func copySectors(in []entity.Sector) []entity.Sector {
	out := make([]entity.Sector, len(in))
	copy(out, in)
	for i := range out {
		stocks := make([]quote.Quote, len(in[i].TopStocks))
		copy(stocks, in[i].TopStocks)
		out[i].TopStocks = stocks
	}
	return out
}
