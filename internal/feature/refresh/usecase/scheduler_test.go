package usecase

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	quote "sector_dashboard/internal/feature/quotes/domain/entity"
	"sector_dashboard/internal/feature/sectors/domain/entity"
	"sector_dashboard/internal/platform/cache"
)

// mockAggregator is an Aggregator mock with a function field and a
// goroutine-safe call counter.
type mockAggregator struct {
	mu      sync.Mutex
	aggFn   func(ctx context.Context, market quote.Market) ([]entity.Sector, error)
	calls   int
	blockCh chan struct{} // when set, AggregateSectors blocks until closed
}

func (m *mockAggregator) AggregateSectors(ctx context.Context, market quote.Market) ([]entity.Sector, error) {
	m.mu.Lock()
	m.calls++
	block := m.blockCh
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	if m.aggFn != nil {
		return m.aggFn(ctx, market)
	}
	return nil, errors.New("aggFn is not implemented")
}

func (m *mockAggregator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func fixedSectors() []entity.Sector {
	stocks := []quote.Quote{
		{Symbol: "sh600519", Market: quote.MarketCN, Price: 100, PrevClose: 98, Change: 2, ChangePercent: 2.04},
		{Symbol: "sh601318", Market: quote.MarketCN, Price: 50, PrevClose: 51, Change: -1, ChangePercent: -1.96},
	}
	return []entity.Sector{entity.New("金融", quote.MarketCN, stocks)}
}

func staticAggregator() *mockAggregator {
	return &mockAggregator{aggFn: func(context.Context, quote.Market) ([]entity.Sector, error) {
		return fixedSectors(), nil
	}}
}

// TestScheduler_ColdLoad verifies Start performs the initial aggregation and
// publishes a snapshot.
func TestScheduler_ColdLoad(t *testing.T) {
	t.Parallel()

	agg := staticAggregator()
	s := NewScheduler(agg, cache.NewMemoryStore(30*time.Second, nil), time.Hour, nil)
	defer s.Stop()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sectors, updated := s.Snapshot()
	if len(sectors) != 1 || sectors[0].Name != "金融" {
		t.Fatalf("snapshot = %+v", sectors)
	}
	if updated.IsZero() {
		t.Error("lastUpdated must be set after cold load")
	}
	if agg.callCount() != 1 {
		t.Errorf("aggregator calls = %d, want 1", agg.callCount())
	}
}

// TestScheduler_WarmTick_AnchoredToPrevClose verifies the perturbation
// recomputes change against the session previous close, never the prior
// tick's price.
func TestScheduler_WarmTick_AnchoredToPrevClose(t *testing.T) {
	t.Parallel()

	s := NewScheduler(staticAggregator(), cache.NewMemoryStore(30*time.Second, nil), time.Hour, rand.New(rand.NewSource(3)))
	if err := s.coldLoad(context.Background()); err != nil {
		t.Fatalf("cold load failed: %v", err)
	}

	for tick := 0; tick < 50; tick++ {
		before, _ := s.Snapshot()
		s.warmTick()
		after, _ := s.Snapshot()

		for _, sec := range after {
			for _, q := range sec.TopStocks {
				if q.Symbol == "sh600519" && q.PrevClose != 98 {
					t.Fatalf("tick %d: prevClose drifted to %v", tick, q.PrevClose)
				}
				wantChange := quote.Round2(q.Price - q.PrevClose)
				if q.Change != wantChange {
					t.Fatalf("tick %d: change = %v, want %v (anchored to prevClose %v)", tick, q.Change, wantChange, q.PrevClose)
				}
				wantPct := quote.Round2(q.Change / q.PrevClose * 100)
				if q.ChangePercent != wantPct {
					t.Fatalf("tick %d: changePercent = %v, want %v", tick, q.ChangePercent, wantPct)
				}
			}
		}

		// Price moves are bounded by ±1% of the pre-tick price.
		for i := range after {
			bydSymbol := map[string]quote.Quote{}
			for _, q := range before[i].TopStocks {
				bydSymbol[q.Symbol] = q
			}
			for _, q := range after[i].TopStocks {
				prev := bydSymbol[q.Symbol]
				if math.Abs(q.Price-prev.Price) > prev.Price*0.011 {
					t.Fatalf("tick %d: price moved %v -> %v, beyond ±1%%", tick, prev.Price, q.Price)
				}
			}
		}
	}
}

// TestScheduler_WarmTick_RecomputesRanking verifies the top list is
// re-sorted and performance recomputed after each tick.
func TestScheduler_WarmTick_RecomputesRanking(t *testing.T) {
	t.Parallel()

	s := NewScheduler(staticAggregator(), cache.NewMemoryStore(30*time.Second, nil), time.Hour, rand.New(rand.NewSource(11)))
	if err := s.coldLoad(context.Background()); err != nil {
		t.Fatalf("cold load failed: %v", err)
	}

	for tick := 0; tick < 20; tick++ {
		s.warmTick()
		sectors, _ := s.Snapshot()
		for _, sec := range sectors {
			for i := 1; i < len(sec.TopStocks); i++ {
				if sec.TopStocks[i].ChangePercent > sec.TopStocks[i-1].ChangePercent {
					t.Fatalf("tick %d: top stocks not sorted descending", tick)
				}
			}
			sum := 0.0
			for _, q := range sec.TopStocks {
				sum += q.ChangePercent
			}
			want := quote.Round2(sum / float64(len(sec.TopStocks)))
			if sec.Performance != want {
				t.Fatalf("tick %d: performance = %v, want %v", tick, sec.Performance, want)
			}
		}
	}
}

// TestScheduler_Refresh verifies the manual refresh clears the cache and
// re-runs the cold load.
func TestScheduler_Refresh(t *testing.T) {
	t.Parallel()

	agg := staticAggregator()
	store := cache.NewMemoryStore(30*time.Second, nil)
	store.Set(context.Background(), "stale", "value")

	s := NewScheduler(agg, store, time.Hour, nil)
	defer s.Stop()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	var v string
	if store.Get(context.Background(), "stale", &v) {
		t.Error("refresh must clear the result cache")
	}
	if agg.callCount() != 2 {
		t.Errorf("aggregator calls = %d, want 2 (cold load + refresh)", agg.callCount())
	}
}

// TestScheduler_Refresh_InFlightGuard verifies overlapping manual refreshes
// are rejected instead of racing.
func TestScheduler_Refresh_InFlightGuard(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	agg := staticAggregator()
	agg.blockCh = block

	s := NewScheduler(agg, cache.NewMemoryStore(30*time.Second, nil), time.Hour, nil)

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.Refresh(context.Background()) }()

	// Wait until the first refresh is inside the aggregator.
	deadline := time.After(2 * time.Second)
	for agg.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("first refresh never reached the aggregator")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := s.Refresh(context.Background()); !errors.Is(err, ErrRefreshInFlight) {
		t.Fatalf("overlapping refresh error = %v, want ErrRefreshInFlight", err)
	}

	close(block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	s.Stop()
}

// TestScheduler_TickLoopAndStop verifies the ticker drives warm ticks and
// Stop cancels the loop.
func TestScheduler_TickLoopAndStop(t *testing.T) {
	t.Parallel()

	s := NewScheduler(staticAggregator(), cache.NewMemoryStore(30*time.Second, nil), 20*time.Millisecond, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, first := s.Snapshot()
	deadline := time.After(2 * time.Second)
	for {
		_, updated := s.Snapshot()
		if updated.After(first) {
			break
		}
		select {
		case <-deadline:
			t.Fatal("warm tick never fired")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	s.Stop()
	_, afterStop := s.Snapshot()
	time.Sleep(60 * time.Millisecond)
	if _, latest := s.Snapshot(); latest.After(afterStop) {
		t.Error("ticks continued after Stop")
	}

	// Stop is idempotent.
	s.Stop()
}

// TestScheduler_Snapshot_Copies verifies callers cannot mutate scheduler
// state through a snapshot.
func TestScheduler_Snapshot_Copies(t *testing.T) {
	t.Parallel()

	s := NewScheduler(staticAggregator(), cache.NewMemoryStore(30*time.Second, nil), time.Hour, nil)
	if err := s.coldLoad(context.Background()); err != nil {
		t.Fatalf("cold load failed: %v", err)
	}

	sectors, _ := s.Snapshot()
	sectors[0].TopStocks[0].Price = -1

	again, _ := s.Snapshot()
	if again[0].TopStocks[0].Price == -1 {
		t.Error("snapshot must be a copy, not an alias")
	}
}

// TestScheduler_ColdLoadFailure verifies Start surfaces the error but still
// arms the ticker so a later refresh can heal.
func TestScheduler_ColdLoadFailure(t *testing.T) {
	t.Parallel()

	agg := &mockAggregator{aggFn: func(context.Context, quote.Market) ([]entity.Sector, error) {
		return nil, errors.New("upstream down")
	}}
	s := NewScheduler(agg, cache.NewMemoryStore(30*time.Second, nil), time.Hour, nil)
	defer s.Stop()

	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected the cold-load error to surface")
	}

	sectors, updated := s.Snapshot()
	if len(sectors) != 0 || !updated.IsZero() {
		t.Errorf("no snapshot should exist after a failed cold load")
	}
}
