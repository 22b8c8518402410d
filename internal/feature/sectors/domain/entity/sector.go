// Package entity defines the sector domain objects.
package entity

import (
	"encoding/json"
	"math"
	"sort"

	quote "sector_dashboard/internal/feature/quotes/domain/entity"
)

// TopMoverCount is the number of constituents kept per sector.
const TopMoverCount = 3

// Sector is a named grouping of instruments within one market. It is a value
// object: every aggregation pass rebuilds it wholesale, it is never patched.
//
// Performance is the arithmetic mean of ChangePercent over exactly the stored
// TopStocks, rounded to two decimals. When no quote resolved for the sector,
// TopStocks is empty and Performance is NaN; callers must treat that as a
// non-renderable state (the HTTP DTO maps it to null).
type Sector struct {
	Name        string
	Market      quote.Market
	Performance float64
	TopStocks   []quote.Quote
}

// New builds a Sector from the resolved constituent quotes: sorts descending
// by ChangePercent, keeps the top movers and derives the performance figure.
func New(name string, market quote.Market, quotes []quote.Quote) Sector {
	ranked := make([]quote.Quote, len(quotes))
	copy(ranked, quotes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ChangePercent > ranked[j].ChangePercent
	})

	n := TopMoverCount
	if len(ranked) < n {
		n = len(ranked)
	}
	top := ranked[:n]

	perf := math.NaN()
	if len(top) > 0 {
		sum := 0.0
		for _, q := range top {
			sum += q.ChangePercent
		}
		perf = quote.Round2(sum / float64(len(top)))
	}

	return Sector{Name: name, Market: market, Performance: perf, TopStocks: top}
}

// Renderable reports whether the sector carries a displayable performance
// figure. A sector with no resolved quotes is emitted but not renderable.
func (s Sector) Renderable() bool {
	return len(s.TopStocks) > 0 && !math.IsNaN(s.Performance)
}

// sectorJSON is the wire shape. Performance is a pointer so the NaN state of
// a degenerate sector serializes as null instead of breaking encoding/json.
type sectorJSON struct {
	Name        string        `json:"name"`
	Market      quote.Market  `json:"market"`
	Performance *float64      `json:"performance"`
	TopStocks   []quote.Quote `json:"topStocks"`
}

// MarshalJSON renders a degenerate sector's performance as null.
func (s Sector) MarshalJSON() ([]byte, error) {
	out := sectorJSON{Name: s.Name, Market: s.Market, TopStocks: s.TopStocks}
	if out.TopStocks == nil {
		out.TopStocks = []quote.Quote{}
	}
	if !math.IsNaN(s.Performance) {
		p := s.Performance
		out.Performance = &p
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores null performance to NaN.
func (s *Sector) UnmarshalJSON(b []byte) error {
	var in sectorJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	s.Name = in.Name
	s.Market = in.Market
	s.TopStocks = in.TopStocks
	if in.Performance != nil {
		s.Performance = *in.Performance
	} else {
		s.Performance = math.NaN()
	}
	return nil
}
