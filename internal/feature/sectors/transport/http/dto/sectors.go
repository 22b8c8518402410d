// Package dto defines the response shapes for the sectors API.
package dto

import (
	"math"

	quotedto "sector_dashboard/internal/feature/quotes/transport/http/dto"
	"sector_dashboard/internal/feature/sectors/domain/entity"
)

// SectorItem is one sector in the GET /api/sectors response. Performance is
// a pointer so a sector whose every lookup failed renders as null instead of
// a fake number.
type SectorItem struct {
	Name        string               `json:"name"`
	Market      string               `json:"market"`
	Performance *float64             `json:"performance"`
	TopStocks   []quotedto.QuoteItem `json:"topStocks"`
}

// FromEntity maps a domain sector to its wire shape. NaN performance
// becomes null.
func FromEntity(s entity.Sector) SectorItem {
	item := SectorItem{
		Name:      s.Name,
		Market:    string(s.Market),
		TopStocks: make([]quotedto.QuoteItem, 0, len(s.TopStocks)),
	}
	if !math.IsNaN(s.Performance) {
		p := s.Performance
		item.Performance = &p
	}
	for _, q := range s.TopStocks {
		item.TopStocks = append(item.TopStocks, quotedto.FromEntity(q))
	}
	return item
}

// FromEntities maps a sector slice, preserving order.
func FromEntities(sectors []entity.Sector) []SectorItem {
	out := make([]SectorItem, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, FromEntity(s))
	}
	return out
}
