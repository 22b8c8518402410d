// Package dto defines the response shapes for the quotes API.
package dto

import "sector_dashboard/internal/feature/quotes/domain/entity"

// QuoteItem is one quote in the GET /api/quotes response. Field names match
// what the dashboard frontend consumes.
type QuoteItem struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	ChineseName   string  `json:"chineseName,omitempty"`
	Market        string  `json:"market"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	Open          float64 `json:"open,omitempty"`
	High          float64 `json:"high,omitempty"`
	Low           float64 `json:"low,omitempty"`
	PreClose      float64 `json:"preClose,omitempty"`
	MarketCap     float64 `json:"marketCap,omitempty"`
	PERatio       float64 `json:"peRatio,omitempty"`
}

// FromEntity maps a domain quote to its wire shape.
func FromEntity(q entity.Quote) QuoteItem {
	return QuoteItem{
		Symbol:        q.Symbol,
		Name:          q.Name,
		ChineseName:   q.LocalName,
		Market:        string(q.Market),
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		Volume:        q.Volume,
		Open:          q.Open,
		High:          q.High,
		Low:           q.Low,
		PreClose:      q.PrevClose,
		MarketCap:     q.MarketCap,
		PERatio:       q.PERatio,
	}
}
