// Package entity defines the persistent favorite record.
package entity

import (
	"time"

	quote "sector_dashboard/internal/feature/quotes/domain/entity"
)

// Favorite is a starred stock, stored with the quote values it carried when
// the user saved it. Symbol is unique: starring the same stock twice is a
// conflict, not an update.
type Favorite struct {
	ID            uint         `gorm:"primaryKey" json:"-"`
	Symbol        string       `gorm:"uniqueIndex;not null" json:"symbol"`
	Name          string       `json:"name"`
	ChineseName   string       `json:"chineseName,omitempty"`
	Market        quote.Market `gorm:"not null" json:"market"`
	Price         float64      `json:"price"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"changePercent"`
	CreatedAt     time.Time    `json:"addedAt"`
}

// FromQuote builds a Favorite snapshot from a live quote.
func FromQuote(q quote.Quote) Favorite {
	return Favorite{
		Symbol:        q.Symbol,
		Name:          q.Name,
		ChineseName:   q.LocalName,
		Market:        q.Market,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
	}
}
