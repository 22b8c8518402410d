// Package dto defines the request and response shapes for the favorites API.
package dto

// AddFavoriteRequest is the POST /api/favorites body: the quote snapshot the
// client wants to star.
type AddFavoriteRequest struct {
	Symbol        string  `json:"symbol" binding:"required"`
	Name          string  `json:"name"`
	ChineseName   string  `json:"chineseName"`
	Market        string  `json:"market" binding:"required"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// FavoriteItem is one element of the favorites list response.
type FavoriteItem struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	ChineseName   string  `json:"chineseName,omitempty"`
	Market        string  `json:"market"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	AddedAt       string  `json:"addedAt"`
}
