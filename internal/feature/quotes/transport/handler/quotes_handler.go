// Package handler exposes quote lookups over HTTP.
package handler

import (
	"context"
	"net/http"
	"strings"

	"sector_dashboard/internal/feature/quotes/domain/entity"
	"sector_dashboard/internal/feature/quotes/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// QuotesUsecase is the usecase interface for quote lookups.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type QuotesUsecase interface {
	GetQuotes(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error)
}

// QuotesHandler handles HTTP requests for quote data.
type QuotesHandler struct {
	uc QuotesUsecase
}

// NewQuotesHandler creates a new QuotesHandler.
func NewQuotesHandler(uc QuotesUsecase) *QuotesHandler {
	return &QuotesHandler{uc: uc}
}

// List returns quotes for the comma-separated symbols query parameter.
// Duplicate symbols are collapsed before the lookup; the first occurrence
// keeps its position.
func (h *QuotesHandler) List(c *gin.Context) {
	market := entity.Market(strings.ToUpper(c.Query("market")))
	if !market.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "market must be CN or US"})
		return
	}

	symbols := dedupeSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols is required"})
		return
	}

	quotes, err := h.uc.GetQuotes(c.Request.Context(), symbols, market)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.QuoteItem, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, dto.FromEntity(q))
	}
	c.JSON(http.StatusOK, out)
}

// dedupeSymbols splits a comma-separated list, trims blanks and drops
// repeats while preserving first-seen order.
func dedupeSymbols(raw string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
