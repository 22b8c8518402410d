// Package handler exposes sector aggregation over HTTP.
package handler

import (
	"context"
	"net/http"
	"strings"

	quote "sector_dashboard/internal/feature/quotes/domain/entity"
	"sector_dashboard/internal/feature/sectors/domain/entity"
	"sector_dashboard/internal/feature/sectors/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// SectorsUsecase is the usecase interface for sector aggregation.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SectorsUsecase interface {
	AggregateSectors(ctx context.Context, market quote.Market) ([]entity.Sector, error)
	ClearCache(ctx context.Context) error
}

// SectorsHandler handles HTTP requests for sector data.
type SectorsHandler struct {
	uc SectorsUsecase
}

// NewSectorsHandler creates a new SectorsHandler.
func NewSectorsHandler(uc SectorsUsecase) *SectorsHandler {
	return &SectorsHandler{uc: uc}
}

// List returns aggregated sectors. Without a market parameter both markets
// are returned, CN first.
func (h *SectorsHandler) List(c *gin.Context) {
	var market quote.Market
	if raw := c.Query("market"); raw != "" {
		market = quote.Market(strings.ToUpper(raw))
		if !market.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "market must be CN or US"})
			return
		}
	}

	sectors, err := h.uc.AggregateSectors(c.Request.Context(), market)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(sectors))
}

// ClearCache drops every cached aggregation result so the next read hits
// the sources again.
func (h *SectorsHandler) ClearCache(c *gin.Context) {
	if err := h.uc.ClearCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cache cleared"})
}
