// Package handler exposes the scheduler snapshot and manual refresh over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sector_dashboard/internal/feature/refresh/usecase"
	"sector_dashboard/internal/feature/sectors/domain/entity"
	sectordto "sector_dashboard/internal/feature/sectors/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// Refresher is the scheduler interface the dashboard endpoints need.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type Refresher interface {
	Snapshot() ([]entity.Sector, time.Time)
	Refresh(ctx context.Context) error
}

// DashboardHandler serves the live dashboard view and the manual refresh.
type DashboardHandler struct {
	scheduler Refresher
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(s Refresher) *DashboardHandler {
	return &DashboardHandler{scheduler: s}
}

// Dashboard returns the scheduler's current snapshot. The payload is served
// from memory; it never blocks on upstream sources.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	sectors, updated := h.scheduler.Snapshot()

	resp := gin.H{
		"sectors":     sectordto.FromEntities(sectors),
		"lastUpdated": nil,
	}
	if !updated.IsZero() {
		resp["lastUpdated"] = updated.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh triggers a full reload. A refresh already in flight gets 409 so
// double-clicks do not pile up upstream requests.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if err := h.scheduler.Refresh(c.Request.Context()); err != nil {
		if errors.Is(err, usecase.ErrRefreshInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sectors, updated := h.scheduler.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"sectors":     sectordto.FromEntities(sectors),
		"lastUpdated": updated.UTC().Format(time.RFC3339),
	})
}
