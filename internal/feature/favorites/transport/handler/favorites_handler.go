// Package handler exposes the favorites list over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"sector_dashboard/internal/feature/favorites/domain/entity"
	"sector_dashboard/internal/feature/favorites/transport/http/dto"
	"sector_dashboard/internal/feature/favorites/usecase"
	quote "sector_dashboard/internal/feature/quotes/domain/entity"

	"github.com/gin-gonic/gin"
)

// FavoritesUsecase is the usecase interface for the favorites list.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type FavoritesUsecase interface {
	Add(ctx context.Context, q quote.Quote) (entity.Favorite, error)
	List(ctx context.Context) ([]entity.Favorite, error)
	Remove(ctx context.Context, symbol string) error
	Clear(ctx context.Context) error
}

// FavoritesHandler handles HTTP requests for the favorites list.
type FavoritesHandler struct {
	uc FavoritesUsecase
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(uc FavoritesUsecase) *FavoritesHandler {
	return &FavoritesHandler{uc: uc}
}

// Add stores the posted quote snapshot as a favorite. Duplicate symbols get
// 409 Conflict.
func (h *FavoritesHandler) Add(c *gin.Context) {
	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fav, err := h.uc.Add(c.Request.Context(), quote.Quote{
		Symbol:        req.Symbol,
		Name:          req.Name,
		LocalName:     req.ChineseName,
		Market:        quote.Market(strings.ToUpper(req.Market)),
		Price:         req.Price,
		Change:        req.Change,
		ChangePercent: req.ChangePercent,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyFavorite) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toItem(fav))
}

// List returns every favorite in the order it was added.
func (h *FavoritesHandler) List(c *gin.Context) {
	favs, err := h.uc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.FavoriteItem, 0, len(favs))
	for _, f := range favs {
		out = append(out, toItem(f))
	}
	c.JSON(http.StatusOK, out)
}

// Remove deletes one favorite by symbol. Unknown symbols get 404.
func (h *FavoritesHandler) Remove(c *gin.Context) {
	err := h.uc.Remove(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFavorite) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear deletes every favorite.
func (h *FavoritesHandler) Clear(c *gin.Context) {
	if err := h.uc.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func toItem(f entity.Favorite) dto.FavoriteItem {
	return dto.FavoriteItem{
		Symbol:        f.Symbol,
		Name:          f.Name,
		ChineseName:   f.ChineseName,
		Market:        string(f.Market),
		Price:         f.Price,
		Change:        f.Change,
		ChangePercent: f.ChangePercent,
		AddedAt:       f.CreatedAt.UTC().Format(time.RFC3339),
	}
}
