// Package usecase implements the business logic for the favorites list.
package usecase

import (
	"context"
	"errors"
	"strings"

	"sector_dashboard/internal/feature/favorites/domain/entity"
	quote "sector_dashboard/internal/feature/quotes/domain/entity"
)

// ErrAlreadyFavorite is returned when the symbol is already stored.
var ErrAlreadyFavorite = errors.New("symbol is already a favorite")

// ErrNotFavorite is returned when removing a symbol that is not stored.
var ErrNotFavorite = errors.New("symbol is not a favorite")

// FavoriteRepository abstracts the persistence layer for favorites.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type FavoriteRepository interface {
	Insert(ctx context.Context, fav entity.Favorite) error
	ListAll(ctx context.Context) ([]entity.Favorite, error)
	DeleteBySymbol(ctx context.Context, symbol string) (bool, error)
	DeleteAll(ctx context.Context) error
	Exists(ctx context.Context, symbol string) (bool, error)
}

// FavoritesUsecase provides add/list/remove/clear over the favorites store.
type FavoritesUsecase struct {
	repo FavoriteRepository
}

// NewFavoritesUsecase creates a new FavoritesUsecase with the given repository.
func NewFavoritesUsecase(r FavoriteRepository) *FavoritesUsecase {
	return &FavoritesUsecase{repo: r}
}

// Add stores a quote snapshot as a favorite. Every write is durable as soon
// as this returns. Duplicate symbols are rejected with ErrAlreadyFavorite.
func (u *FavoritesUsecase) Add(ctx context.Context, q quote.Quote) (entity.Favorite, error) {
	q.Symbol = strings.TrimSpace(q.Symbol)
	if q.Symbol == "" {
		return entity.Favorite{}, errors.New("symbol is required")
	}
	if !q.Market.Valid() {
		return entity.Favorite{}, errors.New("market must be CN or US")
	}

	exists, err := u.repo.Exists(ctx, q.Symbol)
	if err != nil {
		return entity.Favorite{}, err
	}
	if exists {
		return entity.Favorite{}, ErrAlreadyFavorite
	}

	fav := entity.FromQuote(q)
	if err := u.repo.Insert(ctx, fav); err != nil {
		return entity.Favorite{}, err
	}
	return fav, nil
}

// List returns all favorites in the order they were added.
func (u *FavoritesUsecase) List(ctx context.Context) ([]entity.Favorite, error) {
	return u.repo.ListAll(ctx)
}

// Remove deletes the favorite for the given symbol.
func (u *FavoritesUsecase) Remove(ctx context.Context, symbol string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return errors.New("symbol is required")
	}
	deleted, err := u.repo.DeleteBySymbol(ctx, symbol)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFavorite
	}
	return nil
}

// Clear removes every favorite.
func (u *FavoritesUsecase) Clear(ctx context.Context) error {
	return u.repo.DeleteAll(ctx)
}
