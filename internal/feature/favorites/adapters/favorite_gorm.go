// Package adapters provides the repository implementation for the favorites feature.
package adapters

import (
	"context"
	"errors"

	"sector_dashboard/internal/feature/favorites/domain/entity"
	"sector_dashboard/internal/feature/favorites/usecase"

	"gorm.io/gorm"
)

// favoriteGorm is the gorm-backed implementation of FavoriteRepository.
type favoriteGorm struct {
	db *gorm.DB
}

var _ usecase.FavoriteRepository = (*favoriteGorm)(nil)

// NewFavoriteRepository creates a new favoriteGorm repository on the given DB connection.
func NewFavoriteRepository(db *gorm.DB) *favoriteGorm {
	return &favoriteGorm{db: db}
}

// Insert stores a new favorite. The unique index on symbol backstops the
// usecase-level duplicate check under concurrent writes.
func (r *favoriteGorm) Insert(ctx context.Context, fav entity.Favorite) error {
	err := r.db.WithContext(ctx).Create(&fav).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usecase.ErrAlreadyFavorite
	}
	return err
}

// ListAll returns every favorite in insertion order.
func (r *favoriteGorm) ListAll(ctx context.Context) ([]entity.Favorite, error) {
	var favs []entity.Favorite
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&favs).Error; err != nil {
		return nil, err
	}
	return favs, nil
}

// DeleteBySymbol removes the favorite for symbol and reports whether a row
// was actually deleted.
func (r *favoriteGorm) DeleteBySymbol(ctx context.Context, symbol string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Delete(&entity.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll removes every favorite.
func (r *favoriteGorm) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&entity.Favorite{}).Error
}

// Exists reports whether a favorite for symbol is stored.
func (r *favoriteGorm) Exists(ctx context.Context, symbol string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Favorite{}).
		Where("symbol = ?", symbol).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
