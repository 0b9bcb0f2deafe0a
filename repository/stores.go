package repository

import (
	"context"
	"errors"
	"fmt"

	"pizza-store/models"

	"gorm.io/gorm"
)

// ListStores returns every store, open ones first.
func (r *Repository) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).Order("isopen DESC").Order("storeid").Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("select stores: %w", err)
	}
	return stores, nil
}

// OpenStore returns the store with id if it exists and is open.
func (r *Repository) OpenStore(ctx context.Context, id int) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).Where("storeid = ? AND isopen = ?", id, true).First(&store).Error
	switch {
	case err == nil:
		return &store, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrStoreNotOpen
	default:
		return nil, fmt.Errorf("select store: %w", err)
	}
}
