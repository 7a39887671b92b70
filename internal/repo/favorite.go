package repo

import (
	"context"

	"github.com/fakhama/costume_rental/internal/models"
)

func (r *GormRepo) FindFavorite(ctx context.Context, userID, productID uint) (*models.Favorite, error) {
	var fav models.Favorite
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&fav).Error
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *GormRepo) CreateFavorite(ctx context.Context, fav *models.Favorite) error {
	return r.DB.WithContext(ctx).Create(fav).Error
}

func (r *GormRepo) DeleteFavorite(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Favorite{}, id).Error
}

func (r *GormRepo) ListFavoritesByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var items []models.Favorite
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
