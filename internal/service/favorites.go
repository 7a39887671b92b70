package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fakhama/costume_rental/internal/logging"
	"github.com/fakhama/costume_rental/internal/models"
	"github.com/fakhama/costume_rental/internal/repo"
	"github.com/fakhama/costume_rental/internal/transport"
)

type FavoritesService struct {
	Repo *repo.GormRepo
}

// Toggle flips the (user, product) membership: delete when present, create
// when absent. Two toggles in a row always land back on the initial state.
func (s *FavoritesService) Toggle(ctx context.Context, userID, productID uint) (*transport.ToggleFavoriteResponse, error) {
	l := logging.FromContext(ctx).With("svc", "favorites.toggle", "user_id", userID, "product_id", productID)

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("toggle_failed", "status", 400, "reason", "product does not exist")
			return nil, fmt.Errorf("%w: product does not exist", ErrValidation)
		}
		return nil, err
	}

	existing, err := s.Repo.FindFavorite(ctx, userID, productID)
	if err == nil {
		if err := s.Repo.DeleteFavorite(ctx, existing.ID); err != nil {
			return nil, err
		}
		l.Info("favorite_removed")
		return &transport.ToggleFavoriteResponse{Status: "removed", IsFavorite: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fav := &models.Favorite{UserID: userID, ProductID: productID}
	if err := s.Repo.CreateFavorite(ctx, fav); err != nil {
		return nil, err
	}
	l.Info("favorite_added")
	return &transport.ToggleFavoriteResponse{Status: "added", IsFavorite: true}, nil
}

func (s *FavoritesService) List(ctx context.Context, userID uint) ([]models.Favorite, error) {
	return s.Repo.ListFavoritesByUser(ctx, userID)
}
