package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/fakhama/costume_rental/internal/models"
)

// CreateReservations writes every reservation of one cart submission in a
// single transaction, so a failure partway through never leaves a partial
// cart committed.
func (r *GormRepo) CreateReservations(ctx context.Context, reservations []*models.Reservation) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, res := range reservations {
			if err := tx.Create(res).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation := models.Reservation{}
	if err := r.DB.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *GormRepo) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var items []models.Reservation
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListReservationsByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var items []models.Reservation
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SetReservationStatus(ctx context.Context, id uint, status string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.DB.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, err
	}

	reservation.Status = status
	if err := r.DB.WithContext(ctx).Save(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *GormRepo) ActiveReservationByUser(ctx context.Context, userID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.StatusActive).
		Preload("Product").
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *GormRepo) ReservationHistoryByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var items []models.Reservation
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []string{models.StatusReturned, models.StatusLate}).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SumReservationTotalPrice(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.DB.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, err
	}
	return revenue, nil
}

func (r *GormRepo) CountReservationsByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("status = ?", status).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
