package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fakhama/costume_rental/internal/logging"
	"github.com/fakhama/costume_rental/internal/models"
	"github.com/fakhama/costume_rental/internal/mykafka"
	"github.com/fakhama/costume_rental/internal/repo"
	"github.com/fakhama/costume_rental/internal/transport"
)

const dateLayout = "2006-01-02"

type BookingService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// DurationDays is the whole number of days between start and end, floored
// to 1. Same-day and inverted ranges are charged as a single day rather
// than rejected.
func DurationDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

// SubmitCart books every resolvable line item of a cart. Line items whose
// product no longer exists are skipped, not failed: one dead reference must
// not abort the whole order. Each skip is reported back in the per-item
// outcome list. All created reservations are committed in one transaction.
func (s *BookingService) SubmitCart(ctx context.Context, userID uint, cinURL string, items []transport.CartItem) (*transport.CartResult, error) {
	l := logging.FromContext(ctx).With("svc", "booking.submit_cart", "user_id", userID)

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if cinURL == "" {
		return nil, fmt.Errorf("%w: cin image required", ErrValidation)
	}

	results := make([]transport.CartItemResult, len(items))
	var created []*models.Reservation
	var createdIdx []int

	for i, item := range items {
		results[i] = transport.CartItemResult{ProductID: item.ProductID, Status: transport.CartItemSkipped}

		start, err := time.Parse(dateLayout, item.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start_date %q", ErrValidation, item.StartDate)
		}
		end, err := time.Parse(dateLayout, item.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end_date %q", ErrValidation, item.EndDate)
		}

		product, err := s.Repo.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				results[i].Reason = "product not found"
				l.Warn("cart_item_skipped", "product_id", item.ProductID, "reason", "product not found")
				continue
			}
			return nil, err
		}

		days := DurationDays(start, end)
		totalPrice := product.Price * float64(days)

		// Snapshot the product as it is right now. The requested size is
		// stored as-is, it is not checked against the product's size list.
		reservation := &models.Reservation{
			UserID:       userID,
			ProductID:    product.ID,
			CIN:          cinURL,
			StartDate:    start,
			EndDate:      end,
			TotalPrice:   totalPrice,
			Status:       models.StatusPending,
			ProductName:  product.Name,
			ProductImage: product.Image,
			Size:         item.Size,
		}

		created = append(created, reservation)
		createdIdx = append(createdIdx, i)
	}

	if err := s.Repo.CreateReservations(ctx, created); err != nil {
		l.Error("submit_cart_failed", "status", 500, "error", err)
		return nil, err
	}

	for n, reservation := range created {
		i := createdIdx[n]
		results[i].Status = transport.CartItemCreated
		results[i].Reason = ""
		results[i].ReservationID = reservation.ID
		results[i].TotalPrice = reservation.TotalPrice
	}

	s.publish(ctx, map[string]any{
		"type":    "reservations_created",
		"userID":  userID,
		"created": len(created),
		"skipped": len(items) - len(created),
	})

	l.Info("submit_cart_success", "created", len(created), "skipped", len(items)-len(created))
	return &transport.CartResult{
		Message: "Commande validée avec succès !",
		Items:   results,
	}, nil
}

// MarkReturned sets the status to returned no matter what it was before,
// so calling it twice is harmless.
func (s *BookingService) MarkReturned(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.setStatus(ctx, id, models.StatusReturned)
}

// SetStatus is the explicit admin state-set operation for the manual
// pending/active/late/returned lifecycle.
func (s *BookingService) SetStatus(ctx context.Context, id uint, status string) (*models.Reservation, error) {
	valid := false
	for _, st := range models.Statuses {
		if st == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	return s.setStatus(ctx, id, status)
}

func (s *BookingService) setStatus(ctx context.Context, id uint, status string) (*models.Reservation, error) {
	l := logging.FromContext(ctx).With("svc", "booking.set_status", "reservation_id", id)

	reservation, err := s.Repo.SetReservationStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("set_status_failed", "status", 404, "reason", "reservation not found")
			return nil, fmt.Errorf("%w: reservation", ErrNotFound)
		}
		l.Error("set_status_failed", "status", 500, "error", err)
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":          "reservation_status_changed",
		"reservationID": reservation.ID,
		"status":        status,
	})

	l.Info("set_status_success", "new_status", status)
	return reservation, nil
}

// List returns every reservation for admins and only the caller's own
// reservations for everyone else.
func (s *BookingService) List(ctx context.Context, userID uint, isAdmin bool) ([]models.Reservation, error) {
	if isAdmin {
		return s.Repo.ListReservations(ctx)
	}
	return s.Repo.ListReservationsByUser(ctx, userID)
}

// ListMine is always scoped to the caller, admin or not.
func (s *BookingService) ListMine(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return s.Repo.ListReservationsByUser(ctx, userID)
}

func (s *BookingService) publish(ctx context.Context, event map[string]any) {
	if s.Producer == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "reservation_events", fmt.Sprint(event["type"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
