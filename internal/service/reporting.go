package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fakhama/costume_rental/internal/logging"
	"github.com/fakhama/costume_rental/internal/models"
	"github.com/fakhama/costume_rental/internal/repo"
	"github.com/fakhama/costume_rental/internal/transport"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 30 * time.Second
)

type ReportingService struct {
	Repo *repo.GormRepo
	// RDB is optional; without it stats are computed on every call.
	RDB *redis.Client
}

// Stats aggregates the dashboard numbers. Revenue is the all-time sum of
// reservation total prices, not a monthly window; the mobile dashboard
// labels it "this month" but that has always been an all-time figure.
func (s *ReportingService) Stats(ctx context.Context) (*transport.StatsResponse, error) {
	l := logging.FromContext(ctx).With("svc", "reporting.stats")

	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	revenue, err := s.Repo.SumReservationTotalPrice(ctx)
	if err != nil {
		l.Error("stats_failed", "status", 500, "error", err)
		return nil, err
	}

	active, err := s.Repo.CountReservationsByStatus(ctx, models.StatusActive)
	if err != nil {
		l.Error("stats_failed", "status", 500, "error", err)
		return nil, err
	}

	products, err := s.Repo.CountProducts(ctx)
	if err != nil {
		l.Error("stats_failed", "status", 500, "error", err)
		return nil, err
	}

	stats := &transport.StatsResponse{
		Revenue:       revenue,
		ActiveRentals: active,
		TotalProducts: products,
	}
	s.toCache(ctx, stats)

	return stats, nil
}

func (s *ReportingService) fromCache(ctx context.Context) *transport.StatsResponse {
	if s.RDB == nil {
		return nil
	}

	raw, err := s.RDB.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logging.FromContext(ctx).Warn("stats cache read error", "error", err)
		}
		return nil
	}

	var stats transport.StatsResponse
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *ReportingService) toCache(ctx context.Context, stats *transport.StatsResponse) {
	if s.RDB == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.RDB.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		logging.FromContext(ctx).Warn("stats cache write error", "error", err)
	}
}
