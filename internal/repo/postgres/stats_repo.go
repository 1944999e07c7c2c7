package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roamstack/tourism-api/internal/domain"
)

type StatsRepo interface {
	Collect(ctx context.Context) (*domain.AdminStats, error)
}

type statsRepo struct{ pool *pgxpool.Pool }

func NewStatsRepo(pool *pgxpool.Pool) StatsRepo { return &statsRepo{pool: pool} }

// Collect gathers the admin dashboard aggregates in one round trip.
func (r *statsRepo) Collect(ctx context.Context) (*domain.AdminStats, error) {
	const q = `SELECT
		(SELECT COALESCE(SUM(price), 0) FROM bookings),
		(SELECT COUNT(*) FROM tour_guides),
		(SELECT COUNT(*) FROM tour_packages),
		(SELECT COUNT(*) FROM users WHERE role='user'),
		(SELECT COUNT(*) FROM tourist_stories)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.AdminStats
	err := r.pool.QueryRow(ctx, q).Scan(
		&s.TotalPayment, &s.TotalTourGuides, &s.TotalPackages, &s.TotalClients, &s.TotalStories,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
