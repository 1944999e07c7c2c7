package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roamstack/tourism-api/internal/domain"
)

type GuidesRepo interface {
	List(ctx context.Context) ([]domain.TourGuide, error)
	GetByID(ctx context.Context, id int64) (*domain.TourGuide, error)
	Insert(ctx context.Context, g *domain.TourGuide) (int64, error)
	RandomSample(ctx context.Context, n int) ([]domain.TourGuide, error)
}

type guidesRepo struct{ pool *pgxpool.Pool }

func NewGuidesRepo(pool *pgxpool.Pool) GuidesRepo { return &guidesRepo{pool: pool} }

const guideCols = `id, name, email, photo_url, specialty, metadata, created_at`

func (r *guidesRepo) List(ctx context.Context) ([]domain.TourGuide, error) {
	const q = `SELECT ` + guideCols + ` FROM tour_guides ORDER BY created_at DESC`
	return r.listQuery(ctx, q)
}

func (r *guidesRepo) GetByID(ctx context.Context, id int64) (*domain.TourGuide, error) {
	const q = `SELECT ` + guideCols + ` FROM tour_guides WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var g domain.TourGuide
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&g.ID, &g.Name, &g.Email, &g.PhotoURL, &g.Specialty, &g.Metadata, &g.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *guidesRepo) Insert(ctx context.Context, g *domain.TourGuide) (int64, error) {
	const q = `INSERT INTO tour_guides (name, email, photo_url, specialty, metadata)
		VALUES ($1, lower($2), $3, $4, $5) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q, g.Name, g.Email, g.PhotoURL, g.Specialty, g.Metadata).Scan(&id)
	return id, err
}

func (r *guidesRepo) RandomSample(ctx context.Context, n int) ([]domain.TourGuide, error) {
	const q = `SELECT ` + guideCols + ` FROM tour_guides ORDER BY random() LIMIT $1`
	return r.listQuery(ctx, q, n)
}

func (r *guidesRepo) listQuery(ctx context.Context, q string, args ...any) ([]domain.TourGuide, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []domain.TourGuide
	for rows.Next() {
		var g domain.TourGuide
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Email, &g.PhotoURL, &g.Specialty, &g.Metadata, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		guides = append(guides, g)
	}
	return guides, rows.Err()
}
