package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roamstack/tourism-api/internal/domain"
)

type PackagesRepo interface {
	List(ctx context.Context) ([]domain.TourPackage, error)
	GetByID(ctx context.Context, id int64) (*domain.TourPackage, error)
	Insert(ctx context.Context, p *domain.TourPackage) (int64, error)
	RandomSample(ctx context.Context, n int) ([]domain.TourPackage, error)
}

type packagesRepo struct{ pool *pgxpool.Pool }

func NewPackagesRepo(pool *pgxpool.Pool) PackagesRepo { return &packagesRepo{pool: pool} }

const packageCols = `id, title, tour_type, price, metadata, created_at`

func (r *packagesRepo) List(ctx context.Context) ([]domain.TourPackage, error) {
	const q = `SELECT ` + packageCols + ` FROM tour_packages ORDER BY created_at DESC`
	return r.listQuery(ctx, q)
}

func (r *packagesRepo) GetByID(ctx context.Context, id int64) (*domain.TourPackage, error) {
	const q = `SELECT ` + packageCols + ` FROM tour_packages WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.TourPackage
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Title, &p.TourType, &p.Price, &p.Metadata, &p.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *packagesRepo) Insert(ctx context.Context, p *domain.TourPackage) (int64, error) {
	const q = `INSERT INTO tour_packages (title, tour_type, price, metadata)
		VALUES ($1, $2, $3, $4) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q, p.Title, p.TourType, p.Price, p.Metadata).Scan(&id)
	return id, err
}

func (r *packagesRepo) RandomSample(ctx context.Context, n int) ([]domain.TourPackage, error) {
	const q = `SELECT ` + packageCols + ` FROM tour_packages ORDER BY random() LIMIT $1`
	return r.listQuery(ctx, q, n)
}

func (r *packagesRepo) listQuery(ctx context.Context, q string, args ...any) ([]domain.TourPackage, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []domain.TourPackage
	for rows.Next() {
		var p domain.TourPackage
		if err := rows.Scan(
			&p.ID, &p.Title, &p.TourType, &p.Price, &p.Metadata, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}
