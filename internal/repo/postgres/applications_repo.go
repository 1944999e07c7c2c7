package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roamstack/tourism-api/internal/domain"
)

type ApplicationsRepo interface {
	List(ctx context.Context) ([]domain.GuideApplication, error)
	Insert(ctx context.Context, a *domain.GuideApplication) (int64, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

type applicationsRepo struct{ pool *pgxpool.Pool }

func NewApplicationsRepo(pool *pgxpool.Pool) ApplicationsRepo {
	return &applicationsRepo{pool: pool}
}

const applicationCols = `id, email, name, title, reason, cv_link, created_at`

func (r *applicationsRepo) List(ctx context.Context) ([]domain.GuideApplication, error) {
	const q = `SELECT ` + applicationCols + ` FROM guide_applications ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.GuideApplication
	for rows.Next() {
		var a domain.GuideApplication
		if err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.Title, &a.Reason, &a.CVLink, &a.CreatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// Insert enforces one pending application per email; a zero id means an
// application for that email already exists.
func (r *applicationsRepo) Insert(ctx context.Context, a *domain.GuideApplication) (int64, error) {
	const q = `INSERT INTO guide_applications (email, name, title, reason, cv_link)
		VALUES (lower($1), $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q, a.Email, a.Name, a.Title, a.Reason, a.CVLink).Scan(&id)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	return id, err
}

func (r *applicationsRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	const q = `DELETE FROM guide_applications WHERE lower(email)=lower($1)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, email)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
