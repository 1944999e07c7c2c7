package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roamstack/tourism-api/internal/domain"
)

type RegistrationsRepo interface {
	Insert(ctx context.Context, reg *domain.EventRegistration) (int64, error)
}

type registrationsRepo struct{ pool *pgxpool.Pool }

func NewRegistrationsRepo(pool *pgxpool.Pool) RegistrationsRepo {
	return &registrationsRepo{pool: pool}
}

// Insert registers at most one attendee per email; a zero id means the
// email was already registered.
func (r *registrationsRepo) Insert(ctx context.Context, reg *domain.EventRegistration) (int64, error) {
	const q = `INSERT INTO event_registrations (name, email, contact)
		VALUES ($1, lower($2), $3)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q, reg.Name, reg.Email, reg.Contact).Scan(&id)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	return id, err
}
