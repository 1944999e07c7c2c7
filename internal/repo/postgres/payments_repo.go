package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roamstack/tourism-api/internal/domain"
)

type PaymentsRepo interface {
	Insert(ctx context.Context, p *domain.Payment) (int64, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Payment, error)
}

type paymentsRepo struct{ pool *pgxpool.Pool }

func NewPaymentsRepo(pool *pgxpool.Pool) PaymentsRepo { return &paymentsRepo{pool: pool} }

func (r *paymentsRepo) Insert(ctx context.Context, p *domain.Payment) (int64, error) {
	const q = `INSERT INTO payments (email, booking_id, transaction_id, amount)
		VALUES (lower($1), $2, $3, $4) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q, p.Email, p.BookingID, p.TransactionID, p.Amount).Scan(&id)
	return id, err
}

func (r *paymentsRepo) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	const q = `SELECT id, email, booking_id, transaction_id, amount, created_at
		FROM payments WHERE lower(email)=lower($1) ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.Email, &p.BookingID, &p.TransactionID, &p.Amount, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
