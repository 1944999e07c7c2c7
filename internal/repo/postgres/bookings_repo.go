package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roamstack/tourism-api/internal/domain"
)

type BookingsRepo interface {
	Insert(ctx context.Context, req *domain.BookingCreateReq) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	ListAssigned(ctx context.Context, guideName string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

type bookingsRepo struct{ pool *pgxpool.Pool }

func NewBookingsRepo(pool *pgxpool.Pool) BookingsRepo { return &bookingsRepo{pool: pool} }

const bookingCols = `id, tourist_name, email, guide_name, package_name,
tour_date, price, status, metadata, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.TouristName, &b.Email, &b.GuideName, &b.PackageName,
		&b.TourDate, &b.Price, &b.Status, &b.Metadata, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingsRepo) Insert(ctx context.Context, req *domain.BookingCreateReq) (int64, error) {
	const q = `INSERT INTO bookings (
		tourist_name, email, guide_name, package_name,
		tour_date, price, status, metadata
	) VALUES ($1, lower($2), $3, $4, $5, $6, 'Pending', $7)
	RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q,
		req.TouristName, req.Email, req.GuideName, req.PackageName,
		req.TourDate, req.Price, req.Metadata,
	).Scan(&id)
	return id, err
}

func (r *bookingsRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *bookingsRepo) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings
		WHERE lower(email)=lower($1) ORDER BY created_at DESC`
	return r.list(ctx, q, email)
}

// ListAssigned is the guide dashboard view: everything assigned to the guide
// except cancelled tours.
func (r *bookingsRepo) ListAssigned(ctx context.Context, guideName string) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings
		WHERE guide_name=$1 AND status <> 'Cancelled' ORDER BY tour_date ASC`
	return r.list(ctx, q, guideName)
}

func (r *bookingsRepo) list(ctx context.Context, q string, args ...any) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.TouristName, &b.Email, &b.GuideName, &b.PackageName,
			&b.TourDate, &b.Price, &b.Status, &b.Metadata, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatus writes the new status only when it actually changes the row;
// a zero count means the booking is gone or already in that status.
func (r *bookingsRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (int64, error) {
	const q = `UPDATE bookings SET status=$2, updated_at=now() WHERE id=$1 AND status <> $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *bookingsRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
