package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roamstack/tourism-api/internal/domain"
)

type UsersRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, req *domain.UserCreateReq) (int64, error)
	List(ctx context.Context, search string, role string) ([]domain.User, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	UpdateProfile(ctx context.Context, email, name, photoURL string) (int64, error)
	SetRoleByID(ctx context.Context, id int64, role domain.Role) (int64, error)
	SetRoleByEmail(ctx context.Context, email string, role domain.Role) (int64, error)
}

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsersRepo(pool *pgxpool.Pool) UsersRepo { return &usersRepo{pool: pool} }

const userCols = `id, email, name, photo_url, role, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usersRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE lower(email)=lower($1)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *usersRepo) Insert(ctx context.Context, req *domain.UserCreateReq) (int64, error) {
	// ON CONFLICT keeps registration idempotent even when two requests race
	// past the handler's existence check.
	const q = `INSERT INTO users (email, name, photo_url, role)
		VALUES (lower($1), $2, $3, 'user')
		ON CONFLICT (email) DO NOTHING
		RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q, req.Email, req.Name, req.PhotoURL).Scan(&id)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	return id, err
}

func (r *usersRepo) List(ctx context.Context, search, role string) ([]domain.User, error) {
	q := `SELECT ` + userCols + ` FROM users WHERE 1=1`
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		q += ` AND (name ILIKE $1 OR email ILIKE $1)`
	}
	if role != "" {
		args = append(args, role)
		if len(args) == 1 {
			q += ` AND role=$1`
		} else {
			q += ` AND role=$2`
		}
	}
	q += ` ORDER BY created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM users WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *usersRepo) UpdateProfile(ctx context.Context, email, name, photoURL string) (int64, error) {
	const q = `UPDATE users SET name=$2, photo_url=$3, updated_at=now() WHERE lower(email)=lower($1)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, email, name, photoURL)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *usersRepo) SetRoleByID(ctx context.Context, id int64, role domain.Role) (int64, error) {
	const q = `UPDATE users SET role=$2, updated_at=now() WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id, role)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *usersRepo) SetRoleByEmail(ctx context.Context, email string, role domain.Role) (int64, error) {
	const q = `UPDATE users SET role=$2, updated_at=now() WHERE lower(email)=lower($1)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, email, role)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
