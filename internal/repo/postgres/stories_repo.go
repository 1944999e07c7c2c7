package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roamstack/tourism-api/internal/domain"
)

type StoriesRepo interface {
	ListAll(ctx context.Context) ([]domain.Story, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Story, error)
	ListByGuideID(ctx context.Context, guideID int64) ([]domain.Story, error)
	GetByID(ctx context.Context, id int64) (*domain.Story, error)
	RandomSample(ctx context.Context, n int) ([]domain.Story, error)
	Insert(ctx context.Context, s *domain.Story) (int64, error)
	Update(ctx context.Context, id int64, req *domain.StoryUpdateReq) (int64, error)
	RemoveImage(ctx context.Context, id int64, imageURL string) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

type storiesRepo struct{ pool *pgxpool.Pool }

func NewStoriesRepo(pool *pgxpool.Pool) StoriesRepo { return &storiesRepo{pool: pool} }

const storyCols = `id, email, author_name, title, description, images, guide_id, created_at, updated_at`

func (r *storiesRepo) ListAll(ctx context.Context) ([]domain.Story, error) {
	const q = `SELECT ` + storyCols + ` FROM tourist_stories ORDER BY created_at DESC`
	return r.listQuery(ctx, q)
}

func (r *storiesRepo) ListByEmail(ctx context.Context, email string) ([]domain.Story, error) {
	const q = `SELECT ` + storyCols + ` FROM tourist_stories
		WHERE lower(email)=lower($1) ORDER BY created_at DESC`
	return r.listQuery(ctx, q, email)
}

func (r *storiesRepo) ListByGuideID(ctx context.Context, guideID int64) ([]domain.Story, error) {
	const q = `SELECT ` + storyCols + ` FROM tourist_stories
		WHERE guide_id=$1 ORDER BY created_at DESC`
	return r.listQuery(ctx, q, guideID)
}

func (r *storiesRepo) GetByID(ctx context.Context, id int64) (*domain.Story, error) {
	const q = `SELECT ` + storyCols + ` FROM tourist_stories WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.Story
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.Email, &s.AuthorName, &s.Title, &s.Description,
		&s.Images, &s.GuideID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *storiesRepo) RandomSample(ctx context.Context, n int) ([]domain.Story, error) {
	const q = `SELECT ` + storyCols + ` FROM tourist_stories ORDER BY random() LIMIT $1`
	return r.listQuery(ctx, q, n)
}

func (r *storiesRepo) Insert(ctx context.Context, s *domain.Story) (int64, error) {
	const q = `INSERT INTO tourist_stories (email, author_name, title, description, images, guide_id)
		VALUES (lower($1), $2, $3, $4, $5, $6) RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	images := s.Images
	if images == nil {
		images = []string{}
	}

	var id int64
	err := r.pool.QueryRow(ctx, q, s.Email, s.AuthorName, s.Title, s.Description, images, s.GuideID).Scan(&id)
	return id, err
}

// Update sets title and description and appends any new images.
func (r *storiesRepo) Update(ctx context.Context, id int64, req *domain.StoryUpdateReq) (int64, error) {
	const q = `UPDATE tourist_stories
		SET title=$2, description=$3, images = images || $4, updated_at=now()
		WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	newImages := req.NewImages
	if newImages == nil {
		newImages = []string{}
	}

	result, err := r.pool.Exec(ctx, q, id, req.Title, req.Description, newImages)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *storiesRepo) RemoveImage(ctx context.Context, id int64, imageURL string) (int64, error) {
	const q = `UPDATE tourist_stories
		SET images = array_remove(images, $2), updated_at=now()
		WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id, imageURL)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *storiesRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM tourist_stories WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *storiesRepo) listQuery(ctx context.Context, q string, args ...any) ([]domain.Story, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		var s domain.Story
		if err := rows.Scan(
			&s.ID, &s.Email, &s.AuthorName, &s.Title, &s.Description,
			&s.Images, &s.GuideID, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, rows.Err()
}
