package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inkwell/internal/common"
	"inkwell/internal/domain/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context, limit, offset int) ([]*model.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id int64) error
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (title, slug, content, author_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Slug, post.Content, post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `SELECT id, title, slug, content, author_id, created_at, updated_at
	          FROM posts WHERE id = $1`
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
	}
	return post, nil
}

func (r *pgPostRepository) List(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	query := `SELECT id, title, slug, content, author_id, created_at, updated_at
	          FROM posts ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *pgPostRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*model.Post, error) {
	query := `SELECT id, title, slug, content, author_id, created_at, updated_at
	          FROM posts WHERE author_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, authorID, limit, offset)
}

func (r *pgPostRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.list: %w", err)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Slug, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgPostRepository.list scan: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPostRepository.list rows: %w", err)
	}
	return posts, nil
}

func (r *pgPostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `UPDATE posts SET title = $1, slug = $2, content = $3, updated_at = now()
	          WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, post.Title, post.Slug, post.Content, post.ID)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
