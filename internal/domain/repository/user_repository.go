package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"inkwell/internal/common"
	"inkwell/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, email, hashed_password, avatar_file)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.HashedPassword, user.AvatarFile,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findBy(ctx, "id = $1", id)
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email = $1", email)
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username = $1", username)
}

func (r *pgUserRepository) findBy(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	query := `SELECT id, username, email, hashed_password, avatar_file, created_at, updated_at
	          FROM users WHERE ` + where
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.AvatarFile, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.findBy: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET username = $1, email = $2, avatar_file = $3, updated_at = now()
	          WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.AvatarFile, user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("username or email already taken: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.UpdateProfile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	query := `UPDATE users SET hashed_password = $1, updated_at = now() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, hashedPassword, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdatePassword: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
