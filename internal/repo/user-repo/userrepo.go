package userrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const userColumns = "id, utorid, name, email, password_hash, role, points, verified, suspicious, created_at"

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(&user.ID, &user.Utorid, &user.Name, &user.Email, &user.PasswordHash,
		&role, &user.Points, &user.Verified, &user.Suspicious, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	r, ok := domain.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("unknown role %q for user %d", role, user.ID)
	}
	user.Role = r
	return &user, nil
}

func (r *Repository) GetByID(ctx context.Context, userID int) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetByUtorid(ctx context.Context, utorid string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE utorid = $1
    `
	user, err := scanUser(r.db.QueryRow(ctx, query, utorid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find user by utorid", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// GetForUpdate locks the user row for the duration of the ambient
// transaction. Callers must run inside TXManager.Begin.
func (r *Repository) GetForUpdate(ctx context.Context, userID int) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
        FOR UPDATE
    `
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock user row", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// AddPoints applies a signed delta to the user's balance and returns the new
// balance.
func (r *Repository) AddPoints(ctx context.Context, userID int, delta int) (int, error) {
	query := `
        UPDATE users
        SET points = points + $1
        WHERE id = $2
        RETURNING points
    `
	var points int
	if err := r.db.QueryRow(ctx, query, delta, userID).Scan(&points); err != nil {
		zap.L().Error("can't update user points", zap.Error(err))
		return 0, err
	}
	return points, nil
}

func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (utorid, name, email, password_hash, role, verified)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, points, suspicious, created_at
    `
	row := r.db.QueryRow(ctx, query, user.Utorid, user.Name, user.Email,
		user.PasswordHash, user.Role.String(), user.Verified)
	if err := row.Scan(&user.ID, &user.Points, &user.Suspicious, &user.CreatedAt); err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) SetPassword(ctx context.Context, userID int, passwordHash string) error {
	query := `
        UPDATE users
        SET password_hash = $1
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, passwordHash, userID); err != nil {
		zap.L().Error("can't set user password", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetSuspicious(ctx context.Context, userID int, suspicious bool) error {
	query := `
        UPDATE users
        SET suspicious = $1
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, suspicious, userID); err != nil {
		zap.L().Error("can't set user suspicious flag", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetVerified(ctx context.Context, userID int, verified bool) error {
	query := `
        UPDATE users
        SET verified = $1
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, verified, userID); err != nil {
		zap.L().Error("can't set user verified flag", zap.Error(err))
		return err
	}
	return nil
}
