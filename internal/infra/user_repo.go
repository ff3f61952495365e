package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vovarama1992/docreader/internal/models"
	"github.com/Vovarama1992/docreader/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) ports.UserRepository {
	return &PostgresUserRepo{pool: pool}
}

func (r *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, status, reset_otp_hash, reset_expires_at, created_at
		FROM users
		WHERE email = $1
	`

	var u models.User

	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
		&u.ResetOTPHash,
		&u.ResetExpiresAt,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &u, nil
}

func (r *PostgresUserRepo) CreatePending(ctx context.Context, email, passwordHash, otpHash string, expiresAt time.Time) (int64, error) {
	query := `
		INSERT INTO users (email, password_hash, role, status, reset_otp_hash, reset_expires_at)
		VALUES ($1, $2, 'user', 'pending', $3, $4)
		RETURNING id
	`
	var id int64
	if err := r.pool.QueryRow(ctx, query, email, passwordHash, otpHash, expiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("create pending user: %w", err)
	}
	return id, nil
}

func (r *PostgresUserRepo) Activate(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET status = 'active', reset_otp_hash = NULL, reset_expires_at = NULL
		WHERE id = $1
	`
	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) SetResetOTP(ctx context.Context, userID int64, otpHash string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET reset_otp_hash = $1, reset_expires_at = $2
		WHERE id = $3
	`
	if _, err := r.pool.Exec(ctx, query, otpHash, expiresAt, userID); err != nil {
		return fmt.Errorf("set reset otp: %w", err)
	}
	return nil
}

// ResetPassword stores the new hash and burns the one-time code. A valid
// code proves the address, so pending accounts become active too.
func (r *PostgresUserRepo) ResetPassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, status = 'active', reset_otp_hash = NULL, reset_expires_at = NULL
		WHERE id = $2
	`
	if _, err := r.pool.Exec(ctx, query, passwordHash, userID); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}
