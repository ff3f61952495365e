package ports

import (
	"context"
	"time"

	"github.com/Vovarama1992/docreader/internal/models"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// CreatePending stores an unverified account together with its activation code.
	CreatePending(ctx context.Context, email, passwordHash, otpHash string, expiresAt time.Time) (int64, error)
	Activate(ctx context.Context, userID int64) error
	SetResetOTP(ctx context.Context, userID int64, otpHash string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, userID int64, passwordHash string) error
}
