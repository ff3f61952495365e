package ports

import (
	"context"

	"github.com/Vovarama1992/docreader/internal/models"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.Session, error)
	ValidateToken(ctx context.Context, token string) (*models.Session, error)
	Refresh(session *models.Session) (string, error)

	Register(ctx context.Context, email, password string) error
	VerifyRegistration(ctx context.Context, email, otp string) error

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}
