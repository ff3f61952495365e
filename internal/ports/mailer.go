package ports

import "context"

type Mailer interface {
	SendOTP(ctx context.Context, email, otp string) error
}
