package infra

import (
	"context"

	"github.com/Vovarama1992/docreader/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

// LogMailer writes one-time codes to the application log instead of sending
// mail. It is the only mailer; SMTP delivery is not wired up.
type LogMailer struct {
	log *logger.ZapLogger
}

func NewLogMailer(log *logger.ZapLogger) ports.Mailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendOTP(ctx context.Context, email, otp string) error {
	m.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "one-time code issued",
		Fields: map[string]any{
			"email": email,
			"otp":   otp,
		},
	})
	return nil
}
