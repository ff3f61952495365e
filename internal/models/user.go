package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive  = "active"
	StatusPending = "pending" // registered, e-mail not verified yet
)

type User struct {
	ID             int64      `db:"id"`
	Email          string     `db:"email"`
	PasswordHash   string     `db:"password_hash"`
	Role           string     `db:"role"`
	Status         string     `db:"status"`
	ResetOTPHash   *string    `db:"reset_otp_hash"`   // nullable
	ResetExpiresAt *time.Time `db:"reset_expires_at"` // nullable
	CreatedAt      time.Time  `db:"created_at"`
}

type Session struct {
	ID        string    `json:"sid"`
	UserID    int64     `json:"uid"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"-"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
