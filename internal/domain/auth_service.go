package domain

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/docreader/internal/models"
	"github.com/Vovarama1992/docreader/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type authService struct {
	users  ports.UserRepository
	mailer ports.Mailer
	secret string

	ttl    time.Duration
	otpTTL time.Duration
	cost   int
	now    func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	mailer ports.Mailer,
	secret string,
	ttl time.Duration,
	otpTTL time.Duration,
) ports.AuthService {
	return &authService{
		users:  users,
		mailer: mailer,
		secret: secret,
		ttl:    ttl,
		otpTTL: otpTTL,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

type claims struct {
	SID   string `json:"sid"`
	UID   int64  `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Exp   int64  `json:"exp"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.Status == models.StatusPending {
		return "", nil, ErrPendingActivation
	}

	session := &models.Session{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
	token, err := s.Refresh(session)
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// Refresh extends the session by a full ttl and returns the new token.
func (s *authService) Refresh(session *models.Session) (string, error) {
	session.ExpiresAt = s.now().Add(s.ttl)

	payload, err := json.Marshal(claims{
		SID:   session.ID,
		UID:   session.UserID,
		Email: session.Email,
		Role:  session.Role,
		Exp:   session.ExpiresAt.Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	body := base64.RawURLEncoding.EncodeToString(payload)
	return body + "." + s.sign(body), nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*models.Session, error) {
	body, sig, ok := strings.Cut(token, ".")
	if !ok || body == "" {
		return nil, ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(body))) {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, ErrInvalidToken
	}

	expires := time.Unix(c.Exp, 0)
	if !s.now().Before(expires) {
		return nil, ErrSessionExpired
	}

	return &models.Session{
		ID:        c.SID,
		UserID:    c.UID,
		Email:     c.Email,
		Role:      c.Role,
		ExpiresAt: expires,
	}, nil
}

// Register creates a pending account and mails its activation code. The
// account cannot log in until VerifyRegistration succeeds.
func (s *authService) Register(ctx context.Context, email, password string) error {
	if len([]rune(password)) < minPasswordLength {
		return ErrWeakPassword
	}

	email = normalizeEmail(email)
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	otp, otpHash, err := s.newOTP()
	if err != nil {
		return err
	}

	if _, err := s.users.CreatePending(ctx, email, string(passwordHash), otpHash, s.now().Add(s.otpTTL)); err != nil {
		return err
	}
	return s.mailer.SendOTP(ctx, email, otp)
}

func (s *authService) VerifyRegistration(ctx context.Context, email, otp string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil || user.Status != models.StatusPending {
		return ErrInvalidOTP
	}
	if err := s.checkOTP(user, otp); err != nil {
		return err
	}
	return s.users.Activate(ctx, user.ID)
}

// RequestPasswordReset mails a one-time code. Unknown addresses succeed
// without doing anything so callers cannot tell which accounts exist.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	otp, hash, err := s.newOTP()
	if err != nil {
		return err
	}

	if err := s.users.SetResetOTP(ctx, user.ID, hash, s.now().Add(s.otpTTL)); err != nil {
		return err
	}
	return s.mailer.SendOTP(ctx, user.Email, otp)
}

func (s *authService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if len([]rune(newPassword)) < minPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidOTP
	}
	if err := s.checkOTP(user, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.ResetPassword(ctx, user.ID, string(hash))
}

func (s *authService) newOTP() (otp, hash string, err error) {
	otp, err = GenerateOTP()
	if err != nil {
		return "", "", err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(otp), s.cost)
	if err != nil {
		return "", "", fmt.Errorf("hash otp: %w", err)
	}
	return otp, string(h), nil
}

// checkOTP matches a code against the one stored on the user row.
func (s *authService) checkOTP(user *models.User, otp string) error {
	if user.ResetOTPHash == nil || user.ResetExpiresAt == nil {
		return ErrInvalidOTP
	}
	if !s.now().Before(*user.ResetExpiresAt) {
		return ErrInvalidOTP
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.ResetOTPHash), []byte(otp)); err != nil {
		return ErrInvalidOTP
	}
	return nil
}

func (s *authService) sign(msg string) string {
	h := hmac.New(sha256.New, []byte(s.secret))
	h.Write([]byte(msg))
	return hex.EncodeToString(h.Sum(nil))
}
