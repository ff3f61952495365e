package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
)

const otpDigits = 6

var otpMax = big.NewInt(1_000_000)

// GenerateOTP returns a uniformly random 6-digit code, zero-padded.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

// IsValidEmail accepts a bare address only, no display name.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
