package auth

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	ResetCodeLength = 6
	ResetCodeTTL    = 15 * time.Minute
	MinPasswordLen  = 6

	// wrong guesses before a code is burned
	MaxResetAttempts = 5

	resetAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NewResetCode returns a random uppercase alphanumeric code.
func NewResetCode() (string, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(resetAlphabet)))
	for i := 0; i < ResetCodeLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(resetAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeCode accepts codes typed in lower case or with spaces.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
