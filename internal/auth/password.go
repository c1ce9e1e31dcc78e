package auth

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	// bcrypt ignores input past 72 bytes, so longer passwords are refused
	// at registration instead of being silently truncated.
	MaxPasswordLength = 72
)

var bcryptCost = bcrypt.DefaultCost

// HashPassword returns a bcrypt hash with a per-call salt embedded in it.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash. A malformed or
// truncated hash is a mismatch, never an error.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
