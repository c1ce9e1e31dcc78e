package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)

	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, password, hash)

	other, err := HashPassword(password)
	require.NoError(t, err)
	require.NotEqual(t, hash, other, "Każdy hash powinien mieć własną sól")
}

func TestCheckPasswordHash(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	match := CheckPasswordHash(password, hash)
	require.True(t, match, "Password should match the hash")

	wrongPassword := "wrongPassword"
	match = CheckPasswordHash(wrongPassword, hash)
	require.False(t, match, "Wrong password should not match the hash")

	require.False(t, CheckPasswordHash(password, ""))
	require.False(t, CheckPasswordHash(password, "not-a-bcrypt-hash"))
	require.False(t, CheckPasswordHash(password, hash[:len(hash)-5]))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordLength+1))
	require.Error(t, err)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndValidate(t *testing.T) {
	issuer := NewIssuer("my_super_secret_key_for_testing", 24*time.Hour, "sejf-plikow")

	tokenString, expiresAt, err := issuer.Issue(123)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, 5*time.Second)

	userID, err := issuer.Validate(tokenString)
	require.NoError(t, err)
	require.Equal(t, int64(123), userID)

	wrongSecret := NewIssuer("wrong_secret", 24*time.Hour, "sejf-plikow")
	_, err = wrongSecret.Validate(tokenString)
	require.ErrorIs(t, err, ErrInvalidToken)

	otherIssuer := NewIssuer("my_super_secret_key_for_testing", 24*time.Hour, "someone-else")
	_, err = otherIssuer.Validate(tokenString)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer("secret", time.Hour, "sejf-plikow")
	issuer.now = fixedClock(issuedAt)

	tokenString, expiresAt, err := issuer.Issue(7)
	require.NoError(t, err)
	require.Equal(t, issuedAt.Add(time.Hour), expiresAt)

	issuer.now = fixedClock(expiresAt.Add(-time.Second))
	userID, err := issuer.Validate(tokenString)
	require.NoError(t, err)
	require.Equal(t, int64(7), userID)

	issuer.now = fixedClock(expiresAt.Add(time.Second))
	_, err = issuer.Validate(tokenString)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.NotErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsForgedTokens(t *testing.T) {
	secret := "secret"
	issuer := NewIssuer(secret, time.Hour, "sejf-plikow")

	testCases := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "garbage",
			token: func(t *testing.T) string {
				return "not.a.token"
			},
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				claims := &AppClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1", Issuer: "sejf-plikow"}}
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "non numeric subject",
			token: func(t *testing.T) string {
				claims := &AppClaims{RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "alice",
					Issuer:    "sejf-plikow",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}}
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "alg none",
			token: func(t *testing.T) string {
				claims := &AppClaims{RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "1",
					Issuer:    "sejf-plikow",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}}
				s, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "different hmac variant",
			token: func(t *testing.T) string {
				claims := &AppClaims{RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "1",
					Issuer:    "sejf-plikow",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}}
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
				require.NoError(t, err)
				return s
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := issuer.Validate(tc.token(t))
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
