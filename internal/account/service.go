// Package account implements registration, login and bearer token
// authentication on top of the credential codec and the user store.
package account

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sejf-plikow/internal/auth"
	"sejf-plikow/internal/database"
	"sejf-plikow/internal/models"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("user account is disabled")
	ErrInvalidProfile     = errors.New("invalid profile")
)

const maxFullNameLength = 120

type UserStore interface {
	CreateUser(ctx context.Context, arg database.CreateUserParams) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserProfile(ctx context.Context, arg database.UpdateUserProfileParams) (*models.User, error)
}

type Session struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type" example:"bearer"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

type ProfileUpdate struct {
	FullName *string
	Email    *string
}

type Service struct {
	users     UserStore
	codec     *auth.CredentialCodec
	tokens    *auth.Issuer
	logger    *zap.Logger
	sanitizer *bluemonday.Policy
	dummyHash func() string
}

func NewService(users UserStore, codec *auth.CredentialCodec, tokens *auth.Issuer, logger *zap.Logger) *Service {
	return &Service{
		users:     users,
		codec:     codec,
		tokens:    tokens,
		logger:    logger,
		sanitizer: bluemonday.StrictPolicy(),
		dummyHash: sync.OnceValue(func() string {
			hash, err := auth.HashPassword("sejf-plikow-timing-equalizer")
			if err != nil {
				panic(err)
			}
			return hash
		}),
	}
}

const maxSanitizePasses = 8

// cleanFullName strips markup and returns plain text. Entity-encoded markup
// is decoded and stripped again until the value stops changing; a value that
// still carries angle brackets is rejected.
func (s *Service) cleanFullName(name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}

	cleaned := *name
	for i := 0; ; i++ {
		next := html.UnescapeString(s.sanitizer.Sanitize(cleaned))
		if next == cleaned {
			break
		}
		if i == maxSanitizePasses {
			return nil, fmt.Errorf("%w: full_name: too deeply encoded", ErrInvalidProfile)
		}
		cleaned = next
	}

	if strings.ContainsAny(cleaned, "<>") {
		return nil, fmt.Errorf("%w: full_name: must not contain angle brackets", ErrInvalidProfile)
	}
	cleaned = strings.TrimSpace(cleaned)
	return &cleaned, nil
}

// Register creates a user from an encrypted registration payload. Duplicate
// usernames and emails are rejected by the store's unique constraints.
func (s *Service) Register(ctx context.Context, payload string) (*models.User, error) {
	creds, err := s.codec.DecodeRegistration(payload)
	if err != nil {
		return nil, err
	}

	fullName, err := s.cleanFullName(creds.FullName)
	if err != nil {
		return nil, err
	}
	if fullName != nil && *fullName == "" {
		fullName = nil
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, database.CreateUserParams{
		Username:     creds.Username,
		Email:        creds.Email,
		PasswordHash: hash,
		FullName:     fullName,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login verifies an encrypted login payload and issues a bearer token. An
// unknown username and a wrong password are indistinguishable to the caller,
// including in timing.
func (s *Service) Login(ctx context.Context, payload string) (*Session, error) {
	creds, err := s.codec.DecodeLogin(payload)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			auth.CheckPasswordHash(creds.Password, s.dummyHash())
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(creds.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))

	return &Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// Authenticate resolves a bearer token to an active user. A valid token whose
// subject no longer exists or is disabled is an invalid token.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown subject %d", auth.ErrInvalidToken, userID)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user %d is disabled", auth.ErrInvalidToken, userID)
	}

	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*models.User, error) {
	fullName, err := s.cleanFullName(update.FullName)
	if err != nil {
		return nil, err
	}

	var email *string
	if update.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*update.Email))
		email = &normalized
	}

	err = validation.Errors{
		"full_name": validation.Validate(fullName, validation.NilOrNotEmpty, validation.RuneLength(0, maxFullNameLength)),
		"email":     validation.Validate(email, validation.NilOrNotEmpty, validation.Length(0, 255), is.EmailFormat),
	}.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	return s.users.UpdateUserProfile(ctx, database.UpdateUserProfileParams{
		ID:       userID,
		FullName: fullName,
		Email:    email,
	})
}
