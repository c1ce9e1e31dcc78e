package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var ErrMalformedPayload = errors.New("malformed credential payload")

// Decrypter turns an opaque client payload back into plaintext.
type Decrypter interface {
	Decrypt(payload string) ([]byte, error)
}

type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegistrationCredentials struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}

// CredentialCodec decrypts and validates the encrypted credential envelopes
// sent to the login and registration endpoints. Every failure is reported as
// ErrMalformedPayload.
type CredentialCodec struct {
	keys Decrypter
}

func NewCredentialCodec(keys Decrypter) *CredentialCodec {
	return &CredentialCodec{keys: keys}
}

func (c *CredentialCodec) DecodeLogin(payload string) (*LoginCredentials, error) {
	var creds LoginCredentials
	if err := c.decode(payload, &creds); err != nil {
		return nil, err
	}
	creds.Username = strings.TrimSpace(creds.Username)

	err := validation.ValidateStruct(&creds,
		validation.Field(&creds.Username, validation.Required),
		validation.Field(&creds.Password, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return &creds, nil
}

func (c *CredentialCodec) DecodeRegistration(payload string) (*RegistrationCredentials, error) {
	var creds RegistrationCredentials
	if err := c.decode(payload, &creds); err != nil {
		return nil, err
	}
	creds.Username = strings.TrimSpace(creds.Username)
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	err := validation.ValidateStruct(&creds,
		validation.Field(&creds.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&creds.Password, validation.Required, validation.Length(MinPasswordLength, 0), validation.By(maxBytes(MaxPasswordLength))),
		validation.Field(&creds.Email, validation.Required, validation.Length(0, 255), is.EmailFormat),
		validation.Field(&creds.FullName, validation.NilOrNotEmpty, validation.Length(0, 120)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return &creds, nil
}

func (c *CredentialCodec) decode(payload string, dst any) error {
	if strings.TrimSpace(payload) == "" {
		return fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}

	plaintext, err := c.keys.Decrypt(payload)
	if err != nil {
		if errors.Is(err, ErrMalformedPayload) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if err := json.Unmarshal(plaintext, dst); err != nil {
		return fmt.Errorf("%w: invalid json: %v", ErrMalformedPayload, err)
	}

	return nil
}

func maxBytes(limit int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > limit {
			return fmt.Errorf("must be at most %d bytes", limit)
		}
		return nil
	}
}
