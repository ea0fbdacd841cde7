// Package identity authenticates people. Providers hand out opaque session
// tokens and turn them back into a Principal; accounts and roles are kept by
// the gym core, not here.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/gym-scheduler/internal/validators"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMethodDisabled     = errors.New("sign-in method disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const MinPasswordLength = 6

type Principal struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
}

type Session struct {
	Principal
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*Principal, error)
}

// NormalizeEmail lowercases and trims; accounts are matched on this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkSignUp(email, password string) error {
	if !validators.IsEmail(email) {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
