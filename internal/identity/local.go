package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

const (
	credentialsCollection = "credentials"
	revokedCollection     = "revokedTokens"
)

// credentialNamespace keys credential documents by email without putting
// the address in the path.
var credentialNamespace = uuid.MustParse("6f1c2a0e-3b7d-4c8e-9a51-2d4f7e8b9c10")

type credential struct {
	AccountID    string    `json:"accountId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Local keeps bcrypt credentials in the store and issues HS256 JWTs.
// Sign-out records the token id so Verify rejects it until it expires.
type Local struct {
	store  store.Store
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewLocal(s store.Store, secret string, expiry time.Duration) *Local {
	return &Local{
		store:  s,
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

var _ Provider = (*Local)(nil)

func credentialPath(email string) string {
	key := uuid.NewSHA1(credentialNamespace, []byte(email)).String()
	return store.Join(credentialsCollection, key)
}

const MaxLocalPasswordBytes = 72

func (l *Local) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if err := checkSignUp(email, password); err != nil {
		return nil, err
	}
	// bcrypt only hashes the first 72 bytes
	if len(password) > MaxLocalPasswordBytes {
		return nil, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrWeakPassword
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cred := credential{
		AccountID:    uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    l.now(),
	}
	data, err := store.Encode(cred)
	if err != nil {
		return nil, err
	}

	path := credentialPath(email)
	err = l.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		_, err := tx.Get(path)
		if err == nil {
			return ErrEmailInUse
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Set(path, data)
	})
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrEmailInUse
	}
	if err != nil {
		return nil, err
	}

	return l.issue(cred.AccountID, email)
}

func (l *Local) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)

	doc, err := l.store.Get(ctx, credentialPath(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	var cred credential
	if err := store.Decode(*doc, &cred); err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return l.issue(cred.AccountID, cred.Email)
}

func (l *Local) SignOut(ctx context.Context, token string) error {
	c, err := l.parse(token)
	if err != nil {
		return err
	}
	return l.store.Set(ctx, store.Join(revokedCollection, c.ID), map[string]any{
		"accountId": c.Subject,
		"expiresAt": c.ExpiresAt.Time,
	})
}

func (l *Local) Verify(ctx context.Context, token string) (*Principal, error) {
	c, err := l.parse(token)
	if err != nil {
		return nil, err
	}

	_, err = l.store.Get(ctx, store.Join(revokedCollection, c.ID))
	if err == nil {
		return nil, ErrInvalidToken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	return &Principal{AccountID: c.Subject, Email: c.Email}, nil
}

// --------- JWT ---------

func (l *Local) issue(accountID, email string) (*Session, error) {
	now := l.now()
	exp := now.Add(l.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(l.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Session{
		Principal: Principal{AccountID: accountID, Email: email},
		Token:     signed,
		ExpiresAt: exp,
	}, nil
}

func (l *Local) parse(token string) (*claims, error) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c,
		func(t *jwt.Token) (any, error) { return l.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(l.now),
	)
	if err != nil || !parsed.Valid || c.Subject == "" || c.ID == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}
