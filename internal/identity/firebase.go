package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// Firebase delegates to Firebase Authentication. Password sign-in happens
// in the client SDK, which then presents an ID token; SignUp hands back a
// custom token the client exchanges for one.
type Firebase struct {
	client *auth.Client
}

func NewFirebase(client *auth.Client) *Firebase {
	return &Firebase{client: client}
}

var _ Provider = (*Firebase)(nil)

func (f *Firebase) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if err := checkSignUp(email, password); err != nil {
		return nil, err
	}

	user, err := f.client.CreateUser(ctx, (&auth.UserToCreate{}).Email(email).Password(password))
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("create firebase user: %w", err)
	}

	token, err := f.client.CustomToken(ctx, user.UID)
	if err != nil {
		return nil, fmt.Errorf("mint custom token: %w", err)
	}

	return &Session{
		Principal: Principal{AccountID: user.UID, Email: email},
		Token:     token,
	}, nil
}

func (f *Firebase) SignIn(context.Context, string, string) (*Session, error) {
	return nil, ErrMethodDisabled
}

// SignOut revokes every refresh token of the account behind the ID token.
func (f *Firebase) SignOut(ctx context.Context, token string) error {
	p, err := f.Verify(ctx, token)
	if err != nil {
		return err
	}
	if err := f.client.RevokeRefreshTokens(ctx, p.AccountID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}

func (f *Firebase) Verify(ctx context.Context, token string) (*Principal, error) {
	decoded, err := f.client.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, _ := decoded.Claims["email"].(string)
	return &Principal{AccountID: decoded.UID, Email: NormalizeEmail(email)}, nil
}
