package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/identity"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

const (
	ContextAccountID = "accountID"
	ContextEmail     = "email"
	ContextRole      = "role"
	ContextToken     = "token"
)

// AccountEnsurer registers the account on its first authenticated request.
type AccountEnsurer interface {
	Execute(ctx context.Context, accountID, email string) (*models.Account, error)
}

func AuthMiddleware(provider identity.Provider, accounts AccountEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			httperr.Unauthorized(c, "missing_authorization_header", "sign in first")
			c.Abort()
			return
		}

		principal, err := provider.Verify(c.Request.Context(), token)
		if errors.Is(err, identity.ErrInvalidToken) {
			httperr.Unauthorized(c, "invalid_token", "session expired, sign in again")
			c.Abort()
			return
		}
		if err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}

		account, err := accounts.Execute(c.Request.Context(), principal.AccountID, principal.Email)
		if err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAccountID, account.ID)
		c.Set(ContextEmail, account.Email)
		c.Set(ContextRole, account.Role)
		c.Set(ContextToken, token)

		c.Next()
	}
}

// RequireRole lets only accounts with role through. Must run after
// AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got, _ := c.Get(ContextRole); got != role {
			httperr.Respond(c, httperr.ErrBusiness(httperr.CodeForbidden))
			c.Abort()
			return
		}
		c.Next()
	}
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// AccountID is the authenticated account. For admins it is also the tenant.
func AccountID(c *gin.Context) string {
	return c.GetString(ContextAccountID)
}
