package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/identity"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	ucAccount "github.com/BruksfildServices01/gym-scheduler/internal/usecase/account"
)

type AuthHandler struct {
	provider identity.Provider
	ensure   *ucAccount.EnsureAccount
}

func NewAuthHandler(provider identity.Provider, ensure *ucAccount.EnsureAccount) *AuthHandler {
	return &AuthHandler{provider: provider, ensure: ensure}
}

// --------- Requests ---------

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	*identity.Session
	Role models.Role `json:"role"`
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "email and password are required")
		return
	}

	session, err := h.provider.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondIdentity(c, err)
		return
	}
	h.respondSession(c, http.StatusCreated, session)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "email and password are required")
		return
	}

	session, err := h.provider.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondIdentity(c, err)
		return
	}
	h.respondSession(c, http.StatusOK, session)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "sign in first")
		return
	}

	if err := h.provider.SignOut(c.Request.Context(), token); err != nil {
		respondIdentity(c, err)
		return
	}
	httpresp.NoContent(c)
}

// respondSession registers the account so the caller learns its role
// right away.
func (h *AuthHandler) respondSession(c *gin.Context, status int, session *identity.Session) {
	account, err := h.ensure.Execute(c.Request.Context(), session.AccountID, session.Email)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(status, SessionResponse{Session: session, Role: account.Role})
}

func respondIdentity(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrEmailInUse):
		httperr.Conflict(c, "email_in_use", "email already registered")
	case errors.Is(err, identity.ErrInvalidEmail):
		httperr.BadRequest(c, "invalid_email", "invalid email")
	case errors.Is(err, identity.ErrWeakPassword):
		httperr.BadRequest(c, "weak_password", "password must have at least 6 characters and at most 72 bytes")
	case errors.Is(err, identity.ErrInvalidCredentials):
		httperr.Unauthorized(c, "invalid_credentials", "wrong email or password")
	case errors.Is(err, identity.ErrInvalidToken):
		httperr.Unauthorized(c, "invalid_token", "session expired, sign in again")
	case errors.Is(err, identity.ErrMethodDisabled):
		httperr.Forbidden(c, "method_disabled", "sign in through the identity provider client")
	default:
		httperr.Respond(c, err)
	}
}
