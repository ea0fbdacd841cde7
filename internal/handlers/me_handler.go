package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	ucAccount "github.com/BruksfildServices01/gym-scheduler/internal/usecase/account"
)

type MeHandler struct {
	getAccount *ucAccount.GetAccount
}

func NewMeHandler(getAccount *ucAccount.GetAccount) *MeHandler {
	return &MeHandler{getAccount: getAccount}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	account, err := h.getAccount.Execute(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": account,
		"isAdmin": account.IsAdmin(),
	})
}
