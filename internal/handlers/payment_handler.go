package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	ucPayment "github.com/BruksfildServices01/gym-scheduler/internal/usecase/payment"
)

type PaymentHandler struct {
	list   *ucPayment.ListPayments
	record *ucPayment.RecordPayment
	remove *ucPayment.DeletePayment
}

func NewPaymentHandler(
	list *ucPayment.ListPayments,
	record *ucPayment.RecordPayment,
	remove *ucPayment.DeletePayment,
) *PaymentHandler {
	return &PaymentHandler{
		list:   list,
		record: record,
		remove: remove,
	}
}

// List accepts ?clientId= to narrow the ledger to one client.
func (h *PaymentHandler) List(c *gin.Context) {
	ps, err := h.list.Execute(c.Request.Context(), middleware.AccountID(c), c.Query("clientId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, ps)
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req domain.PaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid payment")
		return
	}

	tenantID := middleware.AccountID(c)
	p, err := h.record.Execute(c.Request.Context(), tenantID, tenantID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, p)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	tenantID := middleware.AccountID(c)
	if err := h.remove.Execute(c.Request.Context(), tenantID, tenantID, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
