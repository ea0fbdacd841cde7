package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/dto"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	ucClient "github.com/BruksfildServices01/gym-scheduler/internal/usecase/client"
	ucPayment "github.com/BruksfildServices01/gym-scheduler/internal/usecase/payment"
)

type ClientHandler struct {
	list        *ucClient.ListClients
	get         *ucClient.GetClient
	create      *ucClient.CreateClient
	update      *ucClient.UpdateClient
	remove      *ucClient.DeleteClient
	setModality *ucClient.SetClientModality

	status *ucPayment.ClientStatus
	roster *ucPayment.RosterStatus
}

func NewClientHandler(
	list *ucClient.ListClients,
	get *ucClient.GetClient,
	create *ucClient.CreateClient,
	update *ucClient.UpdateClient,
	remove *ucClient.DeleteClient,
	setModality *ucClient.SetClientModality,
	status *ucPayment.ClientStatus,
	roster *ucPayment.RosterStatus,
) *ClientHandler {
	return &ClientHandler{
		list:        list,
		get:         get,
		create:      create,
		update:      update,
		remove:      remove,
		setModality: setModality,
		status:      status,
		roster:      roster,
	}
}

type ModalityRequest struct {
	ModalityID string `json:"modalityId"`
}

// ======================================================
// LIST CLIENTS
// ======================================================

// List accepts ?query= for a name, phone or email search. With
// ?withStatus=true each client carries its membership status.
func (h *ClientHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.AccountID(c)

	clients, err := h.list.Execute(ctx, tenantID, c.Query("query"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if c.Query("withStatus") != "true" {
		httpresp.List(c, clients)
		return
	}

	statuses, err := h.roster.Execute(ctx, tenantID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewClientRoster(clients, statuses))
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.get.Execute(c.Request.Context(), middleware.AccountID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, client)
}

// ======================================================
// WRITE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req domain.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid client")
		return
	}

	tenantID := middleware.AccountID(c)
	client, err := h.create.Execute(c.Request.Context(), tenantID, tenantID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req domain.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid client")
		return
	}

	tenantID := middleware.AccountID(c)
	client, err := h.update.Execute(c.Request.Context(), tenantID, tenantID, c.Param("id"), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	tenantID := middleware.AccountID(c)
	if err := h.remove.Execute(c.Request.Context(), tenantID, tenantID, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *ClientHandler) SetModality(c *gin.Context) {
	var req ModalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid modality")
		return
	}

	tenantID := middleware.AccountID(c)
	if err := h.setModality.Execute(c.Request.Context(), tenantID, tenantID, c.Param("id"), req.ModalityID); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// MEMBERSHIP STATUS
// ======================================================

func (h *ClientHandler) Status(c *gin.Context) {
	clientID := c.Param("id")
	status, err := h.status.Execute(c.Request.Context(), middleware.AccountID(c), clientID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"clientId": clientID, "status": status})
}

func (h *ClientHandler) Statuses(c *gin.Context) {
	statuses, err := h.roster.Execute(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, statuses)
}
