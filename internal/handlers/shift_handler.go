package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/dto"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	ucClient "github.com/BruksfildServices01/gym-scheduler/internal/usecase/client"
	ucModality "github.com/BruksfildServices01/gym-scheduler/internal/usecase/modality"
	ucShift "github.com/BruksfildServices01/gym-scheduler/internal/usecase/shift"
)

// ======================================================
// HANDLER
// ======================================================

type ShiftHandler struct {
	create *ucShift.CreateShift
	update *ucShift.UpdateShift
	remove *ucShift.DeleteShift
	book   *ucShift.BookClient
	unbook *ucShift.UnbookClient
	list   *ucShift.ListShifts
	watch  *ucShift.WatchShifts

	modalities *ucModality.ListModalities
	clients    *ucClient.ListClients
}

func NewShiftHandler(
	create *ucShift.CreateShift,
	update *ucShift.UpdateShift,
	remove *ucShift.DeleteShift,
	book *ucShift.BookClient,
	unbook *ucShift.UnbookClient,
	list *ucShift.ListShifts,
	watch *ucShift.WatchShifts,
	modalities *ucModality.ListModalities,
	clients *ucClient.ListClients,
) *ShiftHandler {
	return &ShiftHandler{
		create:     create,
		update:     update,
		remove:     remove,
		book:       book,
		unbook:     unbook,
		list:       list,
		watch:      watch,
		modalities: modalities,
		clients:    clients,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookRequest struct {
	ClientID string `json:"clientId" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *ShiftHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.AccountID(c)

	shifts, err := h.list.Execute(ctx, tenantID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	modalities, err := h.modalities.Execute(ctx, tenantID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	clients, err := h.clients.Execute(ctx, tenantID, "")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewShiftList(shifts, modalities, clients))
}

func (h *ShiftHandler) Stream(c *gin.Context) {
	ch, err := h.watch.Execute(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	streamSSE(c, ch)
}

// ======================================================
// CRUD
// ======================================================

func (h *ShiftHandler) Create(c *gin.Context) {
	var req domain.ShiftInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid shift")
		return
	}

	tenantID := middleware.AccountID(c)
	s, err := h.create.Execute(c.Request.Context(), tenantID, tenantID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *ShiftHandler) Update(c *gin.Context) {
	var req domain.ShiftInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid shift")
		return
	}

	tenantID := middleware.AccountID(c)
	s, err := h.update.Execute(c.Request.Context(), tenantID, tenantID, c.Param("id"), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *ShiftHandler) Delete(c *gin.Context) {
	tenantID := middleware.AccountID(c)
	if err := h.remove.Execute(c.Request.Context(), tenantID, tenantID, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *ShiftHandler) Book(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "clientId is required")
		return
	}

	tenantID := middleware.AccountID(c)
	s, err := h.book.Execute(c.Request.Context(), tenantID, tenantID, c.Param("id"), req.ClientID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *ShiftHandler) Unbook(c *gin.Context) {
	tenantID := middleware.AccountID(c)
	s, err := h.unbook.Execute(c.Request.Context(), tenantID, tenantID, c.Param("id"), c.Param("clientId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}
