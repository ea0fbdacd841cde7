package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	ucModality "github.com/BruksfildServices01/gym-scheduler/internal/usecase/modality"
)

type ModalityHandler struct {
	list   *ucModality.ListModalities
	create *ucModality.CreateModality
	update *ucModality.UpdateModality
	remove *ucModality.DeleteModality
}

func NewModalityHandler(
	list *ucModality.ListModalities,
	create *ucModality.CreateModality,
	update *ucModality.UpdateModality,
	remove *ucModality.DeleteModality,
) *ModalityHandler {
	return &ModalityHandler{
		list:   list,
		create: create,
		update: update,
		remove: remove,
	}
}

func (h *ModalityHandler) List(c *gin.Context) {
	ms, err := h.list.Execute(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, ms)
}

func (h *ModalityHandler) Create(c *gin.Context) {
	var req domain.ModalityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid modality")
		return
	}

	tenantID := middleware.AccountID(c)
	m, err := h.create.Execute(c.Request.Context(), tenantID, tenantID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, m)
}

func (h *ModalityHandler) Update(c *gin.Context) {
	var req domain.ModalityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid modality")
		return
	}

	tenantID := middleware.AccountID(c)
	m, err := h.update.Execute(c.Request.Context(), tenantID, tenantID, c.Param("id"), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *ModalityHandler) Delete(c *gin.Context) {
	tenantID := middleware.AccountID(c)
	if err := h.remove.Execute(c.Request.Context(), tenantID, tenantID, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
