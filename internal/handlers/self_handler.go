package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	ucSelf "github.com/BruksfildServices01/gym-scheduler/internal/usecase/selfservice"
)

// SelfHandler serves the signed-in member. The client acted on is always
// the one linked to the caller's account.
type SelfHandler struct {
	overview       *ucSelf.GetOverview
	watch          *ucSelf.WatchOverview
	book           *ucSelf.BookShift
	cancel         *ucSelf.CancelShift
	changeModality *ucSelf.ChangeModality
}

func NewSelfHandler(
	overview *ucSelf.GetOverview,
	watch *ucSelf.WatchOverview,
	book *ucSelf.BookShift,
	cancel *ucSelf.CancelShift,
	changeModality *ucSelf.ChangeModality,
) *SelfHandler {
	return &SelfHandler{
		overview:       overview,
		watch:          watch,
		book:           book,
		cancel:         cancel,
		changeModality: changeModality,
	}
}

func (h *SelfHandler) Overview(c *gin.Context) {
	ov, err := h.overview.Execute(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ov)
}

func (h *SelfHandler) Stream(c *gin.Context) {
	ch, err := h.watch.Execute(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	streamSSE(c, ch)
}

func (h *SelfHandler) Book(c *gin.Context) {
	if err := h.book.Execute(c.Request.Context(), middleware.AccountID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *SelfHandler) Cancel(c *gin.Context) {
	if err := h.cancel.Execute(c.Request.Context(), middleware.AccountID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *SelfHandler) ChangeModality(c *gin.Context) {
	var req ModalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid modality")
		return
	}

	if err := h.changeModality.Execute(c.Request.Context(), middleware.AccountID(c), req.ModalityID); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
