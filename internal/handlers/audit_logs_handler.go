package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logger *audit.Logger
}

func NewAuditLogsHandler(logger *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	tenantID := middleware.AccountID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	filter := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := parseDateInGym(fromStr); err == nil {
			filter.From = from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := parseDateInGym(toStr); err == nil {
			filter.To = to.Add(24 * time.Hour)
		}
	}

	logs, total, err := h.logger.Search(c.Request.Context(), tenantID, filter, page, limit)
	if err != nil {
		httperr.Respond(c, httperr.Unavailable("searchAuditLogs", err))
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
