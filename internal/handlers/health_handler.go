package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Check reads one well-known document to prove the store answers.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	_, err := h.store.Get(ctx, "registry/meta")
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		httperr.Respond(c, httperr.Unavailable("health", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
