package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/media"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	ucAccount "github.com/BruksfildServices01/gym-scheduler/internal/usecase/account"
)

type BrandHandler struct {
	get    *ucAccount.GetBrand
	set    *ucAccount.SetBrandImage
	upload *ucAccount.UploadBrandImage
}

func NewBrandHandler(
	get *ucAccount.GetBrand,
	set *ucAccount.SetBrandImage,
	upload *ucAccount.UploadBrandImage,
) *BrandHandler {
	return &BrandHandler{get: get, set: set, upload: upload}
}

type BrandRequest struct {
	ImageURL string `json:"imageUrl"`
}

func (h *BrandHandler) Get(c *gin.Context) {
	brand, err := h.get.Execute(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, brand)
}

func (h *BrandHandler) Set(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid brand settings")
		return
	}

	tenantID := middleware.AccountID(c)
	brand, err := h.set.Execute(c.Request.Context(), tenantID, tenantID, req.ImageURL)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, brand)
}

// Upload takes a multipart "image" field.
func (h *BrandHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadBytes+1<<20)

	header, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "image file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "image file is unreadable")
		return
	}
	defer file.Close()

	tenantID := middleware.AccountID(c)
	brand, err := h.upload.Execute(c.Request.Context(), tenantID, tenantID, file)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, brand)
}
