package account

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/media"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/validators"
)

var ErrUploadsDisabled = errors.New("brand image uploads are not configured")

type GetBrand struct {
	repo domain.Repository
}

func NewGetBrand(repo domain.Repository) *GetBrand {
	return &GetBrand{repo: repo}
}

// Execute returns empty settings for a tenant that never set an image.
func (uc *GetBrand) Execute(ctx context.Context, tenantID string) (*models.BrandSettings, error) {
	return uc.repo.GetBrand(ctx, tenantID)
}

type SetBrandImage struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetBrandImage(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetBrandImage {
	return &SetBrandImage{
		repo:  repo,
		audit: audit,
	}
}

// Execute stores imageURL as the tenant's brand image. An empty URL clears
// it.
func (uc *SetBrandImage) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	imageURL string,
) (*models.BrandSettings, error) {

	if imageURL != "" && !validators.IsImageURL(imageURL) {
		return nil, httperr.ErrValidation("imageUrl")
	}

	brand := models.BrandSettings{ImageURL: imageURL}
	if err := uc.repo.SetBrand(ctx, tenantID, brand); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "brand_image_changed",
		Entity:   "settings",
		EntityID: "brand",
	})

	return uc.repo.GetBrand(ctx, tenantID)
}

type UploadBrandImage struct {
	uploader media.Uploader
	set      *SetBrandImage
}

// NewUploadBrandImage accepts a nil uploader; Execute then reports uploads
// as unavailable.
func NewUploadBrandImage(
	repo domain.Repository,
	audit *audit.Dispatcher,
	uploader media.Uploader,
) *UploadBrandImage {
	return &UploadBrandImage{
		uploader: uploader,
		set:      NewSetBrandImage(repo, audit),
	}
}

func (uc *UploadBrandImage) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	image io.Reader,
) (*models.BrandSettings, error) {

	if uc.uploader == nil {
		return nil, httperr.Unavailable("uploadBrandImage", ErrUploadsDisabled)
	}

	body, err := media.Process(image)
	if err != nil {
		return nil, httperr.ErrValidation("image")
	}

	key := fmt.Sprintf("brands/%s/%s.webp", tenantID, uuid.NewString())
	url, err := uc.uploader.Upload(ctx, key, body, media.ContentType)
	if err != nil {
		return nil, httperr.Unavailable("uploadBrandImage", err)
	}

	return uc.set.Execute(ctx, tenantID, actorID, url)
}
