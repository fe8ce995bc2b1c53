package shop

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/infra/assets"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

const logoMaxSide = 512

type UploadLogo struct {
	repo     store.TenantRepository
	uploader assets.Uploader
	audit    *audit.Dispatcher
}

// NewUploadLogo accepts a nil uploader; Execute then fails with
// assets_disabled.
func NewUploadLogo(repo store.TenantRepository, uploader assets.Uploader, audit *audit.Dispatcher) *UploadLogo {
	return &UploadLogo{repo: repo, uploader: uploader, audit: audit}
}

// Execute converts the image to webp, stores it and points the shop logo
// at the stored object.
func (uc *UploadLogo) Execute(
	ctx context.Context,
	slug, actorID string,
	image io.Reader,
) (string, error) {

	if uc.uploader == nil {
		return "", httperr.ErrBusiness("assets_disabled")
	}

	// The shop must exist before anything is uploaded.
	if _, err := uc.repo.GetShop(ctx, slug); err != nil {
		return "", err
	}

	body, err := assets.ToWebP(image, logoMaxSide)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("shops/%s/logo-%s.webp", slug, uuid.NewString())
	url, err := uc.uploader.Upload(ctx, key, "image/webp", body)
	if err != nil {
		return "", err
	}

	_, err = store.Mutate(ctx, uc.repo, slug, func(s *models.Shop) error {
		s.Logo = url
		return nil
	})
	if err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		ShopSlug: slug,
		ActorID:  actorID,
		Action:   "logo_uploaded",
		Entity:   "shop",
		Metadata: map[string]string{"key": key},
	})
	return url, nil
}
