package store

import (
	"context"

	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// Mutate re-reads the tenant, applies fn and writes the result back with
// the revision it was read at. If fn fails nothing is written. A
// concurrent writer makes the save fail with stale_revision; callers are
// expected to surface that rather than retry blindly.
func Mutate(
	ctx context.Context,
	repo TenantRepository,
	slug string,
	fn func(shop *models.Shop) error,
) (*models.Shop, error) {

	shop, err := repo.GetShop(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := fn(shop); err != nil {
		return nil, err
	}

	if err := repo.SaveShop(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}
