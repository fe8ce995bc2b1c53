package store

import (
	"context"

	"github.com/BruksfildServices01/turnolibre/internal/models"
)

type TenantRepository interface {
	// GetShop returns a not_found business error when no shop has slug.
	GetShop(ctx context.Context, slug string) (*models.Shop, error)

	ListShops(ctx context.Context) ([]models.Shop, error)

	// SaveShop writes the whole document. Revision 0 creates it; any other
	// value must equal the stored revision or the write fails with
	// stale_revision. On success shop.Revision is bumped in place.
	SaveShop(ctx context.Context, shop *models.Shop) error
}

type BookingRepository interface {
	GetBooking(ctx context.Context, slug, id string) (*models.Booking, error)

	ListBookings(ctx context.Context, slug string) ([]models.Booking, error)

	ListBookingsByDate(ctx context.Context, slug, date string) ([]models.Booking, error)

	// SaveBooking inserts or replaces by id.
	SaveBooking(ctx context.Context, b *models.Booking) error
}

// Store is the full persistence port.
type Store interface {
	TenantRepository
	BookingRepository

	Ping(ctx context.Context) error
}
