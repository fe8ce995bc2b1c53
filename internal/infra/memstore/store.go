package memstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

var _ store.Store = (*Store)(nil)

// Store keeps documents as encoded JSON so callers never share memory
// with what is stored, the same as going through the database.
type Store struct {
	mu       sync.RWMutex
	shops    map[string][]byte
	bookings map[string]map[string][]byte
	now      func() time.Time
}

func New() *Store {
	return &Store{
		shops:    map[string][]byte{},
		bookings: map[string]map[string][]byte{},
		now:      time.Now,
	}
}

// -----------------------------------------------------
// Tenants
// -----------------------------------------------------

func (s *Store) GetShop(_ context.Context, slug string) (*models.Shop, error) {
	s.mu.RLock()
	raw, ok := s.shops[slug]
	s.mu.RUnlock()

	if !ok {
		return nil, httperr.ErrNotFound("shop_not_found")
	}

	var shop models.Shop
	if err := json.Unmarshal(raw, &shop); err != nil {
		return nil, httperr.ErrCloud(err)
	}
	return &shop, nil
}

func (s *Store) ListShops(_ context.Context) ([]models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shops := make([]models.Shop, 0, len(s.shops))
	for _, raw := range s.shops {
		var shop models.Shop
		if err := json.Unmarshal(raw, &shop); err != nil {
			return nil, httperr.ErrCloud(err)
		}
		shops = append(shops, shop)
	}

	sort.Slice(shops, func(i, j int) bool { return shops[i].Slug < shops[j].Slug })
	return shops, nil
}

func (s *Store) SaveShop(_ context.Context, shop *models.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.shops[shop.Slug]
	switch {
	case shop.Revision == 0 && exists:
		return httperr.ErrConflict("slug_already_exists")
	case shop.Revision != 0 && !exists:
		return httperr.ErrNotFound("shop_not_found")
	case exists:
		var current struct {
			Revision int64 `json:"revision"`
		}
		if err := json.Unmarshal(stored, &current); err != nil {
			return httperr.ErrCloud(err)
		}
		if current.Revision != shop.Revision {
			return httperr.ErrConflict("stale_revision")
		}
	}

	next := *shop
	next.Revision++
	next.UpdatedAt = s.now()

	raw, err := json.Marshal(next)
	if err != nil {
		return httperr.ErrCloud(err)
	}

	s.shops[shop.Slug] = raw
	shop.Revision = next.Revision
	shop.UpdatedAt = next.UpdatedAt
	return nil
}

// -----------------------------------------------------
// Bookings
// -----------------------------------------------------

func (s *Store) GetBooking(_ context.Context, slug, id string) (*models.Booking, error) {
	s.mu.RLock()
	raw, ok := s.bookings[slug][id]
	s.mu.RUnlock()

	if !ok {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	var b models.Booking
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, httperr.ErrCloud(err)
	}
	return &b, nil
}

func (s *Store) ListBookings(ctx context.Context, slug string) ([]models.Booking, error) {
	return s.list(slug, func(models.Booking) bool { return true })
}

func (s *Store) ListBookingsByDate(ctx context.Context, slug, date string) ([]models.Booking, error) {
	return s.list(slug, func(b models.Booking) bool { return b.Date == date })
}

func (s *Store) list(slug string, keep func(models.Booking) bool) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, raw := range s.bookings[slug] {
		var b models.Booking
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, httperr.ErrCloud(err)
		}
		if keep(b) {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) SaveBooking(_ context.Context, b *models.Booking) error {
	if b.ID == "" || b.ShopSlug == "" {
		return httperr.ErrValidation("booking_identity_required")
	}

	now := s.now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	raw, err := json.Marshal(b)
	if err != nil {
		return httperr.ErrCloud(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bookings[b.ShopSlug] == nil {
		s.bookings[b.ShopSlug] = map[string][]byte{}
	}
	s.bookings[b.ShopSlug][b.ID] = raw
	return nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}
