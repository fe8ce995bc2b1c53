package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/metrics"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

var _ store.Store = (*StoreGormRepository)(nil)

// StoreGormRepository keeps every tenant as one jsonb document in shops
// and every booking as one jsonb document in bookings.
type StoreGormRepository struct {
	db      *gorm.DB
	metrics *metrics.Collector
}

func NewStoreGormRepository(db *gorm.DB, m *metrics.Collector) *StoreGormRepository {
	return &StoreGormRepository{db: db, metrics: m}
}

func (r *StoreGormRepository) cloud(op string, err error) error {
	r.metrics.StoreError(op)
	return httperr.ErrCloud(err)
}

// --------------------------------------------------
// Tenants
// --------------------------------------------------

func (r *StoreGormRepository) GetShop(
	ctx context.Context,
	slug string,
) (*models.Shop, error) {

	var rec models.ShopRecord
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&rec).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("shop_not_found")
		}
		return nil, r.cloud("get_shop", err)
	}

	return decodeShop(rec)
}

func (r *StoreGormRepository) ListShops(ctx context.Context) ([]models.Shop, error) {
	var recs []models.ShopRecord
	if err := r.db.WithContext(ctx).
		Order("slug ASC").
		Find(&recs).Error; err != nil {
		return nil, r.cloud("list_shops", err)
	}

	shops := make([]models.Shop, 0, len(recs))
	for _, rec := range recs {
		shop, err := decodeShop(rec)
		if err != nil {
			return nil, err
		}
		shops = append(shops, *shop)
	}
	return shops, nil
}

func (r *StoreGormRepository) SaveShop(
	ctx context.Context,
	shop *models.Shop,
) error {

	next := *shop
	next.Revision = shop.Revision + 1
	next.UpdatedAt = time.Now()

	data, err := json.Marshal(next)
	if err != nil {
		return r.cloud("save_shop", err)
	}

	if shop.Revision == 0 {
		rec := models.ShopRecord{
			Slug:     next.Slug,
			Name:     next.Name,
			Data:     string(data),
			Revision: next.Revision,
		}

		res := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&rec)
		if res.Error != nil {
			if httperr.IsExclusionConflict(res.Error) {
				return httperr.ErrConflict("slug_already_exists")
			}
			return r.cloud("save_shop", res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.ErrConflict("slug_already_exists")
		}

		shop.Revision = next.Revision
		shop.UpdatedAt = next.UpdatedAt
		return nil
	}

	// compare-and-swap on revision
	res := r.db.WithContext(ctx).
		Model(&models.ShopRecord{}).
		Where("slug = ? AND revision = ?", shop.Slug, shop.Revision).
		Updates(map[string]any{
			"name":       next.Name,
			"data":       string(data),
			"revision":   next.Revision,
			"updated_at": next.UpdatedAt,
		})
	if res.Error != nil {
		return r.cloud("save_shop", res.Error)
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.ShopRecord{}).
			Where("slug = ?", shop.Slug).
			Count(&count).Error; err != nil {
			return r.cloud("save_shop", err)
		}
		if count == 0 {
			return httperr.ErrNotFound("shop_not_found")
		}
		return httperr.ErrConflict("stale_revision")
	}

	shop.Revision = next.Revision
	shop.UpdatedAt = next.UpdatedAt
	return nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *StoreGormRepository) GetBooking(
	ctx context.Context,
	slug string,
	id string,
) (*models.Booking, error) {

	var rec models.BookingRecord
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_slug = ?", id, slug).
		First(&rec).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found")
		}
		return nil, r.cloud("get_booking", err)
	}

	return decodeBooking(rec)
}

func (r *StoreGormRepository) ListBookings(
	ctx context.Context,
	slug string,
) ([]models.Booking, error) {
	return r.listBookings(ctx, r.db.Where("shop_slug = ?", slug))
}

func (r *StoreGormRepository) ListBookingsByDate(
	ctx context.Context,
	slug string,
	date string,
) ([]models.Booking, error) {
	return r.listBookings(ctx, r.db.Where("shop_slug = ? AND date = ?", slug, date))
}

func (r *StoreGormRepository) listBookings(ctx context.Context, q *gorm.DB) ([]models.Booking, error) {
	var recs []models.BookingRecord
	if err := q.WithContext(ctx).
		Order("date ASC").
		Order("data->>'time' ASC").
		Order("id ASC").
		Find(&recs).Error; err != nil {
		return nil, r.cloud("list_bookings", err)
	}

	out := make([]models.Booking, 0, len(recs))
	for _, rec := range recs {
		b, err := decodeBooking(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *StoreGormRepository) SaveBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if b.ID == "" || b.ShopSlug == "" {
		return httperr.ErrValidation("booking_identity_required")
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	data, err := json.Marshal(b)
	if err != nil {
		return r.cloud("save_booking", err)
	}

	rec := models.BookingRecord{
		ID:       b.ID,
		ShopSlug: b.ShopSlug,
		Date:     b.Date,
		Data:     string(data),
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"date", "data", "updated_at"}),
		}).
		Create(&rec).Error; err != nil {
		return r.cloud("save_booking", err)
	}
	return nil
}

// --------------------------------------------------
// Health
// --------------------------------------------------

func (r *StoreGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return r.cloud("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return r.cloud("ping", err)
	}
	return nil
}

// --------------------------------------------------
// Decoding
// --------------------------------------------------

func decodeShop(rec models.ShopRecord) (*models.Shop, error) {
	var shop models.Shop
	if err := json.Unmarshal([]byte(rec.Data), &shop); err != nil {
		return nil, httperr.ErrCloud(err)
	}
	shop.Slug = rec.Slug
	shop.Revision = rec.Revision
	return &shop, nil
}

func decodeBooking(rec models.BookingRecord) (*models.Booking, error) {
	var b models.Booking
	if err := json.Unmarshal([]byte(rec.Data), &b); err != nil {
		return nil, httperr.ErrCloud(err)
	}
	return &b, nil
}
