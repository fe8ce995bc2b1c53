package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	domain "github.com/BruksfildServices01/turnolibre/internal/domain/booking"
	"github.com/BruksfildServices01/turnolibre/internal/domain/client"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/metrics"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ShopSlug  string
	ServiceID string
	BarberID  string

	Date string
	Time string

	ClientName  string
	ClientPhone string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    store.Store
	audit   *audit.Dispatcher
	metrics *metrics.Collector
	now     func() time.Time
}

func NewCreateBooking(
	repo store.Store,
	audit *audit.Dispatcher,
	m *metrics.Collector,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		audit:   audit,
		metrics: m,
		now:     time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute records a confirmed, unpaid booking. It does not check whether
// the barber already has a booking at that time.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return nil, httperr.ErrValidation("client_name_required")
	}

	phone := strings.TrimSpace(in.ClientPhone)
	if phone == "" {
		return nil, httperr.ErrValidation("client_phone_required")
	}

	if !domain.ValidDateTime(in.Date, in.Time) {
		return nil, httperr.ErrValidation("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 2. Shop, service, barber
	// --------------------------------------------------
	shop, err := uc.repo.GetShop(ctx, in.ShopSlug)
	if err != nil {
		return nil, err
	}
	if !shop.Active {
		return nil, httperr.ErrForbidden("shop_inactive")
	}

	if _, ok := domain.FindService(shop, in.ServiceID); !ok {
		return nil, httperr.ErrValidation("service_not_found")
	}

	if _, ok := domain.FindBarber(shop, in.BarberID); !ok {
		return nil, httperr.ErrValidation("barber_not_found")
	}

	// --------------------------------------------------
	// 3. Client identity
	// --------------------------------------------------
	clientID := "guest-" + uuid.NewString()
	if c, ok := client.FindByPhone(shop.Clients, phone); ok {
		clientID = c.ID
	}

	// --------------------------------------------------
	// 4. Persist
	// --------------------------------------------------
	now := uc.now()
	b := &models.Booking{
		ID:            uuid.NewString(),
		ShopSlug:      shop.Slug,
		ServiceID:     in.ServiceID,
		BarberID:      in.BarberID,
		ClientID:      clientID,
		Date:          in.Date,
		Time:          in.Time,
		ClientName:    name,
		ClientPhone:   phone,
		Status:        domain.InitialStatus(),
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.repo.SaveBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated(shop.Slug)
	uc.audit.Dispatch(audit.Event{
		ShopSlug: shop.Slug,
		ActorID:  clientID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]string{"date": b.Date, "time": b.Time, "barberId": b.BarberID},
	})

	return b, nil
}
