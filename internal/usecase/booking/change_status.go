package booking

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	domain "github.com/BruksfildServices01/turnolibre/internal/domain/booking"
	"github.com/BruksfildServices01/turnolibre/internal/domain/client"
	"github.com/BruksfildServices01/turnolibre/internal/domain/inventory"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/metrics"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	"github.com/BruksfildServices01/turnolibre/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// Completion carries what happened during the visit. Usage maps item id
// to units consumed.
type Completion struct {
	AttendantID    string
	InventoryUsage map[string]int
	ReceptionUsage map[string]int
}

type ChangeStatusInput struct {
	ShopSlug  string
	BookingID string
	Status    models.BookingStatus

	// Completion is required when Status is COMPLETED.
	Completion *Completion

	ActorID string
	// OnlyBarberID restricts the change to bookings of that barber.
	OnlyBarberID string
}

// ======================================================
// USE CASE
// ======================================================

type ChangeStatus struct {
	repo    store.Store
	audit   *audit.Dispatcher
	metrics *metrics.Collector
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewChangeStatus(
	repo store.Store,
	audit *audit.Dispatcher,
	m *metrics.Collector,
	log logrus.FieldLogger,
) *ChangeStatus {
	return &ChangeStatus{
		repo:    repo,
		audit:   audit,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, in.ShopSlug, in.BookingID)
	if err != nil {
		return nil, err
	}

	if in.OnlyBarberID != "" && b.BarberID != in.OnlyBarberID {
		return nil, httperr.ErrForbidden("booking_not_assigned_to_you")
	}

	now := uc.now()

	switch in.Status {
	case models.BookingCompleted:
		return uc.complete(ctx, b, in, now)
	case models.BookingAbsent:
		err = domain.MarkAbsent(b, now)
	case models.BookingCancelled:
		err = domain.Cancel(b, now)
	default:
		err = domain.CanTransition(b.Status, in.Status)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SaveBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.metrics.BookingTransition(string(b.Status))
	uc.audit.Dispatch(audit.Event{
		ShopSlug: b.ShopSlug,
		ActorID:  in.ActorID,
		Action:   "booking_" + strings.ToLower(string(b.Status)),
		Entity:   "booking",
		EntityID: b.ID,
	})
	return b, nil
}

// complete settles the booking and then records consumption on the
// tenant. The two writes are independent: if the second fails the
// booking stays completed and the error is returned.
func (uc *ChangeStatus) complete(
	ctx context.Context,
	b *models.Booking,
	in ChangeStatusInput,
	now time.Time,
) (*models.Booking, error) {

	if in.Completion == nil || in.Completion.AttendantID == "" {
		return nil, httperr.ErrValidation("attendant_required")
	}

	shop, err := uc.repo.GetShop(ctx, in.ShopSlug)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1. Attendant must belong to the booking's branch
	// --------------------------------------------------
	attendant, err := domain.ResolveAttendant(shop, b, in.Completion.AttendantID)
	if err != nil {
		return nil, err
	}
	branch := attendant.BranchName()

	if err := domain.Complete(b, attendant.ID, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Booking
	// --------------------------------------------------
	if err := uc.repo.SaveBooking(ctx, b); err != nil {
		return nil, err
	}
	uc.metrics.BookingTransition(string(b.Status))

	// --------------------------------------------------
	// 3. Stock and client, on a fresh copy of the tenant
	// --------------------------------------------------
	invUsage := inventory.SanitizeUsage(in.Completion.InventoryUsage)
	recUsage := inventory.SanitizeUsage(in.Completion.ReceptionUsage)
	today := timezone.Today(now, shop.Timezone)

	var invUnits, recUnits int
	_, err = store.Mutate(ctx, uc.repo, in.ShopSlug, func(s *models.Shop) error {
		if s.Features.Inventory {
			invUnits = inventory.Consumed(s.Inventory, invUsage)
			s.Inventory = inventory.ApplyConsumption(s.Inventory, branch, invUsage)
		}
		if s.Features.Receptions {
			recUnits = inventory.Consumed(s.Receptions, recUsage)
			s.Receptions = inventory.ApplyConsumption(s.Receptions, branch, recUsage)
		}
		if c, ok := client.FindByID(s.Clients, b.ClientID); ok {
			c.LastVisit = today
		}
		return nil
	})
	if err != nil {
		uc.log.WithError(err).
			WithField("shop", b.ShopSlug).
			WithField("booking", b.ID).
			Error("booking completed but tenant update failed")
		return nil, err
	}

	uc.metrics.StockConsumed("inventory", invUnits)
	uc.metrics.StockConsumed("receptions", recUnits)
	uc.audit.Dispatch(audit.Event{
		ShopSlug: b.ShopSlug,
		ActorID:  in.ActorID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{
			"attendantId":    attendant.ID,
			"branch":         branch,
			"inventoryUsage": invUsage,
			"receptionUsage": recUsage,
		},
	})
	return b, nil
}
