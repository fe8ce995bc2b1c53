package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/turnolibre/internal/domain/booking"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	"github.com/BruksfildServices01/turnolibre/internal/timezone"
)

// ======================================================
// AGENDA
// ======================================================

type ListAgenda struct {
	repo store.Store
	now  func() time.Time
}

func NewListAgenda(repo store.Store) *ListAgenda {
	return &ListAgenda{repo: repo, now: time.Now}
}

// Execute returns the non-cancelled bookings of date ordered by time. An
// empty date means today in the shop's timezone. barberID narrows the
// agenda to one staff member.
func (uc *ListAgenda) Execute(
	ctx context.Context,
	slug string,
	date string,
	barberID string,
) ([]models.Booking, error) {

	shop, err := uc.repo.GetShop(ctx, slug)
	if err != nil {
		return nil, err
	}

	if date == "" {
		date = timezone.Today(uc.now(), shop.Timezone)
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}

	all, err := uc.repo.ListBookingsByDate(ctx, slug, date)
	if err != nil {
		return nil, err
	}

	out := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if b.Status == models.BookingCancelled {
			continue
		}
		if barberID != "" && b.BarberID != barberID {
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out, nil
}

// ======================================================
// CLIENT HISTORY
// ======================================================

type ListClientBookings struct {
	repo store.BookingRepository
}

func NewListClientBookings(repo store.BookingRepository) *ListClientBookings {
	return &ListClientBookings{repo: repo}
}

// Execute lists every booking of the client, most recent first.
func (uc *ListClientBookings) Execute(
	ctx context.Context,
	slug string,
	clientID string,
) ([]models.Booking, error) {

	all, err := uc.repo.ListBookings(ctx, slug)
	if err != nil {
		return nil, err
	}

	out := make([]models.Booking, 0)
	for _, b := range all {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	return out, nil
}

// ======================================================
// ATTENDANTS
// ======================================================

type ListAttendants struct {
	repo store.Store
}

func NewListAttendants(repo store.Store) *ListAttendants {
	return &ListAttendants{repo: repo}
}

// Execute lists the staff who may be recorded as having served the
// booking: staff of its branch.
func (uc *ListAttendants) Execute(
	ctx context.Context,
	slug string,
	bookingID string,
) ([]models.Barber, error) {

	b, err := uc.repo.GetBooking(ctx, slug, bookingID)
	if err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetShop(ctx, slug)
	if err != nil {
		return nil, err
	}

	out := domain.EligibleAttendants(shop, b)
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out, nil
}
