package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	shopdomain "github.com/BruksfildServices01/turnolibre/internal/domain/shop"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/infra/memstore"
	"github.com/BruksfildServices01/turnolibre/internal/logging"
	"github.com/BruksfildServices01/turnolibre/internal/metrics"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// Monday 11 May 2026, 14:30 UTC.
var fixedNow = time.Date(2026, 5, 11, 14, 30, 0, 0, time.UTC)

func seedShop(t *testing.T, repo *memstore.Store) *models.Shop {
	t.Helper()

	shop := &models.Shop{
		ID:           "shop-1",
		Slug:         "demo",
		Name:         "Demo",
		Timezone:     "UTC",
		Active:       true,
		Plan:         models.PlanBasic,
		Features:     shopdomain.FeaturesForPlan(models.PlanBasic, models.Features{}),
		OpeningHours: shopdomain.DefaultOpeningHours(),
		Branches:     []models.Branch{{ID: "br-n", Name: "Norte"}},
		Services: []models.Service{
			{ID: "s1", Name: "Corte", Price: 1000, Duration: 30},
		},
		Barbers: []models.Barber{
			{ID: "b1", Name: "Juan", Active: true},
			{ID: "b2", Name: "Pedro", Active: true},
			{ID: "b3", Name: "Lucas", Active: true, Branch: "Norte"},
		},
		Clients: []models.Client{
			{ID: "c1", ShopSlug: "demo", FirstName: "Ana", LastName: "Paz", Phone: "+5493511234567", Type: models.ClientRegular},
		},
		Inventory: []models.StockItem{
			{ID: "gel", Name: "Gel", Active: true, BranchStock: map[string]models.StockInfo{
				models.MainBranch: {Stock: 10, MinStock: 5},
				"Norte":           {Stock: 4, MinStock: 2},
			}},
		},
		Receptions: []models.StockItem{
			{ID: "cafe", Name: "Café", Active: true, BranchStock: map[string]models.StockInfo{}},
		},
	}
	require.NoError(t, repo.SaveShop(context.Background(), shop))
	return shop
}

func newCreate(repo *memstore.Store, d *audit.Dispatcher) *CreateBooking {
	uc := NewCreateBooking(repo, d, metrics.New())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func newChangeStatus(repo store.Store, d *audit.Dispatcher) *ChangeStatus {
	uc := NewChangeStatus(repo, d, metrics.New(), logging.Discard())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func book(t *testing.T, uc *CreateBooking, barberID, date, hm, phone string) *models.Booking {
	t.Helper()

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		ShopSlug:    "demo",
		ServiceID:   "s1",
		BarberID:    barberID,
		Date:        date,
		Time:        hm,
		ClientName:  "Ana Paz",
		ClientPhone: phone,
	})
	require.NoError(t, err)
	return b
}

// ======================================================
// CREATE
// ======================================================

func TestCreateBookingResolvesKnownClient(t *testing.T) {
	repo := memstore.New()
	seedShop(t, repo)

	b := book(t, newCreate(repo, nil), "b1", "2026-05-12", "10:00", "351 123-4567")

	assert.Equal(t, "c1", b.ClientID)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)

	stored, err := repo.GetBooking(context.Background(), "demo", b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ClientID, stored.ClientID)
}

func TestCreateBookingUnknownPhoneIsGuest(t *testing.T) {
	repo := memstore.New()
	seedShop(t, repo)

	b := book(t, newCreate(repo, nil), "b1", "2026-05-12", "10:00", "011 5555-0000")
	assert.Contains(t, b.ClientID, "guest-")
}

func TestCreateBookingValidation(t *testing.T) {
	repo := memstore.New()
	seedShop(t, repo)
	uc := newCreate(repo, nil)

	valid := CreateBookingInput{
		ShopSlug: "demo", ServiceID: "s1", BarberID: "b1",
		Date: "2026-05-12", Time: "10:00",
		ClientName: "Ana", ClientPhone: "3511234567",
	}

	tests := []struct {
		name   string
		mutate func(in *CreateBookingInput)
		code   string
	}{
		{"empty name", func(in *CreateBookingInput) { in.ClientName = "  " }, "client_name_required"},
		{"empty phone", func(in *CreateBookingInput) { in.ClientPhone = "" }, "client_phone_required"},
		{"bad date", func(in *CreateBookingInput) { in.Date = "12/05/2026" }, "invalid_date_or_time"},
		{"bad time", func(in *CreateBookingInput) { in.Time = "25:00" }, "invalid_date_or_time"},
		{"unknown service", func(in *CreateBookingInput) { in.ServiceID = "nope" }, "service_not_found"},
		{"unknown barber", func(in *CreateBookingInput) { in.BarberID = "nope" }, "barber_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
			assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
		})
	}

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		ShopSlug: "ghost", ServiceID: "s1", BarberID: "b1",
		Date: "2026-05-12", Time: "10:00", ClientName: "Ana", ClientPhone: "1",
	})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestCreateBookingInactiveShop(t *testing.T) {
	repo := memstore.New()
	shop := seedShop(t, repo)
	shop.Active = false
	require.NoError(t, repo.SaveShop(context.Background(), shop))

	_, err := newCreate(repo, nil).Execute(context.Background(), CreateBookingInput{
		ShopSlug: "demo", ServiceID: "s1", BarberID: "b1",
		Date: "2026-05-12", Time: "10:00", ClientName: "Ana", ClientPhone: "1",
	})
	assert.True(t, httperr.IsBusiness(err, "shop_inactive"))
}

// Two bookings for the same barber and slot are both accepted.
func TestCreateBookingAllowsSameSlotTwice(t *testing.T) {
	repo := memstore.New()
	seedShop(t, repo)
	uc := newCreate(repo, nil)

	first := book(t, uc, "b1", "2026-05-12", "10:00", "111")
	second := book(t, uc, "b1", "2026-05-12", "10:00", "222")
	assert.NotEqual(t, first.ID, second.ID)

	day, err := repo.ListBookingsByDate(context.Background(), "demo", "2026-05-12")
	require.NoError(t, err)
	assert.Len(t, day, 2)
}

func TestCreateBookingIsAudited(t *testing.T) {
	repo := memstore.New()
	seedShop(t, repo)
	mem := audit.NewMemoryLog(10)
	d := audit.NewDispatcher(logging.Discard(), mem)

	b := book(t, newCreate(repo, d), "b1", "2026-05-12", "10:00", "111")
	d.Close()

	logs, _, err := mem.List(context.Background(), audit.Query{ShopSlug: "demo", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "booking_created", logs[0].Action)
	assert.Equal(t, b.ID, logs[0].EntityID)
}

// ======================================================
// STATUS
// ======================================================

func TestCompleteBookingEndToEnd(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	seedShop(t, repo)
	mem := audit.NewMemoryLog(10)
	d := audit.NewDispatcher(logging.Discard(), mem)

	b := book(t, newCreate(repo, nil), "b1", "2026-05-11", "15:00", "3511234567")

	done, err := newChangeStatus(repo, d).Execute(ctx, ChangeStatusInput{
		ShopSlug:  "demo",
		BookingID: b.ID,
		Status:    models.BookingCompleted,
		ActorID:   "admin-shop-1",
		Completion: &Completion{
			AttendantID:    "b2",
			InventoryUsage: map[string]int{"gel": 3, "ghost": 2},
			ReceptionUsage: map[string]int{"cafe": 1},
		},
	})
	require.NoError(t, err)
	d.Close()

	assert.Equal(t, models.BookingCompleted, done.Status)
	assert.Equal(t, models.PaymentPaid, done.PaymentStatus)
	assert.Equal(t, "b2", done.BarberID)

	stored, err := repo.GetBooking(ctx, "demo", b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, stored.Status)

	shop, err := repo.GetShop(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, 7, shop.Inventory[0].BranchStock[models.MainBranch].Stock)
	assert.Equal(t, 4, shop.Inventory[0].BranchStock["Norte"].Stock, "other branches untouched")
	assert.Equal(t, models.StockInfo{Stock: 0, MinStock: 5}, shop.Receptions[0].BranchStock[models.MainBranch])
	assert.Equal(t, "2026-05-11", shop.Clients[0].LastVisit)

	logs, _, err := mem.List(ctx, audit.Query{ShopSlug: "demo", Action: "booking_completed", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestCompleteRejectsAttendantFromOtherBranch(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	seedShop(t, repo)

	b := book(t, newCreate(repo, nil), "b1", "2026-05-11", "15:00", "111")

	_, err := newChangeStatus(repo, nil).Execute(ctx, ChangeStatusInput{
		ShopSlug:   "demo",
		BookingID:  b.ID,
		Status:     models.BookingCompleted,
		Completion: &Completion{AttendantID: "b3"},
	})
	assert.True(t, httperr.IsBusiness(err, "attendant_branch_mismatch"))

	stored, err := repo.GetBooking(ctx, "demo", b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
}

func TestCompleteRequiresAttendant(t *testing.T) {
	repo := memstore.New()
	seedShop(t, repo)
	b := book(t, newCreate(repo, nil), "b1", "2026-05-11", "15:00", "111")

	_, err := newChangeStatus(repo, nil).Execute(context.Background(), ChangeStatusInput{
		ShopSlug: "demo", BookingID: b.ID, Status: models.BookingCompleted,
	})
	assert.True(t, httperr.IsBusiness(err, "attendant_required"))
}

func TestCancelThenCompleteIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	seedShop(t, repo)
	b := book(t, newCreate(repo, nil), "b1", "2026-05-11", "15:00", "111")
	uc := newChangeStatus(repo, nil)

	cancelled, err := uc.Execute(ctx, ChangeStatusInput{ShopSlug: "demo", BookingID: b.ID, Status: models.BookingCancelled})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, cancelled.PaymentStatus)

	_, err = uc.Execute(ctx, ChangeStatusInput{
		ShopSlug: "demo", BookingID: b.ID, Status: models.BookingCompleted,
		Completion: &Completion{AttendantID: "b1"},
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = uc.Execute(ctx, ChangeStatusInput{ShopSlug: "demo", BookingID: b.ID, Status: models.BookingConfirmed})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestChangeStatusRestrictedToOwnBookings(t *testing.T) {
	repo := memstore.New()
	seedShop(t, repo)
	b := book(t, newCreate(repo, nil), "b1", "2026-05-11", "15:00", "111")

	_, err := newChangeStatus(repo, nil).Execute(context.Background(), ChangeStatusInput{
		ShopSlug: "demo", BookingID: b.ID, Status: models.BookingAbsent, OnlyBarberID: "b2",
	})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}

// shopWritesDown accepts booking writes but fails every tenant write.
type shopWritesDown struct {
	*memstore.Store
}

func (shopWritesDown) SaveShop(context.Context, *models.Shop) error {
	return httperr.ErrCloud(errors.New("connection reset"))
}

func TestCompleteWhenTenantWriteFails(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	seedShop(t, repo)
	b := book(t, newCreate(repo, nil), "b1", "2026-05-11", "15:00", "111")

	_, err := newChangeStatus(shopWritesDown{repo}, nil).Execute(ctx, ChangeStatusInput{
		ShopSlug: "demo", BookingID: b.ID, Status: models.BookingCompleted,
		Completion: &Completion{AttendantID: "b1", InventoryUsage: map[string]int{"gel": 2}},
	})
	assert.Equal(t, httperr.KindCloudUnavailable, httperr.KindOf(err))

	stored, err := repo.GetBooking(ctx, "demo", b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, stored.Status, "booking write is not rolled back")

	shop, err := repo.GetShop(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, 10, shop.Inventory[0].BranchStock[models.MainBranch].Stock)
}

// ======================================================
// READS
// ======================================================

func TestListAgenda(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	seedShop(t, repo)
	create := newCreate(repo, nil)

	late := book(t, create, "b1", "2026-05-11", "18:00", "111")
	early := book(t, create, "b2", "2026-05-11", "09:00", "222")
	gone := book(t, create, "b1", "2026-05-11", "12:00", "333")
	book(t, create, "b1", "2026-05-12", "10:00", "444")

	_, err := newChangeStatus(repo, nil).Execute(ctx, ChangeStatusInput{ShopSlug: "demo", BookingID: gone.ID, Status: models.BookingCancelled})
	require.NoError(t, err)

	agenda := NewListAgenda(repo)
	agenda.now = func() time.Time { return fixedNow }

	all, err := agenda.Execute(ctx, "demo", "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, early.ID, all[0].ID)
	assert.Equal(t, late.ID, all[1].ID)

	mine, err := agenda.Execute(ctx, "demo", "2026-05-11", "b1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, late.ID, mine[0].ID)

	_, err = agenda.Execute(ctx, "demo", "11-05-2026", "")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestListClientBookingsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	seedShop(t, repo)
	create := newCreate(repo, nil)

	older := book(t, create, "b1", "2026-05-01", "10:00", "3511234567")
	newer := book(t, create, "b1", "2026-05-20", "10:00", "3511234567")
	book(t, create, "b1", "2026-05-10", "10:00", "999")

	got, err := NewListClientBookings(repo).Execute(ctx, "demo", "c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
}

func TestListAttendantsSameBranch(t *testing.T) {
	repo := memstore.New()
	seedShop(t, repo)
	b := book(t, newCreate(repo, nil), "b3", "2026-05-11", "15:00", "111")

	got, err := NewListAttendants(repo).Execute(context.Background(), "demo", b.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b3", got[0].ID)
}

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	seedShop(t, repo)

	uc := NewGetAvailability(repo)
	uc.now = func() time.Time { return fixedNow }

	today, err := uc.Execute(ctx, "demo", "2026-05-11", "")
	require.NoError(t, err)
	assert.True(t, today.Open)
	assert.Equal(t, models.MainBranch, today.Branch)
	assert.Equal(t, []string{"15:00", "16:00", "17:00", "18:00", "19:00"}, today.Slots)

	sunday, err := uc.Execute(ctx, "demo", "2026-05-17", "Norte")
	require.NoError(t, err)
	assert.False(t, sunday.Open)
	assert.Len(t, sunday.Slots, 10)

	_, err = uc.Execute(ctx, "demo", "2026-05-17", "Sur")
	assert.True(t, httperr.IsBusiness(err, "branch_not_found"))

	_, err = uc.Execute(ctx, "demo", "mañana", "")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
