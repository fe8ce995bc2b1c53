package shop

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/turnolibre/internal/auth"
	domain "github.com/BruksfildServices01/turnolibre/internal/domain/shop"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/infra/memstore"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

func provision(t *testing.T, repo *memstore.Store, plan string) *ProvisionResult {
	t.Helper()

	res, err := NewProvision(repo, nil).Execute(context.Background(), ProvisionInput{
		Profile: domain.Profile{Name: "Barbería Don Pepe", Timezone: "UTC"},
		Plan:    plan,
	})
	require.NoError(t, err)
	return res
}

func ptr[T any](v T) *T { return &v }

// ======================================================
// PROVISION / SUPER ADMIN
// ======================================================

func TestProvisionGeneratesCredentials(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()

	res := provision(t, repo, "PRO")

	assert.Equal(t, "barberia-don-pepe", res.Shop.Slug)
	assert.Equal(t, "admin-barberia-don-pepe", res.AdminUser)
	assert.Len(t, res.AdminPassword, 8)
	assert.Empty(t, res.Shop.AdminPasswordHash, "result is redacted")
	assert.True(t, res.Shop.Features.MultiBranch)

	stored, err := repo.GetShop(ctx, "barberia-don-pepe")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.AdminPasswordHash, res.AdminPassword))

	_, err = NewProvision(repo, nil).Execute(ctx, ProvisionInput{
		Profile: domain.Profile{Name: "Barberia don pepe"},
	})
	assert.True(t, httperr.IsBusiness(err, "slug_already_exists"))
}

func TestProvisionValidation(t *testing.T) {
	uc := NewProvision(memstore.New(), nil)

	_, err := uc.Execute(context.Background(), ProvisionInput{Profile: domain.Profile{Name: "X"}, Plan: "GOLD"})
	assert.True(t, httperr.IsBusiness(err, "invalid_plan"))

	_, err = uc.Execute(context.Background(), ProvisionInput{Profile: domain.Profile{Name: "X", Timezone: "Mars/Base"}})
	assert.True(t, httperr.IsBusiness(err, "invalid_timezone"))

	_, err = uc.Execute(context.Background(), ProvisionInput{Profile: domain.Profile{Name: " "}})
	assert.True(t, httperr.IsBusiness(err, "shop_name_required"))
}

func TestUpdateShopPlanKeepsToken(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	res := provision(t, repo, "PRO")

	_, err := NewUpdateSettings(repo, nil).Execute(ctx, UpdateSettingsInput{
		Slug:             res.Shop.Slug,
		MercadoPagoToken: ptr("APP_USR-123"),
	})
	require.NoError(t, err)

	got, err := NewUpdateShop(repo, nil).Execute(ctx, UpdateShopInput{
		Slug:   res.Shop.Slug,
		Plan:   ptr("FREE"),
		Active: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.False(t, got.Features.MercadoPago)

	stored, err := repo.GetShop(ctx, res.Shop.Slug)
	require.NoError(t, err)
	assert.Equal(t, "APP_USR-123", stored.Features.MercadoPagoToken)

	shops, err := NewListShops(repo).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Empty(t, shops[0].AdminPasswordHash)
}

func TestSettingsValidation(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	res := provision(t, repo, "BASIC")
	uc := NewUpdateSettings(repo, nil)

	bad := domain.DefaultOpeningHours()
	bad[0].OpenTime = "21:00"
	_, err := uc.Execute(ctx, UpdateSettingsInput{Slug: res.Shop.Slug, OpeningHours: bad})
	assert.True(t, httperr.IsBusiness(err, "invalid_schedule"))

	_, err = uc.Execute(ctx, UpdateSettingsInput{
		Slug:            res.Shop.Slug,
		BranchSchedules: map[string][]models.DaySchedule{"Sur": domain.DefaultOpeningHours()},
	})
	assert.True(t, httperr.IsBusiness(err, "branch_not_found"))

	_, err = uc.Execute(ctx, UpdateSettingsInput{Slug: res.Shop.Slug, MercadoPagoToken: ptr("x")})
	assert.True(t, httperr.IsBusiness(err, "feature_disabled"))

	_, err = uc.Execute(ctx, UpdateSettingsInput{Slug: res.Shop.Slug, Profile: ProfilePatch{ThemeColor: ptr("dorado")}})
	assert.True(t, httperr.IsBusiness(err, "invalid_theme_color"))

	_, err = uc.Execute(ctx, UpdateSettingsInput{Slug: res.Shop.Slug, Profile: ProfilePatch{CustomDomain: ptr("localhost")}})
	assert.True(t, httperr.IsBusiness(err, "invalid_custom_domain"))

	got, err := uc.Execute(ctx, UpdateSettingsInput{
		Slug:    res.Shop.Slug,
		Profile: ProfilePatch{City: ptr(" Córdoba "), Name: ptr("Don Pepe")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Córdoba", got.City)
	assert.Equal(t, "Don Pepe", got.Name)
	assert.Equal(t, res.Shop.Slug, got.Slug, "slug never changes")
}

type downStore struct{ *memstore.Store }

func (downStore) Ping(context.Context) error { return errors.New("timeout") }

func TestCloudStatus(t *testing.T) {
	status, err := NewCloudStatus(memstore.New()).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "online", status)

	status, err = NewCloudStatus(downStore{memstore.New()}).Execute(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "offline", status)
}

// ======================================================
// CATALOG
// ======================================================

func TestBranchRenameCascades(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	slug := provision(t, repo, "PRO").Shop.Slug
	cat := NewCatalog(repo, nil)

	norte, err := cat.SaveBranch(ctx, slug, "admin", models.Branch{Name: "Norte"})
	require.NoError(t, err)
	require.NotEmpty(t, norte.ID)

	_, err = cat.SaveBranch(ctx, slug, "admin", models.Branch{Name: models.MainBranch})
	assert.True(t, httperr.IsBusiness(err, "branch_name_reserved"))

	barber, err := cat.SaveBarber(ctx, slug, "admin", BarberInput{Name: "Lucas", Active: true, Branch: "Norte"})
	require.NoError(t, err)

	item, err := cat.SaveStockItem(ctx, slug, "admin", StockInventory, "", "Gel", true)
	require.NoError(t, err)
	_, err = cat.SetStock(ctx, slug, "admin", StockInventory, item.ID, "Norte", models.StockInfo{Stock: 3, MinStock: 1})
	require.NoError(t, err)

	_, err = cat.SaveBranch(ctx, slug, "admin", models.Branch{ID: norte.ID, Name: "Nueva Córdoba"})
	require.NoError(t, err)

	shop, err := repo.GetShop(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, "Nueva Córdoba", shop.Barbers[0].Branch)
	assert.Equal(t, barber.ID, shop.Barbers[0].ID)
	assert.Equal(t, models.StockInfo{Stock: 3, MinStock: 1}, shop.Inventory[0].BranchStock["Nueva Córdoba"])
	assert.NotContains(t, shop.Inventory[0].BranchStock, "Norte")

	require.NoError(t, cat.RemoveBranch(ctx, slug, "admin", norte.ID))
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(cat.RemoveBranch(ctx, slug, "admin", norte.ID)))
}

func TestBranchesRequireMultiBranch(t *testing.T) {
	repo := memstore.New()
	slug := provision(t, repo, "BASIC").Shop.Slug

	_, err := NewCatalog(repo, nil).SaveBranch(context.Background(), slug, "admin", models.Branch{Name: "Norte"})
	assert.True(t, httperr.IsBusiness(err, "feature_disabled"))
}

func TestSaveService(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	slug := provision(t, repo, "FREE").Shop.Slug
	cat := NewCatalog(repo, nil)

	_, err := cat.SaveService(ctx, slug, "admin", models.Service{Name: "Corte", Price: -1, Duration: 30})
	assert.True(t, httperr.IsBusiness(err, "invalid_price"))
	_, err = cat.SaveService(ctx, slug, "admin", models.Service{Name: "Corte", Price: 0, Duration: 0})
	assert.True(t, httperr.IsBusiness(err, "invalid_duration"))

	svc, err := cat.SaveService(ctx, slug, "admin", models.Service{Name: "Corte", Price: 0, Duration: 30})
	require.NoError(t, err)

	svc.Price = 1500
	_, err = cat.SaveService(ctx, slug, "admin", *svc)
	require.NoError(t, err)

	shop, err := repo.GetShop(ctx, slug)
	require.NoError(t, err)
	require.Len(t, shop.Services, 1)
	assert.Equal(t, 1500.0, shop.Services[0].Price)

	require.NoError(t, cat.DeleteService(ctx, slug, "admin", svc.ID))
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(cat.DeleteService(ctx, slug, "admin", svc.ID)))
}

func TestSaveBarberKeepsPasswordWhenBlank(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	res := provision(t, repo, "FREE")
	cat := NewCatalog(repo, nil)

	b, err := cat.SaveBarber(ctx, res.Shop.Slug, "admin", BarberInput{Name: "Juan", Active: true, Username: "juan", Password: "clave"})
	require.NoError(t, err)
	assert.Empty(t, b.PasswordHash)

	_, err = cat.SaveBarber(ctx, res.Shop.Slug, "admin", BarberInput{ID: b.ID, Name: "Juan Cruz", Active: true, Username: "juan"})
	require.NoError(t, err)

	shop, err := repo.GetShop(ctx, res.Shop.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Juan Cruz", shop.Barbers[0].Name)
	assert.True(t, auth.CheckPassword(shop.Barbers[0].PasswordHash, "clave"))

	_, err = cat.SaveBarber(ctx, res.Shop.Slug, "admin", BarberInput{Name: "Otro", Username: "juan"})
	assert.True(t, httperr.IsBusiness(err, "username_taken"))

	_, err = cat.SaveBarber(ctx, res.Shop.Slug, "admin", BarberInput{Name: "Otro", Username: res.AdminUser})
	assert.True(t, httperr.IsBusiness(err, "username_taken"))

	_, err = cat.SaveBarber(ctx, res.Shop.Slug, "admin", BarberInput{Name: "Otro", Branch: "Sur"})
	assert.True(t, httperr.IsBusiness(err, "branch_not_found"))
}

func TestStockAndPlansAreFeatureGated(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	slug := provision(t, repo, "FREE").Shop.Slug
	cat := NewCatalog(repo, nil)

	_, err := cat.SaveStockItem(ctx, slug, "admin", StockReceptions, "", "Café", true)
	assert.True(t, httperr.IsBusiness(err, "feature_disabled"))

	_, err = cat.SavePlan(ctx, slug, "admin", models.MembershipPlan{Name: "4 cortes", Sessions: 4, ValidityDays: 30, Active: true})
	assert.True(t, httperr.IsBusiness(err, "feature_disabled"))
}

func TestMembershipPlans(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	slug := provision(t, repo, "BASIC").Shop.Slug
	cat := NewCatalog(repo, nil)

	_, err := cat.SavePlan(ctx, slug, "admin", models.MembershipPlan{Name: "X", Sessions: 0, ValidityDays: 30})
	assert.True(t, httperr.IsBusiness(err, "invalid_sessions"))

	p, err := cat.SavePlan(ctx, slug, "admin", models.MembershipPlan{Name: "4 cortes", Sessions: 4, ValidityDays: 30, Price: 8000, Active: true})
	require.NoError(t, err)

	require.NoError(t, cat.SetPlanActive(ctx, slug, "admin", p.ID, false))

	shop, err := repo.GetShop(ctx, slug)
	require.NoError(t, err)
	assert.False(t, shop.MembershipPlans[0].Active)
}

// ======================================================
// DASHBOARD
// ======================================================

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	slug := provision(t, repo, "PRO").Shop.Slug

	_, err := NewCatalog(repo, nil).SaveBranch(ctx, slug, "admin", models.Branch{Name: "Norte"})
	require.NoError(t, err)

	shop, err := repo.GetShop(ctx, slug)
	require.NoError(t, err)
	shop.Services = []models.Service{{ID: "s1", Name: "Corte", Price: 1000, Duration: 30}}
	shop.Barbers = []models.Barber{{ID: "b1", Name: "Juan"}, {ID: "b2", Name: "Lucas", Branch: "Norte"}}
	shop.Inventory = []models.StockItem{{ID: "gel", Name: "Gel", BranchStock: map[string]models.StockInfo{
		models.MainBranch: {Stock: 1, MinStock: 5},
		"Norte":           {Stock: 9, MinStock: 5},
	}}}
	require.NoError(t, repo.SaveShop(ctx, shop))

	// Wednesday 13 May 2026, 12:00 UTC. The week runs Sunday 10 to Saturday 16.
	now := time.Date(2026, 5, 13, 12, 0, 0, 0, time.UTC)

	save := func(id, barber, date, hm, phone string, status models.BookingStatus, paid bool) {
		pay := models.PaymentPending
		if paid {
			pay = models.PaymentPaid
		}
		require.NoError(t, repo.SaveBooking(ctx, &models.Booking{
			ID: id, ShopSlug: slug, ServiceID: "s1", BarberID: barber,
			Date: date, Time: hm, ClientPhone: phone, Status: status, PaymentStatus: pay,
		}))
	}
	save("a", "b1", "2026-05-11", "10:00", "351 111 1111", models.BookingCompleted, true)
	save("b", "b1", "2026-05-13", "11:00", "+5493511111111", models.BookingCompleted, true)
	save("c", "b2", "2026-05-13", "15:00", "351 222 2222", models.BookingConfirmed, false)
	save("d", "b1", "2026-05-14", "10:00", "351 333 3333", models.BookingCancelled, false)
	save("e", "b1", "2026-04-30", "10:00", "351 444 4444", models.BookingCompleted, true)

	uc := NewGetDashboard(repo)
	uc.now = func() time.Time { return now }

	week, err := uc.Execute(ctx, slug, RangeWeek, "")
	require.NoError(t, err)
	assert.Equal(t, 3, week.TotalBookings)
	assert.Equal(t, 2000.0, week.Revenue)
	assert.Equal(t, 2, week.UniqueClients)
	assert.Equal(t, 1, week.ByWeekday[1].Count)
	assert.Equal(t, 2, week.ByWeekday[3].Count)
	require.Len(t, week.Upcoming, 1)
	assert.Equal(t, "c", week.Upcoming[0].ID)
	require.Len(t, week.LowStock, 1)
	assert.Equal(t, models.MainBranch, week.LowStock[0].Branch)

	all, err := uc.Execute(ctx, slug, RangeAll, "")
	require.NoError(t, err)
	assert.Equal(t, 4, all.TotalBookings)
	assert.Equal(t, 3000.0, all.Revenue)

	norte, err := uc.Execute(ctx, slug, RangeToday, "Norte")
	require.NoError(t, err)
	assert.Equal(t, 1, norte.TotalBookings)
	assert.Zero(t, norte.Revenue)
	assert.Empty(t, norte.LowStock)

	_, err = uc.Execute(ctx, slug, "YEAR", "")
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))
}

// ======================================================
// LOGO
// ======================================================

type recordingUploader struct {
	key  string
	body []byte
}

func (r *recordingUploader) Upload(_ context.Context, key, _ string, body []byte) (string, error) {
	r.key, r.body = key, body
	return "https://cdn.example.com/" + key, nil
}

func TestUploadLogo(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New()
	slug := provision(t, repo, "FREE").Shop.Slug

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 800, 400))))

	up := &recordingUploader{}
	url, err := NewUploadLogo(repo, up, nil).Execute(ctx, slug, "admin", &img)
	require.NoError(t, err)

	assert.Regexp(t, `^shops/barberia-don-pepe/logo-[0-9a-f-]{36}\.webp$`, up.key)
	assert.NotEmpty(t, up.body)

	shop, err := repo.GetShop(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, url, shop.Logo)

	_, err = NewUploadLogo(repo, nil, nil).Execute(ctx, slug, "admin", &img)
	assert.True(t, httperr.IsBusiness(err, "assets_disabled"))
}
