package shop

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/turnolibre/internal/domain/booking"
	"github.com/BruksfildServices01/turnolibre/internal/domain/client"
	"github.com/BruksfildServices01/turnolibre/internal/domain/inventory"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	"github.com/BruksfildServices01/turnolibre/internal/timezone"
)

type Range string

const (
	RangeToday Range = "TODAY"
	RangeWeek  Range = "WEEK"
	RangeMonth Range = "MONTH"
	RangeAll   Range = "ALL"
)

const upcomingLimit = 5

// weekdayLabels is Sunday-first, matching time.Weekday.
var weekdayLabels = [7]string{"Dom", "Lun", "Mar", "Mie", "Jue", "Vie", "Sab"}

type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type Dashboard struct {
	Range         Range             `json:"range"`
	Branch        string            `json:"branch,omitempty"`
	TotalBookings int               `json:"totalBookings"`
	Revenue       float64           `json:"revenue"`
	UniqueClients int               `json:"uniqueClients"`
	ByWeekday     []WeekdayCount    `json:"byWeekday"`
	LowStock      []inventory.Alert `json:"lowStock"`
	Upcoming      []models.Booking  `json:"upcoming"`
}

type GetDashboard struct {
	repo store.Store
	now  func() time.Time
}

func NewGetDashboard(repo store.Store) *GetDashboard {
	return &GetDashboard{repo: repo, now: time.Now}
}

// Execute aggregates non-cancelled bookings in the range. Revenue sums
// the current price of the service of every paid booking. An empty
// branch covers the whole shop.
func (uc *GetDashboard) Execute(
	ctx context.Context,
	slug string,
	rng Range,
	branch string,
) (*Dashboard, error) {

	if rng == "" {
		rng = RangeMonth
	}
	switch rng {
	case RangeToday, RangeWeek, RangeMonth, RangeAll:
	default:
		return nil, httperr.ErrValidation("invalid_range")
	}

	shop, err := uc.repo.GetShop(ctx, slug)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.repo.ListBookings(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(timezone.Location(shop.Timezone))
	today := now.Format(domain.DateLayout)
	from, to := bounds(rng, now)

	out := &Dashboard{
		Range:     rng,
		Branch:    branch,
		ByWeekday: make([]WeekdayCount, 7),
		LowStock:  []inventory.Alert{},
		Upcoming:  []models.Booking{},
	}
	for i, label := range weekdayLabels {
		out.ByWeekday[i].Day = label
	}

	phones := map[string]struct{}{}

	for _, b := range bookings {
		if b.Status == models.BookingCancelled {
			continue
		}
		if branch != "" && domain.BranchOf(shop, &b) != branch {
			continue
		}

		if len(out.Upcoming) < upcomingLimit {
			if b.Date > today || (b.Date == today && b.Time >= now.Format(domain.TimeLayout)) {
				out.Upcoming = append(out.Upcoming, b)
			}
		}

		if rng != RangeAll && (b.Date < from || b.Date > to) {
			continue
		}

		out.TotalBookings++
		phones[client.NormalizePhone(b.ClientPhone)] = struct{}{}

		if b.PaymentStatus == models.PaymentPaid {
			if svc, ok := domain.FindService(shop, b.ServiceID); ok {
				out.Revenue += svc.Price
			}
		}

		if d, err := time.Parse(domain.DateLayout, b.Date); err == nil {
			out.ByWeekday[d.Weekday()].Count++
		}
	}
	out.UniqueClients = len(phones)

	if shop.Features.Inventory {
		out.LowStock = inventory.LowStock(shop.Inventory, branch)
	}
	return out, nil
}

// bounds returns the inclusive date range of rng around now. Weeks start
// on Sunday.
func bounds(rng Range, now time.Time) (string, string) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch rng {
	case RangeToday:
		return day.Format(domain.DateLayout), day.Format(domain.DateLayout)
	case RangeWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start.Format(domain.DateLayout), start.AddDate(0, 0, 6).Format(domain.DateLayout)
	case RangeMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start.Format(domain.DateLayout), start.AddDate(0, 1, -1).Format(domain.DateLayout)
	}
	return "", ""
}
