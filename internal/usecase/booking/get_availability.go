package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/turnolibre/internal/domain/booking"
	shopdomain "github.com/BruksfildServices01/turnolibre/internal/domain/shop"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	"github.com/BruksfildServices01/turnolibre/internal/timezone"
)

type GetAvailability struct {
	repo store.TenantRepository
	now  func() time.Time
}

func NewGetAvailability(repo store.TenantRepository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

// Execute lists the bookable slots of date. "Now" is taken in the shop's
// timezone so the cut-off for today matches the shop's wall clock.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	slug string,
	date string,
	branch string,
) (*domain.Availability, error) {

	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}

	shop, err := uc.repo.GetShop(ctx, slug)
	if err != nil {
		return nil, err
	}

	if branch == "" {
		branch = models.MainBranch
	}
	if !shopdomain.HasBranch(shop, branch) {
		return nil, httperr.ErrValidation("branch_not_found")
	}

	now := uc.now().In(timezone.Location(shop.Timezone))
	week := shopdomain.ScheduleFor(shop, branch)

	return &domain.Availability{
		Date:   date,
		Branch: branch,
		Open:   domain.IsOpen(shopdomain.DaySchedule(week, day)),
		Slots:  domain.AvailableSlots(domain.DefaultSlotGrid, date, now),
	}, nil
}
