package booking

import (
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

func FindBarber(shop *models.Shop, id string) (*models.Barber, bool) {
	for i := range shop.Barbers {
		if shop.Barbers[i].ID == id {
			return &shop.Barbers[i], true
		}
	}
	return nil, false
}

func FindService(shop *models.Shop, id string) (*models.Service, bool) {
	for i := range shop.Services {
		if shop.Services[i].ID == id {
			return &shop.Services[i], true
		}
	}
	return nil, false
}

// BranchOf is the branch a booking belongs to: the branch of the staff
// member it is assigned to.
func BranchOf(shop *models.Shop, b *models.Booking) string {
	if barber, ok := FindBarber(shop, b.BarberID); ok {
		return barber.BranchName()
	}
	return models.MainBranch
}

// EligibleAttendants lists the staff who may be recorded as having served
// the booking: everyone in the same branch as the originally assigned
// barber, that barber included.
func EligibleAttendants(shop *models.Shop, b *models.Booking) []models.Barber {
	branch := BranchOf(shop, b)

	out := make([]models.Barber, 0, len(shop.Barbers))
	for _, barber := range shop.Barbers {
		if barber.BranchName() == branch {
			out = append(out, barber)
		}
	}
	return out
}

// ResolveAttendant validates that attendantID may complete the booking
// and returns the staff member.
func ResolveAttendant(shop *models.Shop, b *models.Booking, attendantID string) (*models.Barber, error) {
	attendant, ok := FindBarber(shop, attendantID)
	if !ok {
		return nil, httperr.ErrValidation("attendant_not_found")
	}

	if attendant.BranchName() != BranchOf(shop, b) {
		return nil, httperr.ErrValidation("attendant_branch_mismatch")
	}
	return attendant, nil
}
