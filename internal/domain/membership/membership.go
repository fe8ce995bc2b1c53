package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

const dateLayout = "2006-01-02"

// CancelledSuffix marks the expiry date of a membership that was cancelled
// before running out.
const CancelledSuffix = " (Cancelada)"

// Issue grants plan to client starting today. A membership still active
// is archived as is, with its remaining sessions forfeited.
func Issue(client *models.Client, plan models.MembershipPlan, today time.Time) (*models.ClientMembership, error) {
	if client.Type != models.ClientRegular {
		return nil, httperr.ErrValidation("express_client_cannot_hold_membership")
	}
	if !plan.Active {
		return nil, httperr.ErrValidation("plan_inactive")
	}
	if plan.Sessions <= 0 || plan.ValidityDays <= 0 {
		return nil, httperr.ErrValidation("invalid_plan")
	}

	if client.ActiveMembership != nil {
		client.PastMemberships = append(client.PastMemberships, *client.ActiveMembership)
	}

	m := &models.ClientMembership{
		ID:            uuid.NewString(),
		PlanID:        plan.ID,
		PlanName:      plan.Name,
		SessionsTotal: plan.Sessions,
		SessionsUsed:  0,
		StartDate:     today.Format(dateLayout),
		ExpiryDate:    today.AddDate(0, 0, plan.ValidityDays).Format(dateLayout),
	}
	client.ActiveMembership = m
	return m, nil
}

// Cancel moves the active membership to history with its expiry replaced
// by today's date plus the cancellation marker.
func Cancel(client *models.Client, today time.Time) error {
	if client.ActiveMembership == nil {
		return httperr.ErrNoActiveMembership
	}

	archived := *client.ActiveMembership
	archived.ExpiryDate = today.Format(dateLayout) + CancelledSuffix
	archived.Cancelled = true

	client.PastMemberships = append(client.PastMemberships, archived)
	client.ActiveMembership = nil
	return nil
}

// ConvertToRegular promotes an express client. Memberships are untouched.
func ConvertToRegular(client *models.Client) {
	client.Type = models.ClientRegular
}

// ConsumeSession uses one session of the active membership. Nothing in the
// booking flow calls it implicitly; staff trigger it explicitly.
func ConsumeSession(client *models.Client, today time.Time) (*models.ClientMembership, error) {
	m := client.ActiveMembership
	if m == nil {
		return nil, httperr.ErrNoActiveMembership
	}
	if IsExpired(*m, today) {
		return nil, httperr.ErrConflict("membership_expired")
	}
	if RemainingSessions(*m) <= 0 {
		return nil, httperr.ErrConflict("membership_exhausted")
	}

	m.SessionsUsed++
	return m, nil
}

func RemainingSessions(m models.ClientMembership) int {
	left := m.SessionsTotal - m.SessionsUsed
	if left < 0 {
		return 0
	}
	return left
}

// IsExpired compares calendar dates. The expiry day itself is still valid.
func IsExpired(m models.ClientMembership, today time.Time) bool {
	expiry, err := time.Parse(dateLayout, m.ExpiryDate)
	if err != nil {
		return true
	}
	return today.Format(dateLayout) > expiry.Format(dateLayout)
}

// FindPlan returns the plan with id from plans.
func FindPlan(plans []models.MembershipPlan, id string) (models.MembershipPlan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return models.MembershipPlan{}, false
}
