package client

import (
	"context"
	"time"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	domain "github.com/BruksfildServices01/turnolibre/internal/domain/client"
	"github.com/BruksfildServices01/turnolibre/internal/domain/membership"
	shopdomain "github.com/BruksfildServices01/turnolibre/internal/domain/shop"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	"github.com/BruksfildServices01/turnolibre/internal/timezone"
)

// Memberships groups the membership operations on a client. All of them
// require the memberships feature.
type Memberships struct {
	repo  store.TenantRepository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewMemberships(repo store.TenantRepository, audit *audit.Dispatcher) *Memberships {
	return &Memberships{repo: repo, audit: audit, now: time.Now}
}

// mutateClient runs fn on the client inside a tenant mutation. today is
// the current instant in the shop's timezone.
func (uc *Memberships) mutateClient(
	ctx context.Context,
	slug, clientID string,
	fn func(shop *models.Shop, c *models.Client, today time.Time) error,
) (*models.Client, error) {

	var out models.Client

	_, err := store.Mutate(ctx, uc.repo, slug, func(shop *models.Shop) error {
		if err := shopdomain.RequireFeature(shop, shopdomain.FeatureMemberships); err != nil {
			return err
		}

		c, ok := domain.FindByID(shop.Clients, clientID)
		if !ok {
			return httperr.ErrNotFound("client_not_found")
		}

		today := uc.now().In(timezone.Location(shop.Timezone))
		if err := fn(shop, c, today); err != nil {
			return err
		}

		out = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *Memberships) dispatch(slug, actorID, action, clientID string, metadata any) {
	uc.audit.Dispatch(audit.Event{
		ShopSlug: slug,
		ActorID:  actorID,
		Action:   action,
		Entity:   "client",
		EntityID: clientID,
		Metadata: metadata,
	})
}

// Assign issues planID to the client, archiving the current membership.
func (uc *Memberships) Assign(
	ctx context.Context,
	slug, clientID, planID, actorID string,
) (*models.Client, error) {

	c, err := uc.mutateClient(ctx, slug, clientID, func(shop *models.Shop, c *models.Client, today time.Time) error {
		plan, ok := membership.FindPlan(shop.MembershipPlans, planID)
		if !ok {
			return httperr.ErrValidation("plan_not_found")
		}
		_, err := membership.Issue(c, plan, today)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(slug, actorID, "membership_issued", clientID, map[string]string{"planId": planID})
	return c, nil
}

// Cancel forfeits the remaining sessions of the active membership.
func (uc *Memberships) Cancel(
	ctx context.Context,
	slug, clientID, actorID string,
) (*models.Client, error) {

	c, err := uc.mutateClient(ctx, slug, clientID, func(_ *models.Shop, c *models.Client, today time.Time) error {
		return membership.Cancel(c, today)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(slug, actorID, "membership_cancelled", clientID, nil)
	return c, nil
}

// ConsumeSession records one used session.
func (uc *Memberships) ConsumeSession(
	ctx context.Context,
	slug, clientID, actorID string,
) (*models.Client, error) {

	c, err := uc.mutateClient(ctx, slug, clientID, func(_ *models.Shop, c *models.Client, today time.Time) error {
		_, err := membership.ConsumeSession(c, today)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(slug, actorID, "membership_session_consumed", clientID, map[string]int{
		"remaining": membership.RemainingSessions(*c.ActiveMembership),
	})
	return c, nil
}
