package client

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	domain "github.com/BruksfildServices01/turnolibre/internal/domain/client"
	"github.com/BruksfildServices01/turnolibre/internal/domain/membership"
	shopdomain "github.com/BruksfildServices01/turnolibre/internal/domain/shop"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	"github.com/BruksfildServices01/turnolibre/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateClientInput struct {
	ShopSlug  string
	FirstName string
	LastName  string
	Phone     string
	Type      models.ClientType
	Notes     string

	// PlanID optionally issues a membership right away.
	PlanID string

	ActorID string
}

// ======================================================
// USE CASE
// ======================================================

type CreateClient struct {
	repo  store.TenantRepository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateClient(repo store.TenantRepository, audit *audit.Dispatcher) *CreateClient {
	return &CreateClient{repo: repo, audit: audit, now: time.Now}
}

func (uc *CreateClient) Execute(
	ctx context.Context,
	in CreateClientInput,
) (*models.Client, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	first, last, err := names(in.FirstName, in.LastName)
	if err != nil {
		return nil, err
	}

	phone, err := canonicalPhone(in.Phone)
	if err != nil {
		return nil, err
	}

	kind, err := parseType(in.Type)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Tenant
	// --------------------------------------------------
	var created models.Client

	_, err = store.Mutate(ctx, uc.repo, in.ShopSlug, func(shop *models.Shop) error {
		if err := domain.AssertPhoneAvailable(shop.Clients, phone, ""); err != nil {
			return err
		}

		c := models.Client{
			ID:        uuid.NewString(),
			ShopSlug:  shop.Slug,
			FirstName: first,
			LastName:  last,
			Phone:     phone,
			Type:      kind,
			Notes:     strings.TrimSpace(in.Notes),
		}

		if in.PlanID != "" {
			if err := shopdomain.RequireFeature(shop, shopdomain.FeatureMemberships); err != nil {
				return err
			}
			plan, ok := membership.FindPlan(shop.MembershipPlans, in.PlanID)
			if !ok {
				return httperr.ErrValidation("plan_not_found")
			}
			if _, err := membership.Issue(&c, plan, uc.now().In(timezone.Location(shop.Timezone))); err != nil {
				return err
			}
		}

		shop.Clients = append(shop.Clients, c)
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopSlug: in.ShopSlug,
		ActorID:  in.ActorID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: created.ID,
	})
	return &created, nil
}

// ======================================================
// HELPERS
// ======================================================

func names(first, last string) (string, string, error) {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)

	if first == "" {
		return "", "", httperr.ErrValidation("first_name_required")
	}
	if last == "" {
		return "", "", httperr.ErrValidation("last_name_required")
	}
	return first, last, nil
}

func canonicalPhone(raw string) (string, error) {
	if strings.IndexFunc(raw, func(r rune) bool { return r >= '0' && r <= '9' }) < 0 {
		return "", httperr.ErrValidation("phone_required")
	}
	return domain.NormalizePhone(raw), nil
}

func parseType(t models.ClientType) (models.ClientType, error) {
	switch t {
	case "":
		return models.ClientRegular, nil
	case models.ClientRegular, models.ClientExpress:
		return t, nil
	}
	return "", httperr.ErrValidation("invalid_client_type")
}
