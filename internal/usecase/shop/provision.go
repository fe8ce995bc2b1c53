package shop

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	"github.com/BruksfildServices01/turnolibre/internal/auth"
	domain "github.com/BruksfildServices01/turnolibre/internal/domain/shop"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	"github.com/BruksfildServices01/turnolibre/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ProvisionInput struct {
	Profile domain.Profile
	Plan    string

	// Empty credentials are generated.
	AdminUser     string
	AdminPassword string

	ActorID string
}

// ProvisionResult carries the generated password. It is shown once and
// only its hash is stored.
type ProvisionResult struct {
	Shop          models.Shop `json:"shop"`
	AdminUser     string      `json:"adminUser"`
	AdminPassword string      `json:"adminPassword,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type Provision struct {
	repo  store.TenantRepository
	audit *audit.Dispatcher
}

func NewProvision(repo store.TenantRepository, audit *audit.Dispatcher) *Provision {
	return &Provision{repo: repo, audit: audit}
}

func (uc *Provision) Execute(
	ctx context.Context,
	in ProvisionInput,
) (*ProvisionResult, error) {

	plan, err := domain.ParsePlan(in.Plan)
	if err != nil {
		return nil, err
	}

	if in.Profile.Timezone != "" && !timezone.IsValid(in.Profile.Timezone) {
		return nil, httperr.ErrValidation("invalid_timezone")
	}

	shop, err := domain.New(uuid.NewString(), in.Profile, plan)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Credentials
	// --------------------------------------------------
	user := strings.TrimSpace(in.AdminUser)
	if user == "" {
		user = "admin-" + shop.Slug
	}

	password := in.AdminPassword
	generated := ""
	if password == "" {
		password = strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		generated = password
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	shop.AdminUser = user
	shop.AdminPasswordHash = hash

	// Revision 0 makes this a create: a taken slug fails here.
	if err := uc.repo.SaveShop(ctx, shop); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopSlug: shop.Slug,
		ActorID:  in.ActorID,
		Action:   "shop_provisioned",
		Entity:   "shop",
		EntityID: shop.ID,
		Metadata: map[string]string{"plan": string(plan)},
	})

	return &ProvisionResult{
		Shop:          shop.Redacted(),
		AdminUser:     user,
		AdminPassword: generated,
	}, nil
}
