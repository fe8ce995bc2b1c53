package shop

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	domain "github.com/BruksfildServices01/turnolibre/internal/domain/shop"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	"github.com/BruksfildServices01/turnolibre/internal/timezone"
	"github.com/BruksfildServices01/turnolibre/internal/validators"
)

// ProfilePatch updates only the fields that are set.
type ProfilePatch struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Province     *string `json:"province"`
	City         *string `json:"city"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	ThemeColor   *string `json:"themeColor"`
	Timezone     *string `json:"timezone"`
	CustomDomain *string `json:"customDomain"`
}

func (p ProfilePatch) apply(s *models.Shop) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return httperr.ErrValidation("shop_name_required")
		}
		s.Name = name
	}
	if p.Timezone != nil {
		if *p.Timezone != "" && !timezone.IsValid(*p.Timezone) {
			return httperr.ErrValidation("invalid_timezone")
		}
		s.Timezone = *p.Timezone
	}
	if p.ThemeColor != nil && *p.ThemeColor != "" && !validators.IsHexColor(strings.TrimSpace(*p.ThemeColor)) {
		return httperr.ErrValidation("invalid_theme_color")
	}
	if p.CustomDomain != nil && strings.TrimSpace(*p.CustomDomain) != "" && !validators.IsHostname(strings.TrimSpace(*p.CustomDomain)) {
		return httperr.ErrValidation("invalid_custom_domain")
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&s.Description, p.Description)
	set(&s.Province, p.Province)
	set(&s.City, p.City)
	set(&s.Address, p.Address)
	set(&s.Phone, p.Phone)
	set(&s.ThemeColor, p.ThemeColor)
	set(&s.CustomDomain, p.CustomDomain)
	return nil
}

// ======================================================
// SUPER ADMIN
// ======================================================

type UpdateShopInput struct {
	Slug    string
	Plan    *string
	Active  *bool
	Profile ProfilePatch

	ActorID string
}

type UpdateShop struct {
	repo  store.TenantRepository
	audit *audit.Dispatcher
}

func NewUpdateShop(repo store.TenantRepository, audit *audit.Dispatcher) *UpdateShop {
	return &UpdateShop{repo: repo, audit: audit}
}

// Execute changes tier, activation and profile. A plan change recomputes
// features and keeps the payment token.
func (uc *UpdateShop) Execute(ctx context.Context, in UpdateShopInput) (*models.Shop, error) {
	shop, err := store.Mutate(ctx, uc.repo, in.Slug, func(s *models.Shop) error {
		if in.Plan != nil {
			plan, err := domain.ParsePlan(*in.Plan)
			if err != nil {
				return err
			}
			domain.ApplyPlan(s, plan)
		}
		if in.Active != nil {
			s.Active = *in.Active
		}
		return in.Profile.apply(s)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopSlug: in.Slug,
		ActorID:  in.ActorID,
		Action:   "shop_updated",
		Entity:   "shop",
		EntityID: shop.ID,
		Metadata: map[string]any{"plan": shop.Plan, "active": shop.Active},
	})

	out := shop.Redacted()
	return &out, nil
}

type ListShops struct {
	repo store.TenantRepository
}

func NewListShops(repo store.TenantRepository) *ListShops {
	return &ListShops{repo: repo}
}

func (uc *ListShops) Execute(ctx context.Context) ([]models.Shop, error) {
	shops, err := uc.repo.ListShops(ctx)
	if err != nil {
		return nil, err
	}
	for i := range shops {
		shops[i] = shops[i].Redacted()
	}
	return shops, nil
}

// ======================================================
// ADMIN SETTINGS
// ======================================================

type UpdateSettingsInput struct {
	Slug              string
	Profile           ProfilePatch
	OpeningHours      []models.DaySchedule
	BranchSchedules   map[string][]models.DaySchedule
	NotificationPrefs *models.NotificationPreferences
	MercadoPagoToken  *string

	ActorID string
}

type UpdateSettings struct {
	repo  store.TenantRepository
	audit *audit.Dispatcher
}

func NewUpdateSettings(repo store.TenantRepository, audit *audit.Dispatcher) *UpdateSettings {
	return &UpdateSettings{repo: repo, audit: audit}
}

func (uc *UpdateSettings) Execute(ctx context.Context, in UpdateSettingsInput) (*models.Shop, error) {
	shop, err := store.Mutate(ctx, uc.repo, in.Slug, func(s *models.Shop) error {
		if err := in.Profile.apply(s); err != nil {
			return err
		}

		if in.OpeningHours != nil {
			if !domain.ValidWeek(in.OpeningHours) {
				return httperr.ErrValidation("invalid_schedule")
			}
			s.OpeningHours = in.OpeningHours
		}

		if in.BranchSchedules != nil {
			for branch, week := range in.BranchSchedules {
				if !domain.HasBranch(s, branch) {
					return httperr.ErrValidation("branch_not_found")
				}
				if !domain.ValidWeek(week) {
					return httperr.ErrValidation("invalid_schedule")
				}
			}
			s.BranchSchedules = in.BranchSchedules
		}

		if in.NotificationPrefs != nil {
			s.NotificationPrefs = *in.NotificationPrefs
		}

		if in.MercadoPagoToken != nil {
			if err := domain.RequireFeature(s, domain.FeatureMercadoPago); err != nil {
				return err
			}
			s.Features.MercadoPagoToken = strings.TrimSpace(*in.MercadoPagoToken)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopSlug: in.Slug,
		ActorID:  in.ActorID,
		Action:   "settings_updated",
		Entity:   "shop",
		EntityID: shop.ID,
	})

	out := shop.Redacted()
	return &out, nil
}

// ======================================================
// CLOUD STATUS
// ======================================================

type CloudStatus struct {
	repo interface {
		Ping(ctx context.Context) error
	}
}

func NewCloudStatus(repo store.Store) *CloudStatus {
	return &CloudStatus{repo: repo}
}

// Execute reports "online" or "offline". The ping error is returned for
// logging; the status is always usable.
func (uc *CloudStatus) Execute(ctx context.Context) (string, error) {
	if err := uc.repo.Ping(ctx); err != nil {
		return "offline", err
	}
	return "online", nil
}
