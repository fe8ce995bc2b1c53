package shop

import (
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

func ParsePlan(raw string) (models.Plan, error) {
	switch p := models.Plan(raw); p {
	case models.PlanFree, models.PlanBasic, models.PlanPro:
		return p, nil
	case "":
		return models.PlanFree, nil
	}
	return "", httperr.ErrValidation("invalid_plan")
}

// FeaturesForPlan derives the feature set of a tier. The payment token
// is configuration, not entitlement, so it is carried over from current.
func FeaturesForPlan(plan models.Plan, current models.Features) models.Features {
	f := models.Features{MercadoPagoToken: current.MercadoPagoToken}

	switch plan {
	case models.PlanPro:
		f.MercadoPago = true
		f.MultiBranch = true
		fallthrough
	case models.PlanBasic:
		f.WhatsApp = true
		f.Memberships = true
		f.Inventory = true
		f.Receptions = true
	}
	return f
}

type Feature string

const (
	FeatureMercadoPago Feature = "mercadoPago"
	FeatureWhatsApp    Feature = "whatsapp"
	FeatureMultiBranch Feature = "multiBranch"
	FeatureMemberships Feature = "memberships"
	FeatureInventory   Feature = "inventory"
	FeatureReceptions  Feature = "receptions"
)

func Enabled(f models.Features, feature Feature) bool {
	switch feature {
	case FeatureMercadoPago:
		return f.MercadoPago
	case FeatureWhatsApp:
		return f.WhatsApp
	case FeatureMultiBranch:
		return f.MultiBranch
	case FeatureMemberships:
		return f.Memberships
	case FeatureInventory:
		return f.Inventory
	case FeatureReceptions:
		return f.Receptions
	}
	return false
}

// RequireFeature fails with feature_disabled when the shop's plan does
// not include feature.
func RequireFeature(s *models.Shop, feature Feature) error {
	if !Enabled(s.Features, feature) {
		return httperr.ErrForbidden("feature_disabled")
	}
	return nil
}
