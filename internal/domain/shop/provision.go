package shop

import (
	"strings"

	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	"github.com/BruksfildServices01/turnolibre/internal/validators"
)

type Profile struct {
	Name         string
	Slug         string
	Description  string
	Province     string
	City         string
	Address      string
	Phone        string
	ThemeColor   string
	Timezone     string
	CustomDomain string
}

const defaultThemeColor = "#d4af37"

// New builds a fresh tenant with default hours, notification preferences
// and the feature set of plan. Credentials are set by the caller.
func New(id string, p Profile, plan models.Plan) (*models.Shop, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, httperr.ErrValidation("shop_name_required")
	}

	slug := strings.TrimSpace(p.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" || slug != Slugify(slug) {
		return nil, httperr.ErrValidation("invalid_slug")
	}

	theme := p.ThemeColor
	if theme == "" {
		theme = defaultThemeColor
	}
	if !validators.IsHexColor(theme) {
		return nil, httperr.ErrValidation("invalid_theme_color")
	}
	if p.CustomDomain != "" && !validators.IsHostname(p.CustomDomain) {
		return nil, httperr.ErrValidation("invalid_custom_domain")
	}

	return &models.Shop{
		ID:                id,
		Slug:              slug,
		Name:              name,
		ThemeColor:        theme,
		Description:       p.Description,
		Province:          p.Province,
		City:              p.City,
		Address:           p.Address,
		Phone:             p.Phone,
		Timezone:          p.Timezone,
		CustomDomain:      p.CustomDomain,
		Active:            true,
		AdminUser:         "admin",
		Plan:              plan,
		Features:          FeaturesForPlan(plan, models.Features{}),
		OpeningHours:      DefaultOpeningHours(),
		BranchSchedules:   map[string][]models.DaySchedule{},
		NotificationPrefs: DefaultNotificationPrefs(),
		Branches:          []models.Branch{},
		Services:          []models.Service{},
		Barbers:           []models.Barber{},
		Clients:           []models.Client{},
		MembershipPlans:   []models.MembershipPlan{},
		Inventory:         []models.StockItem{},
		Receptions:        []models.StockItem{},
	}, nil
}

// ApplyPlan switches tier and recomputes features.
func ApplyPlan(s *models.Shop, plan models.Plan) {
	s.Plan = plan
	s.Features = FeaturesForPlan(plan, s.Features)
}
