package shop

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	"github.com/BruksfildServices01/turnolibre/internal/auth"
	"github.com/BruksfildServices01/turnolibre/internal/domain/inventory"
	domain "github.com/BruksfildServices01/turnolibre/internal/domain/shop"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// Catalog edits what a shop offers: branches, services, staff, stock and
// membership plans. Every call is one revision-checked tenant write.
type Catalog struct {
	repo  store.TenantRepository
	audit *audit.Dispatcher
}

func NewCatalog(repo store.TenantRepository, audit *audit.Dispatcher) *Catalog {
	return &Catalog{repo: repo, audit: audit}
}

func (uc *Catalog) mutate(
	ctx context.Context,
	slug, actorID, action, entity, entityID string,
	fn func(s *models.Shop) error,
) error {
	if _, err := store.Mutate(ctx, uc.repo, slug, fn); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ShopSlug: slug,
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	})
	return nil
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// ======================================================
// BRANCHES
// ======================================================

func (uc *Catalog) SaveBranch(ctx context.Context, slug, actorID string, b models.Branch) (*models.Branch, error) {
	creating := b.ID == ""
	b.ID = newID(b.ID)

	err := uc.mutate(ctx, slug, actorID, "branch_saved", "branch", b.ID, func(s *models.Shop) error {
		if err := domain.RequireFeature(s, domain.FeatureMultiBranch); err != nil {
			return err
		}
		if creating {
			return domain.AddBranch(s, b)
		}
		return domain.UpdateBranch(s, b)
	})
	if err != nil {
		return nil, err
	}

	b.Name = strings.TrimSpace(b.Name)
	return &b, nil
}

func (uc *Catalog) RemoveBranch(ctx context.Context, slug, actorID, id string) error {
	return uc.mutate(ctx, slug, actorID, "branch_removed", "branch", id, func(s *models.Shop) error {
		if err := domain.RequireFeature(s, domain.FeatureMultiBranch); err != nil {
			return err
		}
		return domain.RemoveBranch(s, id)
	})
}

// ======================================================
// SERVICES
// ======================================================

func (uc *Catalog) SaveService(ctx context.Context, slug, actorID string, svc models.Service) (*models.Service, error) {
	svc.Name = strings.TrimSpace(svc.Name)
	switch {
	case svc.Name == "":
		return nil, httperr.ErrValidation("service_name_required")
	case svc.Price < 0:
		return nil, httperr.ErrValidation("invalid_price")
	case svc.Duration <= 0:
		return nil, httperr.ErrValidation("invalid_duration")
	}

	creating := svc.ID == ""
	svc.ID = newID(svc.ID)

	err := uc.mutate(ctx, slug, actorID, "service_saved", "service", svc.ID, func(s *models.Shop) error {
		if creating {
			s.Services = append(s.Services, svc)
			return nil
		}
		for i := range s.Services {
			if s.Services[i].ID == svc.ID {
				s.Services[i] = svc
				return nil
			}
		}
		return httperr.ErrNotFound("service_not_found")
	})
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// DeleteService leaves existing bookings of the service untouched.
func (uc *Catalog) DeleteService(ctx context.Context, slug, actorID, id string) error {
	return uc.mutate(ctx, slug, actorID, "service_deleted", "service", id, func(s *models.Shop) error {
		for i := range s.Services {
			if s.Services[i].ID == id {
				s.Services = append(s.Services[:i], s.Services[i+1:]...)
				return nil
			}
		}
		return httperr.ErrNotFound("service_not_found")
	})
}

// ======================================================
// STAFF
// ======================================================

type BarberInput struct {
	ID          string
	Name        string
	Specialties []string
	Avatar      string
	Active      bool
	Branch      string
	Username    string
	// Password replaces the stored hash when set.
	Password string
}

func (uc *Catalog) SaveBarber(ctx context.Context, slug, actorID string, in BarberInput) (*models.Barber, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("barber_name_required")
	}

	hash := ""
	if in.Password != "" {
		h, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	creating := in.ID == ""
	barber := models.Barber{
		ID:          newID(in.ID),
		Name:        name,
		Specialties: in.Specialties,
		Avatar:      in.Avatar,
		Active:      in.Active,
		Username:    strings.TrimSpace(in.Username),
		Branch:      strings.TrimSpace(in.Branch),
	}
	if barber.Specialties == nil {
		barber.Specialties = []string{}
	}
	if barber.Branch == models.MainBranch {
		barber.Branch = ""
	}

	err := uc.mutate(ctx, slug, actorID, "barber_saved", "barber", barber.ID, func(s *models.Shop) error {
		if barber.Branch != "" && !domain.HasBranch(s, barber.Branch) {
			return httperr.ErrValidation("branch_not_found")
		}
		if barber.Username != "" {
			if barber.Username == s.AdminUser {
				return httperr.ErrConflict("username_taken")
			}
			for _, other := range s.Barbers {
				if other.ID != barber.ID && other.Username == barber.Username {
					return httperr.ErrConflict("username_taken")
				}
			}
		}

		if creating {
			barber.PasswordHash = hash
			s.Barbers = append(s.Barbers, barber)
			return nil
		}

		for i := range s.Barbers {
			if s.Barbers[i].ID != barber.ID {
				continue
			}
			barber.PasswordHash = s.Barbers[i].PasswordHash
			if hash != "" {
				barber.PasswordHash = hash
			}
			s.Barbers[i] = barber
			return nil
		}
		return httperr.ErrNotFound("barber_not_found")
	})
	if err != nil {
		return nil, err
	}

	barber.PasswordHash = ""
	return &barber, nil
}

func (uc *Catalog) DeleteBarber(ctx context.Context, slug, actorID, id string) error {
	return uc.mutate(ctx, slug, actorID, "barber_deleted", "barber", id, func(s *models.Shop) error {
		for i := range s.Barbers {
			if s.Barbers[i].ID == id {
				s.Barbers = append(s.Barbers[:i], s.Barbers[i+1:]...)
				return nil
			}
		}
		return httperr.ErrNotFound("barber_not_found")
	})
}

// ======================================================
// STOCK
// ======================================================

// StockKind selects which ledger an operation works on.
type StockKind string

const (
	StockInventory  StockKind = "inventory"
	StockReceptions StockKind = "receptions"
)

func stockList(s *models.Shop, kind StockKind) (*[]models.StockItem, error) {
	switch kind {
	case StockInventory:
		if err := domain.RequireFeature(s, domain.FeatureInventory); err != nil {
			return nil, err
		}
		return &s.Inventory, nil
	case StockReceptions:
		if err := domain.RequireFeature(s, domain.FeatureReceptions); err != nil {
			return nil, err
		}
		return &s.Receptions, nil
	}
	return nil, httperr.ErrValidation("invalid_stock_kind")
}

// SaveStockItem creates an item stocked at the main branch, or renames and
// toggles an existing one without touching its stock.
func (uc *Catalog) SaveStockItem(
	ctx context.Context,
	slug, actorID string,
	kind StockKind,
	id, name string,
	active bool,
) (*models.StockItem, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, httperr.ErrValidation("item_name_required")
	}

	creating := id == ""
	id = newID(id)
	var saved models.StockItem

	err := uc.mutate(ctx, slug, actorID, "stock_item_saved", string(kind), id, func(s *models.Shop) error {
		items, err := stockList(s, kind)
		if err != nil {
			return err
		}

		if creating {
			saved = inventory.NewItem(id, name)
			saved.Active = active
			*items = append(*items, saved)
			return nil
		}

		for i := range *items {
			if (*items)[i].ID == id {
				(*items)[i].Name = name
				(*items)[i].Active = active
				saved = (*items)[i]
				return nil
			}
		}
		return httperr.ErrNotFound("item_not_found")
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (uc *Catalog) SetStock(
	ctx context.Context,
	slug, actorID string,
	kind StockKind,
	itemID, branch string,
	info models.StockInfo,
) (*models.StockItem, error) {

	if branch == "" {
		branch = models.MainBranch
	}
	var saved models.StockItem

	err := uc.mutate(ctx, slug, actorID, "stock_set", string(kind), itemID, func(s *models.Shop) error {
		items, err := stockList(s, kind)
		if err != nil {
			return err
		}
		if !domain.HasBranch(s, branch) {
			return httperr.ErrValidation("branch_not_found")
		}

		for i := range *items {
			if (*items)[i].ID == itemID {
				(*items)[i] = inventory.SetBranchStock((*items)[i], branch, info)
				saved = (*items)[i]
				return nil
			}
		}
		return httperr.ErrNotFound("item_not_found")
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// ======================================================
// MEMBERSHIP PLANS
// ======================================================

func (uc *Catalog) SavePlan(ctx context.Context, slug, actorID string, p models.MembershipPlan) (*models.MembershipPlan, error) {
	p.Name = strings.TrimSpace(p.Name)
	switch {
	case p.Name == "":
		return nil, httperr.ErrValidation("plan_name_required")
	case p.Sessions <= 0:
		return nil, httperr.ErrValidation("invalid_sessions")
	case p.ValidityDays <= 0:
		return nil, httperr.ErrValidation("invalid_validity")
	case p.Price < 0:
		return nil, httperr.ErrValidation("invalid_price")
	}

	creating := p.ID == ""
	p.ID = newID(p.ID)

	err := uc.mutate(ctx, slug, actorID, "membership_plan_saved", "membership_plan", p.ID, func(s *models.Shop) error {
		if err := domain.RequireFeature(s, domain.FeatureMemberships); err != nil {
			return err
		}
		if creating {
			s.MembershipPlans = append(s.MembershipPlans, p)
			return nil
		}
		for i := range s.MembershipPlans {
			if s.MembershipPlans[i].ID == p.ID {
				s.MembershipPlans[i] = p
				return nil
			}
		}
		return httperr.ErrNotFound("plan_not_found")
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetPlanActive toggles whether a plan can be issued. Memberships already
// issued from it keep running.
func (uc *Catalog) SetPlanActive(ctx context.Context, slug, actorID, id string, active bool) error {
	return uc.mutate(ctx, slug, actorID, "membership_plan_toggled", "membership_plan", id, func(s *models.Shop) error {
		if err := domain.RequireFeature(s, domain.FeatureMemberships); err != nil {
			return err
		}
		for i := range s.MembershipPlans {
			if s.MembershipPlans[i].ID == id {
				s.MembershipPlans[i].Active = active
				return nil
			}
		}
		return httperr.ErrNotFound("plan_not_found")
	})
}
