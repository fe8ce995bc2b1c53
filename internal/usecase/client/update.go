package client

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	domain "github.com/BruksfildServices01/turnolibre/internal/domain/client"
	"github.com/BruksfildServices01/turnolibre/internal/domain/membership"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

type UpdateClientInput struct {
	ShopSlug  string
	ClientID  string
	FirstName string
	LastName  string
	Phone     string
	Notes     string

	ActorID string
}

type UpdateClient struct {
	repo  store.TenantRepository
	audit *audit.Dispatcher
}

func NewUpdateClient(repo store.TenantRepository, audit *audit.Dispatcher) *UpdateClient {
	return &UpdateClient{repo: repo, audit: audit}
}

// Execute edits contact data. Type and memberships have their own
// operations.
func (uc *UpdateClient) Execute(
	ctx context.Context,
	in UpdateClientInput,
) (*models.Client, error) {

	first, last, err := names(in.FirstName, in.LastName)
	if err != nil {
		return nil, err
	}

	phone, err := canonicalPhone(in.Phone)
	if err != nil {
		return nil, err
	}

	var updated models.Client

	_, err = store.Mutate(ctx, uc.repo, in.ShopSlug, func(shop *models.Shop) error {
		c, ok := domain.FindByID(shop.Clients, in.ClientID)
		if !ok {
			return httperr.ErrNotFound("client_not_found")
		}

		if err := domain.AssertPhoneAvailable(shop.Clients, phone, c.ID); err != nil {
			return err
		}

		c.FirstName = first
		c.LastName = last
		c.Phone = phone
		c.Notes = strings.TrimSpace(in.Notes)

		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopSlug: in.ShopSlug,
		ActorID:  in.ActorID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: updated.ID,
	})
	return &updated, nil
}

// ======================================================
// CONVERT
// ======================================================

type ConvertToRegular struct {
	repo  store.TenantRepository
	audit *audit.Dispatcher
}

func NewConvertToRegular(repo store.TenantRepository, audit *audit.Dispatcher) *ConvertToRegular {
	return &ConvertToRegular{repo: repo, audit: audit}
}

func (uc *ConvertToRegular) Execute(
	ctx context.Context,
	slug, clientID, actorID string,
) (*models.Client, error) {

	var updated models.Client

	_, err := store.Mutate(ctx, uc.repo, slug, func(shop *models.Shop) error {
		c, ok := domain.FindByID(shop.Clients, clientID)
		if !ok {
			return httperr.ErrNotFound("client_not_found")
		}

		membership.ConvertToRegular(c)
		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopSlug: slug,
		ActorID:  actorID,
		Action:   "client_converted",
		Entity:   "client",
		EntityID: clientID,
	})
	return &updated, nil
}
