package client

import (
	"context"
	"io"
	"sort"
	"strings"

	domain "github.com/BruksfildServices01/turnolibre/internal/domain/client"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// ======================================================
// LIST / EXPORT
// ======================================================

type ListClients struct {
	repo store.TenantRepository
}

func NewListClients(repo store.TenantRepository) *ListClients {
	return &ListClients{repo: repo}
}

// Execute returns the filtered directory ordered by full name.
func (uc *ListClients) Execute(
	ctx context.Context,
	slug string,
	f domain.Filter,
) ([]models.Client, error) {

	shop, err := uc.repo.GetShop(ctx, slug)
	if err != nil {
		return nil, err
	}

	out := domain.Apply(shop.Clients, f)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].FullName()) < strings.ToLower(out[j].FullName())
	})
	return out, nil
}

// Export writes the filtered directory as CSV.
func (uc *ListClients) Export(
	ctx context.Context,
	w io.Writer,
	slug string,
	f domain.Filter,
) error {

	clients, err := uc.Execute(ctx, slug, f)
	if err != nil {
		return err
	}
	return domain.WriteCSV(w, clients)
}

// ======================================================
// LOOKUP
// ======================================================

// LookupResult is what the public intake form may learn about a known
// client.
type LookupResult struct {
	Found     bool   `json:"found"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type LookupByPhone struct {
	repo store.TenantRepository
}

func NewLookupByPhone(repo store.TenantRepository) *LookupByPhone {
	return &LookupByPhone{repo: repo}
}

// Execute resolves a partially typed phone. Fewer than MinLookupDigits
// digits is rejected so short prefixes cannot enumerate clients.
func (uc *LookupByPhone) Execute(
	ctx context.Context,
	slug string,
	phone string,
) (*LookupResult, error) {

	n := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	if n < domain.MinLookupDigits {
		return nil, httperr.ErrValidation("phone_too_short")
	}

	shop, err := uc.repo.GetShop(ctx, slug)
	if err != nil {
		return nil, err
	}

	c, ok := domain.FindByPhone(shop.Clients, phone)
	if !ok {
		return &LookupResult{}, nil
	}
	return &LookupResult{Found: true, FirstName: c.FirstName, LastName: c.LastName}, nil
}
