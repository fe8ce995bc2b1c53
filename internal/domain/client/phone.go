package client

import (
	"strings"

	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// countryPrefix is the Argentine mobile prefix (country 54, mobile 9).
const countryPrefix = "549"

// MinLookupDigits is how many digits the public intake form waits for
// before looking a client up.
const MinLookupDigits = 7

func digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone produces the canonical "+549..." form. It does not
// validate length.
func NormalizePhone(raw string) string {
	d := digits(raw)
	if strings.HasPrefix(d, countryPrefix) {
		return "+" + d
	}
	return "+" + countryPrefix + d
}

// FindByPhone is the tolerant lookup used at booking intake: a client
// matches when either digit string contains the other. Several clients
// may match; the first in list order wins.
func FindByPhone(clients []models.Client, partial string) (*models.Client, bool) {
	needle := digits(partial)
	if needle == "" {
		return nil, false
	}

	for i := range clients {
		stored := digits(clients[i].Phone)
		if stored == "" {
			continue
		}
		if strings.Contains(stored, needle) || strings.Contains(needle, stored) {
			return &clients[i], true
		}
	}
	return nil, false
}

// AssertPhoneAvailable enforces exact canonical uniqueness, skipping the
// client identified by exceptID.
func AssertPhoneAvailable(clients []models.Client, canonical, exceptID string) error {
	for _, c := range clients {
		if c.ID == exceptID {
			continue
		}
		if c.Phone == canonical {
			return httperr.ErrConflict("phone_already_registered")
		}
	}
	return nil
}

func FindByID(clients []models.Client, id string) (*models.Client, bool) {
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], true
		}
	}
	return nil, false
}
