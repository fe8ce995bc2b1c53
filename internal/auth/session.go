package auth

import (
	"context"
	"time"
)

type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleBarber     Role = "BARBER"
)

// Session identifies who is acting. ShopSlug is empty for the platform
// super admin. UserID is the staff id for barbers.
type Session struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	ShopSlug  string    `json:"shopSlug,omitempty"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CanAccessShop reports whether the session may act on slug.
func (s Session) CanAccessShop(slug string) bool {
	return s.Role == RoleSuperAdmin || s.ShopSlug == slug
}

// SessionStore registers live sessions so tokens can be revoked before
// they expire.
type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
