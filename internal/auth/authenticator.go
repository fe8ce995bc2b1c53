package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

var (
	ErrInvalidCredentials = httperr.BusinessError{Code: "invalid_credentials", Kind: httperr.KindValidation}
	ErrInvalidToken       = errors.New("invalid_token")
	ErrSessionRevoked     = errors.New("session_revoked")
)

type Options struct {
	Secret             string
	TTL                time.Duration
	SuperAdminUser     string
	SuperAdminPassword string
}

type Token struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

type Authenticator struct {
	tenants  store.TenantRepository
	sessions SessionStore
	opts     Options
	now      func() time.Time
}

func NewAuthenticator(tenants store.TenantRepository, sessions SessionStore, opts Options) *Authenticator {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Authenticator{
		tenants:  tenants,
		sessions: sessions,
		opts:     opts,
		now:      time.Now,
	}
}

// Login authenticates shop staff. The admin account is checked first,
// then active staff with credentials. An inactive or unknown shop yields
// the same error as a bad password.
func (a *Authenticator) Login(ctx context.Context, slug, username, password string) (*Token, error) {
	shop, err := a.tenants.GetShop(ctx, slug)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !shop.Active {
		return nil, ErrInvalidCredentials
	}

	if username == shop.AdminUser && CheckPassword(shop.AdminPasswordHash, password) {
		return a.issue(ctx, Session{
			Role:     RoleAdmin,
			ShopSlug: shop.Slug,
			UserID:   "admin-" + shop.ID,
			Name:     shop.Name,
		})
	}

	if barber, ok := findStaff(shop, username); ok && CheckPassword(barber.PasswordHash, password) {
		return a.issue(ctx, Session{
			Role:     RoleBarber,
			ShopSlug: shop.Slug,
			UserID:   barber.ID,
			Name:     barber.Name,
		})
	}

	return nil, ErrInvalidCredentials
}

func findStaff(shop *models.Shop, username string) (*models.Barber, bool) {
	if username == "" {
		return nil, false
	}
	for i := range shop.Barbers {
		b := &shop.Barbers[i]
		if b.Active && b.Username == username && b.PasswordHash != "" {
			return b, true
		}
	}
	return nil, false
}

func (a *Authenticator) SuperAdminLogin(ctx context.Context, username, password string) (*Token, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.opts.SuperAdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.opts.SuperAdminPassword)) == 1
	if !userOK || !passOK || a.opts.SuperAdminUser == "" {
		return nil, ErrInvalidCredentials
	}

	return a.issue(ctx, Session{
		Role:   RoleSuperAdmin,
		UserID: "superadmin",
		Name:   "Super Admin",
	})
}

func (a *Authenticator) issue(ctx context.Context, s Session) (*Token, error) {
	now := a.now()
	s.ID = uuid.NewString()
	s.ExpiresAt = now.Add(a.opts.TTL)

	claims := jwt.MapClaims{
		"sid":      s.ID,
		"sub":      s.UserID,
		"role":     string(s.Role),
		"shopSlug": s.ShopSlug,
		"name":     s.Name,
		"iat":      now.Unix(),
		"exp":      s.ExpiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.opts.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := a.sessions.Save(ctx, s, a.opts.TTL); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}

	return &Token{Token: signed, Session: s}, nil
}

// Verify parses the token and checks the session is still registered.
func (a *Authenticator) Verify(ctx context.Context, tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(a.opts.Secret), nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sid, _ := claims["sid"].(string)
	role, _ := claims["role"].(string)
	if sid == "" || role == "" {
		return nil, ErrInvalidToken
	}

	live, err := a.sessions.Exists(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, ErrSessionRevoked
	}

	s := &Session{ID: sid, Role: Role(role)}
	s.UserID, _ = claims["sub"].(string)
	s.ShopSlug, _ = claims["shopSlug"].(string)
	s.Name, _ = claims["name"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	return s, nil
}

func (a *Authenticator) Logout(ctx context.Context, sessionID string) error {
	return a.sessions.Delete(ctx, sessionID)
}

// -----------------------------------------------------
// Passwords
// -----------------------------------------------------

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
