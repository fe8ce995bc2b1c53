package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/middleware"
)

type MeHandler struct {
	tenants store.TenantRepository
}

func NewMeHandler(tenants store.TenantRepository) *MeHandler {
	return &MeHandler{tenants: tenants}
}

// GetMe returns the session and, for shop users, their shop.
func (h *MeHandler) GetMe(c *gin.Context) {
	s := middleware.SessionFrom(c)
	if s == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session_not_in_context"})
		return
	}

	if s.ShopSlug == "" {
		c.JSON(http.StatusOK, gin.H{"session": s})
		return
	}

	shop, err := h.tenants.GetShop(c.Request.Context(), s.ShopSlug)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": s,
		"shop":    shop.Redacted(),
	})
}
