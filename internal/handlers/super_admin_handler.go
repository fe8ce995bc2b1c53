package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/turnolibre/internal/domain/shop"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/httpresp"
	ucShop "github.com/BruksfildServices01/turnolibre/internal/usecase/shop"
)

// SuperAdminHandler manages the tenant registry.
type SuperAdminHandler struct {
	list      *ucShop.ListShops
	provision *ucShop.Provision
	update    *ucShop.UpdateShop
	cloud     *ucShop.CloudStatus
}

func NewSuperAdminHandler(
	list *ucShop.ListShops,
	provision *ucShop.Provision,
	update *ucShop.UpdateShop,
	cloud *ucShop.CloudStatus,
) *SuperAdminHandler {
	return &SuperAdminHandler{
		list:      list,
		provision: provision,
		update:    update,
		cloud:     cloud,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ProvisionRequest struct {
	Name          string `json:"name" binding:"required"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	Province      string `json:"province"`
	City          string `json:"city"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	ThemeColor    string `json:"themeColor"`
	Timezone      string `json:"timezone"`
	CustomDomain  string `json:"customDomain"`
	Plan          string `json:"plan"`
	AdminUser     string `json:"adminUser"`
	AdminPassword string `json:"adminPassword"`
}

type UpdateShopRequest struct {
	ucShop.ProfilePatch
	Plan   *string `json:"plan"`
	Active *bool   `json:"active"`
}

// ======================================================
// SHOPS
// ======================================================

func (h *SuperAdminHandler) ListShops(c *gin.Context) {
	shops, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, shops)
}

func (h *SuperAdminHandler) Provision(c *gin.Context) {
	var req ProvisionRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.provision.Execute(c.Request.Context(), ucShop.ProvisionInput{
		Profile: domain.Profile{
			Name:         req.Name,
			Slug:         req.Slug,
			Description:  req.Description,
			Province:     req.Province,
			City:         req.City,
			Address:      req.Address,
			Phone:        req.Phone,
			ThemeColor:   req.ThemeColor,
			Timezone:     req.Timezone,
			CustomDomain: req.CustomDomain,
		},
		Plan:          req.Plan,
		AdminUser:     req.AdminUser,
		AdminPassword: req.AdminPassword,
		ActorID:       actorOf(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *SuperAdminHandler) UpdateShop(c *gin.Context) {
	var req UpdateShopRequest
	if !bind(c, &req) {
		return
	}

	shop, err := h.update.Execute(c.Request.Context(), ucShop.UpdateShopInput{
		Slug:    c.Param("slug"),
		Plan:    req.Plan,
		Active:  req.Active,
		Profile: req.ProfilePatch,
		ActorID: actorOf(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, shop)
}

// ======================================================
// CLOUD
// ======================================================

// CloudStatus answers 200 even when the store is down so the panel can
// show the banner.
func (h *SuperAdminHandler) CloudStatus(c *gin.Context) {
	status, _ := h.cloud.Execute(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": status})
}
