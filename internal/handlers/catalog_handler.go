package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	ucShop "github.com/BruksfildServices01/turnolibre/internal/usecase/shop"
)

// CatalogHandler edits branches, services, staff, stock and membership
// plans of one shop.
type CatalogHandler struct {
	catalog *ucShop.Catalog
}

func NewCatalogHandler(catalog *ucShop.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ======================================================
// REQUESTS
// ======================================================

type BarberRequest struct {
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
	Avatar      string   `json:"avatar"`
	Active      bool     `json:"active"`
	Branch      string   `json:"branch"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
}

type StockItemRequest struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type StockRequest struct {
	Branch   string `json:"branch"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"minStock"`
}

type ActiveRequest struct {
	Active bool `json:"active"`
}

func (h *CatalogHandler) reply(c *gin.Context, status int, v any, err error) {
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if v == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(status, v)
}

// createdOrOK answers 201 when the path carries no id.
func createdOrOK(c *gin.Context) int {
	if c.Param("id") == "" {
		return http.StatusCreated
	}
	return http.StatusOK
}

// ======================================================
// BRANCHES
// ======================================================

func (h *CatalogHandler) SaveBranch(c *gin.Context) {
	var req models.Branch
	if !bind(c, &req) {
		return
	}
	req.ID = c.Param("id")

	b, err := h.catalog.SaveBranch(c.Request.Context(), c.Param("slug"), actorOf(c), req)
	h.reply(c, createdOrOK(c), b, err)
}

func (h *CatalogHandler) RemoveBranch(c *gin.Context) {
	err := h.catalog.RemoveBranch(c.Request.Context(), c.Param("slug"), actorOf(c), c.Param("id"))
	h.reply(c, http.StatusNoContent, nil, err)
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) SaveService(c *gin.Context) {
	var req models.Service
	if !bind(c, &req) {
		return
	}
	req.ID = c.Param("id")

	s, err := h.catalog.SaveService(c.Request.Context(), c.Param("slug"), actorOf(c), req)
	h.reply(c, createdOrOK(c), s, err)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	err := h.catalog.DeleteService(c.Request.Context(), c.Param("slug"), actorOf(c), c.Param("id"))
	h.reply(c, http.StatusNoContent, nil, err)
}

// ======================================================
// STAFF
// ======================================================

func (h *CatalogHandler) SaveBarber(c *gin.Context) {
	var req BarberRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.catalog.SaveBarber(c.Request.Context(), c.Param("slug"), actorOf(c), ucShop.BarberInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Specialties: req.Specialties,
		Avatar:      req.Avatar,
		Active:      req.Active,
		Branch:      req.Branch,
		Username:    req.Username,
		Password:    req.Password,
	})
	h.reply(c, createdOrOK(c), b, err)
}

func (h *CatalogHandler) DeleteBarber(c *gin.Context) {
	err := h.catalog.DeleteBarber(c.Request.Context(), c.Param("slug"), actorOf(c), c.Param("id"))
	h.reply(c, http.StatusNoContent, nil, err)
}

// ======================================================
// STOCK
// ======================================================

// SaveStockItem and SetStock are bound once per ledger.
func (h *CatalogHandler) SaveStockItem(kind ucShop.StockKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StockItemRequest
		if !bind(c, &req) {
			return
		}

		item, err := h.catalog.SaveStockItem(
			c.Request.Context(), c.Param("slug"), actorOf(c),
			kind, c.Param("id"), req.Name, req.Active,
		)
		h.reply(c, createdOrOK(c), item, err)
	}
}

func (h *CatalogHandler) SetStock(kind ucShop.StockKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StockRequest
		if !bind(c, &req) {
			return
		}

		item, err := h.catalog.SetStock(
			c.Request.Context(), c.Param("slug"), actorOf(c),
			kind, c.Param("id"), req.Branch,
			models.StockInfo{Stock: req.Stock, MinStock: req.MinStock},
		)
		h.reply(c, http.StatusOK, item, err)
	}
}

// ======================================================
// MEMBERSHIP PLANS
// ======================================================

func (h *CatalogHandler) SavePlan(c *gin.Context) {
	var req models.MembershipPlan
	if !bind(c, &req) {
		return
	}
	req.ID = c.Param("id")

	p, err := h.catalog.SavePlan(c.Request.Context(), c.Param("slug"), actorOf(c), req)
	h.reply(c, createdOrOK(c), p, err)
}

func (h *CatalogHandler) SetPlanActive(c *gin.Context) {
	var req ActiveRequest
	if !bind(c, &req) {
		return
	}

	err := h.catalog.SetPlanActive(c.Request.Context(), c.Param("slug"), actorOf(c), c.Param("id"), req.Active)
	h.reply(c, http.StatusNoContent, nil, err)
}
