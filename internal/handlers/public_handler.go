package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	ucBooking "github.com/BruksfildServices01/turnolibre/internal/usecase/booking"
	ucClient "github.com/BruksfildServices01/turnolibre/internal/usecase/client"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	tenants      store.TenantRepository
	availability *ucBooking.GetAvailability
	lookup       *ucClient.LookupByPhone
	create       *ucBooking.CreateBooking
}

func NewPublicHandler(
	tenants store.TenantRepository,
	availability *ucBooking.GetAvailability,
	lookup *ucClient.LookupByPhone,
	create *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		tenants:      tenants,
		availability: availability,
		lookup:       lookup,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ServiceID   string `json:"serviceId" binding:"required"`
	BarberID    string `json:"barberId" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
}

// PublicShop is the storefront view: no credentials, clients or stock.
type PublicShop struct {
	Slug         string               `json:"slug"`
	Name         string               `json:"name"`
	Logo         string               `json:"logo"`
	ThemeColor   string               `json:"themeColor"`
	Description  string               `json:"description"`
	Province     string               `json:"province"`
	City         string               `json:"city"`
	Address      string               `json:"address"`
	Phone        string               `json:"phone"`
	OpeningHours []models.DaySchedule `json:"openingHours"`
	Branches     []models.Branch      `json:"branches"`
	Services     []models.Service     `json:"services"`
	Barbers      []PublicBarber       `json:"barbers"`
}

type PublicBarber struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
	Avatar      string   `json:"avatar"`
	Branch      string   `json:"branch"`
}

////////////////////////////////////////////////////////
// SHOP
////////////////////////////////////////////////////////

func (h *PublicHandler) GetShop(c *gin.Context) {
	shop, err := h.tenants.GetShop(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if !shop.Active {
		httperr.NotFound(c, "shop_not_found", "Barbería no encontrada.")
		return
	}

	out := PublicShop{
		Slug:         shop.Slug,
		Name:         shop.Name,
		Logo:         shop.Logo,
		ThemeColor:   shop.ThemeColor,
		Description:  shop.Description,
		Province:     shop.Province,
		City:         shop.City,
		Address:      shop.Address,
		Phone:        shop.Phone,
		OpeningHours: shop.OpeningHours,
		Branches:     shop.Branches,
		Services:     shop.Services,
		Barbers:      []PublicBarber{},
	}
	for _, b := range shop.Barbers {
		if !b.Active {
			continue
		}
		out.Barbers = append(out.Barbers, PublicBarber{
			ID:          b.ID,
			Name:        b.Name,
			Specialties: b.Specialties,
			Avatar:      b.Avatar,
			Branch:      b.BranchName(),
		})
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_params", "La fecha es obligatoria.")
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), c.Param("slug"), date, c.Query("branch"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// CLIENT LOOKUP
////////////////////////////////////////////////////////

func (h *PublicHandler) LookupClient(c *gin.Context) {
	out, err := h.lookup.Execute(c.Request.Context(), c.Param("slug"), c.Query("phone"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req PublicCreateBookingRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ShopSlug:    c.Param("slug"),
		ServiceID:   req.ServiceID,
		BarberID:    req.BarberID,
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}
