package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnolibre/internal/auth"
	domain "github.com/BruksfildServices01/turnolibre/internal/domain/booking"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/dto"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/httpresp"
	"github.com/BruksfildServices01/turnolibre/internal/middleware"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	ucBooking "github.com/BruksfildServices01/turnolibre/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	tenants    store.TenantRepository
	agenda     *ucBooking.ListAgenda
	attendants *ucBooking.ListAttendants
	status     *ucBooking.ChangeStatus
}

func NewBookingHandler(
	tenants store.TenantRepository,
	agenda *ucBooking.ListAgenda,
	attendants *ucBooking.ListAttendants,
	status *ucBooking.ChangeStatus,
) *BookingHandler {
	return &BookingHandler{
		tenants:    tenants,
		agenda:     agenda,
		attendants: attendants,
		status:     status,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ChangeStatusRequest struct {
	Status         string         `json:"status" binding:"required"`
	AttendantID    string         `json:"attendantId"`
	InventoryUsage map[string]int `json:"inventoryUsage"`
	ReceptionUsage map[string]int `json:"receptionUsage"`
}

// ======================================================
// AGENDA
// ======================================================

// Agenda lists a day for the whole shop, optionally one barber.
func (h *BookingHandler) Agenda(c *gin.Context) {
	h.listAgenda(c, c.Query("barberId"))
}

// MyAgenda is the staff view: always the caller's own bookings.
func (h *BookingHandler) MyAgenda(c *gin.Context) {
	s := middleware.SessionFrom(c)
	if s == nil || s.Role != auth.RoleBarber {
		httperr.Forbidden(c, "barber_only", "Solo disponible para barberos.")
		return
	}
	h.listAgenda(c, s.UserID)
}

func (h *BookingHandler) listAgenda(c *gin.Context, barberID string) {
	slug := c.Param("slug")

	bookings, err := h.agenda.Execute(c.Request.Context(), slug, c.Query("date"), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	shop, err := h.tenants.GetShop(c.Request.Context(), slug)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.NewAgendaItems(shop, bookings))
}

// ======================================================
// ATTENDANTS
// ======================================================

func (h *BookingHandler) Attendants(c *gin.Context) {
	barbers, err := h.attendants.Execute(c.Request.Context(), c.Param("slug"), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, barbers)
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if !bind(c, &req) {
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	in := ucBooking.ChangeStatusInput{
		ShopSlug:  c.Param("slug"),
		BookingID: c.Param("id"),
		Status:    status,
		ActorID:   actorOf(c),
	}

	if s := middleware.SessionFrom(c); s != nil && s.Role == auth.RoleBarber {
		in.OnlyBarberID = s.UserID
	}

	if status == models.BookingCompleted {
		in.Completion = &ucBooking.Completion{
			AttendantID:    req.AttendantID,
			InventoryUsage: req.InventoryUsage,
			ReceptionUsage: req.ReceptionUsage,
		}
	}

	b, err := h.status.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
