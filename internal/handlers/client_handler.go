package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/turnolibre/internal/domain/client"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/httpresp"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	ucBooking "github.com/BruksfildServices01/turnolibre/internal/usecase/booking"
	ucClient "github.com/BruksfildServices01/turnolibre/internal/usecase/client"
)

type ClientHandler struct {
	list        *ucClient.ListClients
	create      *ucClient.CreateClient
	update      *ucClient.UpdateClient
	convert     *ucClient.ConvertToRegular
	memberships *ucClient.Memberships
	history     *ucBooking.ListClientBookings
}

func NewClientHandler(
	list *ucClient.ListClients,
	create *ucClient.CreateClient,
	update *ucClient.UpdateClient,
	convert *ucClient.ConvertToRegular,
	memberships *ucClient.Memberships,
	history *ucBooking.ListClientBookings,
) *ClientHandler {
	return &ClientHandler{
		list:        list,
		create:      create,
		update:      update,
		convert:     convert,
		memberships: memberships,
		history:     history,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ClientRequest struct {
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Phone     string            `json:"phone"`
	Type      models.ClientType `json:"type"`
	Notes     string            `json:"notes"`
	PlanID    string            `json:"planId"`
}

type AssignMembershipRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

func filterFrom(c *gin.Context) domain.Filter {
	return domain.Filter{
		Search:        c.Query("search"),
		Type:          models.ClientType(c.Query("type")),
		Membership:    c.Query("membership"),
		LastVisitFrom: c.Query("lastVisitFrom"),
		LastVisitTo:   c.Query("lastVisitTo"),
	}
}

// ======================================================
// LIST / EXPORT
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.list.Execute(c.Request.Context(), c.Param("slug"), filterFrom(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.list.Export(c.Request.Context(), &buf, c.Param("slug"), filterFrom(c)); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="clientes.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if !bind(c, &req) {
		return
	}

	client, err := h.create.Execute(c.Request.Context(), ucClient.CreateClientInput{
		ShopSlug:  c.Param("slug"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Type:      req.Type,
		Notes:     req.Notes,
		PlanID:    req.PlanID,
		ActorID:   actorOf(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req ClientRequest
	if !bind(c, &req) {
		return
	}

	client, err := h.update.Execute(c.Request.Context(), ucClient.UpdateClientInput{
		ShopSlug:  c.Param("slug"),
		ClientID:  c.Param("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Notes:     req.Notes,
		ActorID:   actorOf(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Convert(c *gin.Context) {
	client, err := h.convert.Execute(c.Request.Context(), c.Param("slug"), c.Param("id"), actorOf(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// ======================================================
// MEMBERSHIPS
// ======================================================

func (h *ClientHandler) AssignMembership(c *gin.Context) {
	var req AssignMembershipRequest
	if !bind(c, &req) {
		return
	}

	client, err := h.memberships.Assign(c.Request.Context(), c.Param("slug"), c.Param("id"), req.PlanID, actorOf(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) CancelMembership(c *gin.Context) {
	client, err := h.memberships.Cancel(c.Request.Context(), c.Param("slug"), c.Param("id"), actorOf(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) ConsumeSession(c *gin.Context) {
	client, err := h.memberships.ConsumeSession(c.Request.Context(), c.Param("slug"), c.Param("id"), actorOf(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// ======================================================
// HISTORY
// ======================================================

func (h *ClientHandler) Bookings(c *gin.Context) {
	bookings, err := h.history.Execute(c.Request.Context(), c.Param("slug"), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, bookings)
}
