package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	ucShop "github.com/BruksfildServices01/turnolibre/internal/usecase/shop"
)

type WorkingHoursHandler struct {
	tenants  store.TenantRepository
	settings *ucShop.UpdateSettings
}

func NewWorkingHoursHandler(tenants store.TenantRepository, settings *ucShop.UpdateSettings) *WorkingHoursHandler {
	return &WorkingHoursHandler{tenants: tenants, settings: settings}
}

type WorkingHoursPayload struct {
	OpeningHours    []models.DaySchedule            `json:"openingHours"`
	BranchSchedules map[string][]models.DaySchedule `json:"branchSchedules"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	shop, err := h.tenants.GetShop(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	branches := shop.BranchSchedules
	if branches == nil {
		branches = map[string][]models.DaySchedule{}
	}

	c.JSON(http.StatusOK, WorkingHoursPayload{
		OpeningHours:    shop.OpeningHours,
		BranchSchedules: branches,
	})
}

// Update replaces the shop hours and, when sent, every branch override.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursPayload
	if !bind(c, &req) {
		return
	}
	if req.OpeningHours == nil {
		httperr.BadRequest(c, "invalid_schedule", "Horario inválido.")
		return
	}

	shop, err := h.settings.Execute(c.Request.Context(), ucShop.UpdateSettingsInput{
		Slug:            c.Param("slug"),
		OpeningHours:    req.OpeningHours,
		BranchSchedules: req.BranchSchedules,
		ActorID:         actorOf(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, WorkingHoursPayload{
		OpeningHours:    shop.OpeningHours,
		BranchSchedules: shop.BranchSchedules,
	})
}
