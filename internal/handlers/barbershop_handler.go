package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/infra/assets"
	"github.com/BruksfildServices01/turnolibre/internal/models"
	ucShop "github.com/BruksfildServices01/turnolibre/internal/usecase/shop"
)

// BarbershopHandler serves the admin view of one shop: settings,
// dashboard and branding.
type BarbershopHandler struct {
	tenants   store.TenantRepository
	settings  *ucShop.UpdateSettings
	dashboard *ucShop.GetDashboard
	logo      *ucShop.UploadLogo
}

func NewBarbershopHandler(
	tenants store.TenantRepository,
	settings *ucShop.UpdateSettings,
	dashboard *ucShop.GetDashboard,
	logo *ucShop.UploadLogo,
) *BarbershopHandler {
	return &BarbershopHandler{
		tenants:   tenants,
		settings:  settings,
		dashboard: dashboard,
		logo:      logo,
	}
}

type UpdateSettingsRequest struct {
	ucShop.ProfilePatch
	NotificationPrefs *models.NotificationPreferences `json:"notificationPrefs"`
	MercadoPagoToken  *string                         `json:"mercadoPagoToken"`
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	shop, err := h.tenants.GetShop(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, shop.Redacted())
}

func (h *BarbershopHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if !bind(c, &req) {
		return
	}

	shop, err := h.settings.Execute(c.Request.Context(), ucShop.UpdateSettingsInput{
		Slug:              c.Param("slug"),
		Profile:           req.ProfilePatch,
		NotificationPrefs: req.NotificationPrefs,
		MercadoPagoToken:  req.MercadoPagoToken,
		ActorID:           actorOf(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) Dashboard(c *gin.Context) {
	out, err := h.dashboard.Execute(
		c.Request.Context(),
		c.Param("slug"),
		ucShop.Range(c.DefaultQuery("range", string(ucShop.RangeMonth))),
		c.Query("branch"),
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// UploadLogo expects the image in the multipart field "logo".
func (h *BarbershopHandler) UploadLogo(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, assets.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Falta la imagen.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagen inválida.")
		return
	}
	defer f.Close()

	url, err := h.logo.Execute(c.Request.Context(), c.Param("slug"), actorOf(c), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo": url})
}
