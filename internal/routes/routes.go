package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/turnolibre/internal/audit"
	"github.com/BruksfildServices01/turnolibre/internal/auth"
	"github.com/BruksfildServices01/turnolibre/internal/domain/store"
	"github.com/BruksfildServices01/turnolibre/internal/handlers"
	"github.com/BruksfildServices01/turnolibre/internal/infra/assets"
	"github.com/BruksfildServices01/turnolibre/internal/metrics"
	"github.com/BruksfildServices01/turnolibre/internal/middleware"
	ucBooking "github.com/BruksfildServices01/turnolibre/internal/usecase/booking"
	ucClient "github.com/BruksfildServices01/turnolibre/internal/usecase/client"
	ucShop "github.com/BruksfildServices01/turnolibre/internal/usecase/shop"
)

// Deps are the process singletons the routes are built on. Uploader may
// be nil when asset storage is not configured.
type Deps struct {
	Store         store.Store
	Authenticator *auth.Authenticator
	Audit         *audit.Dispatcher
	AuditReader   audit.Reader
	Metrics       *metrics.Collector
	Uploader      assets.Uploader
	Log           logrus.FieldLogger

	// Empty allows every origin.
	AllowedOrigins []string
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// 🧠 USE CASES - BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(d.Store, d.Audit, d.Metrics)
	changeStatusUC := ucBooking.NewChangeStatus(d.Store, d.Audit, d.Metrics, d.Log)
	availabilityUC := ucBooking.NewGetAvailability(d.Store)
	agendaUC := ucBooking.NewListAgenda(d.Store)
	attendantsUC := ucBooking.NewListAttendants(d.Store)
	clientBookingsUC := ucBooking.NewListClientBookings(d.Store)

	// ======================================================
	// 🧠 USE CASES - CLIENTS
	// ======================================================
	listClientsUC := ucClient.NewListClients(d.Store)
	lookupUC := ucClient.NewLookupByPhone(d.Store)
	createClientUC := ucClient.NewCreateClient(d.Store, d.Audit)
	updateClientUC := ucClient.NewUpdateClient(d.Store, d.Audit)
	convertUC := ucClient.NewConvertToRegular(d.Store, d.Audit)
	membershipsUC := ucClient.NewMemberships(d.Store, d.Audit)

	// ======================================================
	// 🧠 USE CASES - SHOPS
	// ======================================================
	provisionUC := ucShop.NewProvision(d.Store, d.Audit)
	updateShopUC := ucShop.NewUpdateShop(d.Store, d.Audit)
	listShopsUC := ucShop.NewListShops(d.Store)
	cloudUC := ucShop.NewCloudStatus(d.Store)
	settingsUC := ucShop.NewUpdateSettings(d.Store, d.Audit)
	dashboardUC := ucShop.NewGetDashboard(d.Store)
	logoUC := ucShop.NewUploadLogo(d.Store, d.Uploader, d.Audit)
	catalogUC := ucShop.NewCatalog(d.Store, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Authenticator)
	meHandler := handlers.NewMeHandler(d.Store)
	publicHandler := handlers.NewPublicHandler(d.Store, availabilityUC, lookupUC, createBookingUC)
	superHandler := handlers.NewSuperAdminHandler(listShopsUC, provisionUC, updateShopUC, cloudUC)
	barbershopHandler := handlers.NewBarbershopHandler(d.Store, settingsUC, dashboardUC, logoUC)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.Store, settingsUC)
	catalogHandler := handlers.NewCatalogHandler(catalogUC)
	bookingHandler := handlers.NewBookingHandler(d.Store, agendaUC, attendantsUC, changeStatusUC)
	clientHandler := handlers.NewClientHandler(
		listClientsUC,
		createClientUC,
		updateClientUC,
		convertUC,
		membershipsUC,
		clientBookingsUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditReader)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		{
			publicAPI.GET("", publicHandler.GetShop)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.GET("/clients/lookup", publicHandler.LookupClient)
			publicAPI.POST("/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login/:slug", authHandler.Login)
		api.POST("/auth/super/login", authHandler.SuperLogin)

		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(d.Authenticator))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)
		}

		// ------------------------------
		// 👑 SUPER ADMIN
		// ------------------------------
		super := secured.Group("/super")
		super.Use(middleware.RequireRole(auth.RoleSuperAdmin))
		{
			super.GET("/shops", superHandler.ListShops)
			super.POST("/shops", superHandler.Provision)
			super.PATCH("/shops/:slug", superHandler.UpdateShop)
			super.GET("/cloud-status", superHandler.CloudStatus)
		}

		// ------------------------------
		// 💈 SHOP (STAFF + ADMIN)
		// ------------------------------
		shop := secured.Group("/shops/:slug")
		shop.Use(middleware.RequireShopAccess())
		{
			shop.GET("/agenda", bookingHandler.Agenda)
			shop.GET("/my-agenda", bookingHandler.MyAgenda)
			shop.GET("/bookings/:id/attendants", bookingHandler.Attendants)
			shop.PATCH("/bookings/:id/status", bookingHandler.ChangeStatus)
		}

		// ------------------------------
		// 🔐 SHOP ADMIN
		// ------------------------------
		admin := shop.Group("")
		admin.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleSuperAdmin))
		{
			admin.GET("", barbershopHandler.Get)
			admin.PATCH("/settings", barbershopHandler.UpdateSettings)
			admin.GET("/dashboard", barbershopHandler.Dashboard)
			admin.POST("/logo", barbershopHandler.UploadLogo)

			admin.GET("/working-hours", workingHoursHandler.Get)
			admin.PUT("/working-hours", workingHoursHandler.Update)

			admin.POST("/branches", catalogHandler.SaveBranch)
			admin.PUT("/branches/:id", catalogHandler.SaveBranch)
			admin.DELETE("/branches/:id", catalogHandler.RemoveBranch)

			admin.POST("/services", catalogHandler.SaveService)
			admin.PUT("/services/:id", catalogHandler.SaveService)
			admin.DELETE("/services/:id", catalogHandler.DeleteService)

			admin.POST("/barbers", catalogHandler.SaveBarber)
			admin.PUT("/barbers/:id", catalogHandler.SaveBarber)
			admin.DELETE("/barbers/:id", catalogHandler.DeleteBarber)

			for path, kind := range map[string]ucShop.StockKind{
				"/inventory":  ucShop.StockInventory,
				"/receptions": ucShop.StockReceptions,
			} {
				admin.POST(path, catalogHandler.SaveStockItem(kind))
				admin.PUT(path+"/:id", catalogHandler.SaveStockItem(kind))
				admin.PUT(path+"/:id/stock", catalogHandler.SetStock(kind))
			}

			admin.POST("/membership-plans", catalogHandler.SavePlan)
			admin.PUT("/membership-plans/:id", catalogHandler.SavePlan)
			admin.PATCH("/membership-plans/:id/active", catalogHandler.SetPlanActive)

			admin.GET("/clients", clientHandler.List)
			admin.GET("/clients.csv", clientHandler.Export)
			admin.POST("/clients", clientHandler.Create)
			admin.PUT("/clients/:id", clientHandler.Update)
			admin.POST("/clients/:id/convert", clientHandler.Convert)
			admin.GET("/clients/:id/bookings", clientHandler.Bookings)
			admin.POST("/clients/:id/membership", clientHandler.AssignMembership)
			admin.DELETE("/clients/:id/membership", clientHandler.CancelMembership)
			admin.POST("/clients/:id/membership/sessions", clientHandler.ConsumeSession)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
