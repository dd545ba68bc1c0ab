package routes

import (
	"time"

	"olympia-api/internal/adapters/http/handlers"
	"olympia-api/internal/adapters/http/middleware"
	"olympia-api/internal/config"
	"olympia-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles the core services the routes expose
type Services struct {
	Auth          *services.AuthService
	Applications  *services.ApplicationService
	Lookups       *services.LookupService
	Reports       *services.ReportService
	BulkUpdates   *services.BulkUpdateService
	Users         *services.UserService
	Reset         *services.ResetService
	Announcements *services.AnnouncementService
	CommonCodes   *services.CommonCodeService
	DailyReport   *services.DailyReportService

	// HealthChecks maps a dependency name to its probe
	HealthChecks map[string]handlers.HealthCheckFunc
	// Gatherer serves /metrics; nil uses the default registry
	Gatherer prometheus.Gatherer
}

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, svc *Services) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, svc.HealthChecks)
	authHandler := handlers.NewAuthHandler(svc.Auth)
	applicationHandler := handlers.NewApplicationHandler(svc.Applications)
	lookupHandler := handlers.NewLookupHandler(svc.Lookups)
	reportHandler := handlers.NewReportHandler(svc.Reports, svc.BulkUpdates)
	userHandler := handlers.NewUserHandler(svc.Users, svc.Reset)
	announcementHandler := handlers.NewAnnouncementHandler(svc.Announcements)
	commonCodeHandler := handlers.NewCommonCodeHandler(svc.CommonCodes)
	dailyReportHandler := handlers.NewDailyReportHandler(svc.DailyReport)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus metrics
	gatherer := svc.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	auth := middleware.AuthMiddleware(svc.Auth)
	adminOnly := middleware.AdminOnly(svc.Auth)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/signup", middleware.AuthRateLimiter(), authHandler.SignUp)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Get("/me", auth, authHandler.Me)

	// Public announcements
	apiV1.Get("/announcements", middleware.NoCacheHeaders(), announcementHandler.ListPublic)
	apiV1.Get("/common-codes", commonCodeHandler.ListPublic)

	// Applicant routes (authenticated)
	apiV1.Get("/lookup-options", auth, middleware.CacheControl(5*time.Minute), lookupHandler.Options)
	apiV1.Get("/my-applications", auth, applicationHandler.MyApplications)

	applicationRoutes := apiV1.Group("/applications", auth)
	applicationRoutes.Get("/", applicationHandler.List)
	applicationRoutes.Post("/", applicationHandler.Create)
	applicationRoutes.Get("/:id", applicationHandler.Get)
	applicationRoutes.Put("/:id/persons", applicationHandler.SavePersons)

	// Admin check only needs a valid token
	apiV1.Get("/admin/check", auth, authHandler.AdminCheck)

	// Admin routes
	adminRoutes := apiV1.Group("/admin", auth, adminOnly)
	setupAdminRoutes(adminRoutes, reportHandler, lookupHandler, userHandler, announcementHandler, commonCodeHandler, dailyReportHandler)
}

// setupAdminRoutes configures admin routes
func setupAdminRoutes(
	router fiber.Router,
	reportHandler *handlers.ReportHandler,
	lookupHandler *handlers.LookupHandler,
	userHandler *handlers.UserHandler,
	announcementHandler *handlers.AnnouncementHandler,
	commonCodeHandler *handlers.CommonCodeHandler,
	dailyReportHandler *handlers.DailyReportHandler,
) {
	router.Use(middleware.NoCacheHeaders())

	// Application grid
	router.Get("/applications", reportHandler.ListApplications)
	router.Patch("/applications", reportHandler.PatchApplications)
	router.Post("/bulk-update-examine-number", reportHandler.BulkUpdateExamineNumber)

	// Contact list
	router.Get("/contact-list", reportHandler.ContactList)
	router.Patch("/contact-list", reportHandler.PatchContactList)

	// Lookup options (every category)
	router.Get("/lookup-options", lookupHandler.Options)

	// Users
	router.Get("/users", userHandler.List)
	router.Post("/users/reset", middleware.StrictRateLimiter(), userHandler.Reset)
	router.Put("/users/:id", userHandler.Update)

	// Announcements
	router.Get("/announcements", announcementHandler.ListAll)
	router.Post("/announcements", announcementHandler.Create)
	router.Put("/announcements/:id", announcementHandler.Update)
	router.Delete("/announcements/:id", announcementHandler.Delete)

	// Common codes
	router.Get("/common-codes", commonCodeHandler.ListAll)
	router.Post("/common-codes", commonCodeHandler.Create)
	router.Put("/common-codes/:id", commonCodeHandler.Update)
	router.Delete("/common-codes/:id", commonCodeHandler.Delete)

	// Daily report
	router.Get("/daily-report", dailyReportHandler.Preview)
	router.Post("/daily-report/run", dailyReportHandler.Run)
}
