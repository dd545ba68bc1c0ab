package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"olympia-api/internal/adapters/cache"
	"olympia-api/internal/adapters/http/handlers"
	"olympia-api/internal/adapters/http/middleware"
	"olympia-api/internal/adapters/http/routes"
	"olympia-api/internal/adapters/identity"
	"olympia-api/internal/adapters/notify"
	"olympia-api/internal/adapters/persistence/memory"
	"olympia-api/internal/adapters/persistence/models"
	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/config"
	"olympia-api/internal/core/services"
	"olympia-api/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"

	_ "olympia-api/docs" // Swagger docs
)

// @title Bible Olympiad API
// @version 1.0
// @description 전국 바이블 올림피아드 신청 관리 API

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the ID token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	healthChecks := map[string]handlers.HealthCheckFunc{}

	// Store and principals
	var (
		store      *repositories.Store
		principals identity.PrincipalRepository
	)
	switch cfg.StoreDriver {
	case "memory":
		store = memory.NewStore().Repositories()
		principals = identity.NewMemoryPrincipals()
		log.Println("⚠️ Using in-memory store, data is lost on restart")
	default:
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer config.CloseDatabase()

		if err := models.AutoMigrate(db); err != nil {
			log.Fatalf("❌ Failed to auto migrate: %v", err)
		}
		log.Println("✅ Database migration completed")

		store = repositories.NewGormStore(db)
		principals = identity.NewGormPrincipals(db)
		healthChecks["database"] = config.HealthCheck
	}

	idp := identity.NewLocalProvider(principals, identity.Options{
		Secret:          cfg.JWT.Secret,
		Issuer:          cfg.JWT.Issuer,
		AccessTokenMins: cfg.JWT.AccessTokenMins,
	})

	// Optional lookup option cache
	var optionCache services.LookupOptionCache
	redisClient, err := cache.NewClient(cfg.Redis)
	if err != nil {
		log.Printf("⚠️ Redis unavailable, lookup cache disabled: %v", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		optionCache = cache.NewLookupOptionCache(redisClient)
		healthChecks["redis"] = redisClient.Health
		log.Println("✅ Redis lookup cache enabled")
	}

	// Optional mailer
	var notifier services.Notifier
	if mailer := notify.NewSMTPMailer(cfg.SMTP); mailer != nil {
		notifier = mailer
		log.Printf("📧 SMTP mailer ready [%s:%d]", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		log.Println("⚠️ SMTP not configured, daily report mails are skipped")
	}

	// Seed lookup codes and the development admin
	if err := config.NewSeeder(store, idp, cfg).Run(ctx); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Initialize services
	m := metrics.New()
	loc := cfg.Report.Location()

	lookupService := services.NewLookupService(store.Lookups, optionCache)
	authService := services.NewAuthService(idp, store.Users)
	reportService := services.NewReportService(store, lookupService, m)
	dailyReportService := services.NewDailyReportService(store, notifier, loc, m)

	svc := &routes.Services{
		Auth:          authService,
		Applications:  services.NewApplicationService(store, authService, reportService),
		Lookups:       lookupService,
		Reports:       reportService,
		BulkUpdates:   services.NewBulkUpdateService(store, m),
		Users:         services.NewUserService(store.Users, lookupService, idp, m),
		Reset:         services.NewResetService(store, idp, m),
		Announcements: services.NewAnnouncementService(store.Announcements),
		CommonCodes:   services.NewCommonCodeService(store.CommonCodes),
		DailyReport:   dailyReportService,
		HealthChecks:  healthChecks,
	}

	// Daily report at 08:00 local time
	if cfg.Report.Enabled {
		cronService := services.NewCronService(dailyReportService, cfg.Report.Schedule, loc)
		if err := cronService.Start(); err != nil {
			log.Fatalf("❌ Invalid REPORT_SCHEDULE %q: %v", cfg.Report.Schedule, err)
		}
		defer cronService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Bible Olympiad API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, cfg, svc)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s, STORE: %s]", cfg.Port, cfg.AppMode, cfg.StoreDriver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
