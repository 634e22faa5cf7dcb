package app

import (
	"context"
	"fmt"
	"time"

	"donation-api/internal/config"
	"donation-api/internal/database"
	"donation-api/internal/handlers"
	"donation-api/internal/middleware"
	"donation-api/internal/repositories"
	"donation-api/internal/services"
	"donation-api/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// App is the assembled HTTP application.
type App struct {
	Fiber       *fiber.App
	AuthService *services.AuthService
}

// New wires repositories, services and handlers over db and returns the
// Fiber application. events may be nil, in which case domain events are not
// published. When the config names an admin account it is created if missing.
func New(cfg config.Config, db *gorm.DB, events services.EventPublisher) (*App, error) {
	images, err := storage.NewFileStore(cfg.UploadDir, cfg.UploadBaseURL())
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	campaignRepo := repositories.NewGORMCampaignRepository(db)
	donationRepo := repositories.NewGORMDonationRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	accountService := services.NewAccountService(userRepo, events)
	campaignService := services.NewCampaignService(campaignRepo, images, events)
	donationService := services.NewDonationService(donationRepo, events)
	adminService := services.NewAdminService(userRepo, campaignRepo, events)

	if cfg.AdminEmail != "" {
		if err := seedAdmin(authService, cfg); err != nil {
			return nil, err
		}
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	campaignHandler := handlers.NewCampaignHandler(campaignService, int64(cfg.MaxUploadBytes))
	donationHandler := handlers.NewDonationHandler(donationService)
	adminHandler := handlers.NewAdminHandler(adminService)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadBytes + 1<<20,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger())

	app.Static("/uploads", images.BasePath())

	app.Get("/health", func(c *fiber.Ctx) error {
		status, health, dbStatus := fiber.StatusOK, "healthy", "connected"
		if err := database.Ping(db); err != nil {
			log.Warn().Err(err).Msg("health check: database unreachable")
			status, health, dbStatus = fiber.StatusServiceUnavailable, "degraded", "unreachable"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":   health,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"events":   events != nil,
		})
	})

	auth := middleware.AuthRequired(authService)
	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	accountHandler.RegisterRoutes(api, auth)
	campaignHandler.RegisterRoutes(api, auth)
	donationHandler.RegisterRoutes(api, auth)
	adminHandler.RegisterRoutes(api, auth)

	return &App{Fiber: app, AuthService: authService}, nil
}

func seedAdmin(authService *services.AuthService, cfg config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	if created {
		log.Info().Str("email", cfg.AdminEmail).Msg("seeded admin account")
	}
	return nil
}
