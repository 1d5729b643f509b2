package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/maccam68/caredesk/internal/config"
	"github.com/maccam68/caredesk/internal/database"
	"github.com/maccam68/caredesk/internal/handlers"
	"github.com/maccam68/caredesk/internal/middleware"
	"github.com/maccam68/caredesk/internal/types"

	_ "github.com/maccam68/caredesk/docs/api" // Swagger docs
)

// @title CareDesk API
// @version 1.0.0
// @description Residential care home administration service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/maccam68/caredesk

// @license.name MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name caredesk_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the master account and starter compliance sections
	if cfg.SeedMaster {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("caredesk")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db}
	usersHandler := &handlers.UsersHandler{DB: db}
	staffHandler := &handlers.StaffHandler{DB: db}
	trainingHandler := &handlers.TrainingHandler{DB: db}
	supervisionsHandler := &handlers.SupervisionsHandler{DB: db}
	mfhHandler := &handlers.MFHHandler{DB: db}
	complianceHandler := &handlers.ComplianceHandler{DB: db}
	settingsHandler := &handlers.SettingsHandler{DB: db}
	dashboardHandler := &handlers.DashboardHandler{DB: db}
	reportsHandler := &handlers.ReportsHandler{DB: db}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}

	requireUser := middleware.RequireUser(db)
	requireAdmin := middleware.RequireAdmin(db)

	// Public routes
	api.Get("/health", healthHandler.Check)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)

	// Session routes
	api.Get("/auth/me", requireUser, authHandler.Me)

	// User administration (admin only)
	api.Get("/users", requireAdmin, usersHandler.List)
	api.Post("/users", requireAdmin, usersHandler.Create)
	api.Put("/users/:id", requireAdmin, usersHandler.Update)
	api.Delete("/users/:id", requireAdmin, usersHandler.Delete)

	// Staff records
	api.Get("/staff/stats", requireUser, staffHandler.Stats)
	api.Get("/staff", requireUser, staffHandler.List)
	api.Get("/staff/:id", requireUser, staffHandler.Get)
	api.Post("/staff", requireUser, staffHandler.Create)
	api.Put("/staff/:id", requireUser, staffHandler.Update)
	api.Post("/staff/:id/toggle-status", requireUser, staffHandler.ToggleStatus)
	api.Delete("/staff/:id", requireAdmin, staffHandler.Delete)

	// Training modules and allocations
	api.Get("/training/stats", requireUser, trainingHandler.Stats)
	api.Get("/training/modules", requireUser, trainingHandler.ListModules)
	api.Get("/training/modules/:id", requireUser, trainingHandler.GetModule)
	api.Post("/training/modules", requireUser, trainingHandler.CreateModule)
	api.Put("/training/modules/:id", requireUser, trainingHandler.UpdateModule)
	api.Delete("/training/modules/:id", requireAdmin, trainingHandler.DeleteModule)
	api.Get("/training/allocations", requireUser, trainingHandler.ListAllocations)
	api.Post("/training/allocations", requireUser, trainingHandler.SaveAllocation)
	api.Delete("/training/allocations/:staffId/:moduleId", requireUser, trainingHandler.DeleteAllocation)

	// Supervision sessions
	api.Get("/supervisions/stats", requireUser, supervisionsHandler.Stats)
	api.Get("/supervisions", requireUser, supervisionsHandler.List)
	api.Get("/supervisions/:id", requireUser, supervisionsHandler.Get)
	api.Post("/supervisions", requireUser, supervisionsHandler.Create)
	api.Put("/supervisions/:id", requireUser, supervisionsHandler.Update)
	api.Delete("/supervisions/:id", requireAdmin, supervisionsHandler.Delete)

	// Missing-from-home reports
	api.Get("/mfh/stats", requireUser, mfhHandler.Stats)
	api.Get("/mfh", requireUser, mfhHandler.List)
	api.Get("/mfh/:id", requireUser, mfhHandler.Get)
	api.Post("/mfh", requireUser, mfhHandler.Create)
	api.Put("/mfh/:id", requireUser, mfhHandler.Update)
	api.Post("/mfh/:id/return", requireUser, mfhHandler.MarkReturned)
	api.Delete("/mfh/:id", requireAdmin, mfhHandler.Delete)

	// Compliance checklist
	api.Get("/compliance/stats", requireUser, complianceHandler.Stats)
	api.Get("/compliance", requireUser, complianceHandler.List)
	api.Get("/compliance/:id", requireUser, complianceHandler.Get)
	api.Post("/compliance", requireUser, complianceHandler.Create)
	api.Put("/compliance/:id", requireUser, complianceHandler.Update)
	api.Delete("/compliance/:id", requireAdmin, complianceHandler.Delete)

	// Settings (admin only)
	api.Get("/settings", requireUser, settingsHandler.Get)
	api.Put("/settings", requireAdmin, settingsHandler.Save)
	api.Get("/settings/export", requireAdmin, settingsHandler.Export)
	api.Post("/settings/import", requireAdmin, settingsHandler.Import)

	// Dashboard and reports
	api.Get("/dashboard", requireUser, dashboardHandler.Summary)
	api.Get("/reports/training/:type/csv", requireUser, reportsHandler.TrainingCSV)
	api.Get("/reports/training/:type/xlsx", requireUser, reportsHandler.TrainingXLSX)
	api.Get("/reports/training/:type", requireUser, reportsHandler.Training)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check for service errors carrying their own code and type
	var reqErr *types.RequestError
	if errors.As(err, &reqErr) {
		code = reqErr.Code
		message = reqErr.Message
		errorType = reqErr.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
