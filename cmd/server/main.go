// main.go
//
// Multi-persona portfolio content service and server-rendered site
// Copyright (c) 2026 Persona Folio <hello@personafol.io> (https://personafol.io)
//
// This file is part of personafolio.
// personafolio is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// personafolio is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with personafolio.
// If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
	"github.com/personafol/personafolio/internal/cms"
	"github.com/personafol/personafolio/internal/config"
	"github.com/personafol/personafolio/internal/handlers"
	"github.com/personafol/personafolio/internal/middleware"
	"github.com/personafol/personafolio/internal/models"
	"github.com/personafol/personafolio/internal/types"
	"github.com/personafol/personafolio/internal/utils"
	"github.com/personafol/personafolio/views"

	_ "github.com/personafol/personafolio/docs/api" // Swagger docs
)

// @title Persona Folio API
// @version 1.0.0
// @description Multi-persona portfolio content service
// @termsOfService http://swagger.io/terms/

// @contact.name Persona Folio
// @contact.url https://personafol.io
// @contact.email hello@personafol.io

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name folio_session

func main() {
	// .env is a development convenience; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// The content client initializes lazily on the first request; a failed
	// database at boot only fails requests until it recovers.
	accessor := cms.NewDefaultAccessor(cfg)

	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	engine.AddFunc("formatDate", utils.FormatAnyDate)
	engine.AddFunc("formatDateRange", utils.FormatAnyDateRange)
	engine.AddFunc("truncate", utils.Truncate)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
		BodyLimit:             25 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.PublicURL,
		AllowCredentials: true,
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("personafolio")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Handlers
	pageHandler := &handlers.PageHandler{CMS: accessor}
	apiHandler := &handlers.APIHandler{CMS: accessor}
	authHandler := &handlers.AuthHandler{CMS: accessor}
	mediaHandler := &handlers.MediaHandler{CMS: accessor}
	healthHandler := &handlers.HealthHandler{CMS: accessor}

	// Health
	app.Get("/health", healthHandler.Check)

	// Server-rendered site
	app.Get("/", pageHandler.Home)
	app.Get("/persona/:slug", pageHandler.Persona)
	app.Get("/projects/:slug", pageHandler.Project)
	app.Get("/content/:slug", pageHandler.Content)

	// Uploaded media
	app.Static("/uploads", cfg.UploadDir)

	// API routes under /api
	api := app.Group("/api")

	// Session routes
	api.Post("/users/login", authHandler.Login)
	api.Post("/users/logout", authHandler.Logout)
	api.Get("/users/me", middleware.OptionalAuth(cfg.Secret), authHandler.Me)

	// Media upload (editors and admins)
	api.Post("/media", middleware.RequireRole(cfg.Secret, models.RoleAdmin, models.RoleEditor), mediaHandler.Upload)

	// Collection passthrough (public reads scope to published content;
	// mutations require an editor or admin session)
	api.Get("/:collection", middleware.OptionalAuth(cfg.Secret), apiHandler.ListDocs)
	api.Get("/:collection/:id", middleware.OptionalAuth(cfg.Secret), apiHandler.GetDoc)
	api.Post("/:collection", middleware.RequireRole(cfg.Secret, models.RoleAdmin, models.RoleEditor), apiHandler.CreateDoc)
	api.Patch("/:collection/:id", middleware.RequireRole(cfg.Secret, models.RoleAdmin, models.RoleEditor), apiHandler.UpdateDoc)
	api.Delete("/:collection/:id", middleware.RequireRole(cfg.Secret, models.RoleAdmin, models.RoleEditor), apiHandler.DeleteDoc)

	// 404 handler: JSON for the API, rendered page for the site
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":    fiber.StatusNotFound,
				"message":   "[404] Resource Not Found",
				"ok":        false,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"url":       c.OriginalURL(),
			})
		}
		return pageHandler.NotFound(c)
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

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

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
	}

	if strings.HasPrefix(c.Path(), "/api") || strings.HasPrefix(c.Path(), "/health") {
		return c.Status(code).JSON(fiber.Map{
			"status":    code,
			"message":   message,
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	}

	log.Printf("Unhandled error on %s: %v", c.OriginalURL(), err)
	return c.Status(code).Render("error", fiber.Map{
		"Title": "Something went wrong",
	}, "layouts/main")
}
