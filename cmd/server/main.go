package main

import (
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
	"github.com/localnerve/animgen/internal/clients"
	"github.com/localnerve/animgen/internal/config"
	"github.com/localnerve/animgen/internal/database"
	"github.com/localnerve/animgen/internal/handlers"
	"github.com/localnerve/animgen/internal/middleware"
	"github.com/localnerve/animgen/internal/types"

	_ "github.com/localnerve/animgen/docs/api" // Swagger docs
)

// @title AnimGen API
// @version 1.0.0
// @description Go Fiber backend for chat-driven mathematical animation generation
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/animgen
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

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

	// External service clients
	serviceTimeout := time.Duration(cfg.ServiceTimeout) * time.Second
	generator := clients.NewGenerationClient(cfg.GenAPIURL, cfg.GenModel, serviceTimeout)
	renderer := clients.NewRenderClient(cfg.RenderAPIURL, serviceTimeout)
	completions := clients.NewCompletionClient(cfg.ChatAPIURL, cfg.ChatModel, cfg.ChatAPIKey, serviceTimeout)

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
	prometheus := fiberprometheus.New("animgen")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// All routes require user authentication
	api.Use(middleware.AuthUser(cfg, db))

	// Create handlers
	sessionHandler := &handlers.SessionHandler{DB: db}
	messageHandler := &handlers.MessageHandler{DB: db}
	videoHandler := &handlers.VideoHandler{DB: db}
	chatHandler := &handlers.ChatHandler{DB: db, Completions: completions}
	animationHandler := &handlers.AnimationHandler{DB: db, Generator: generator, Renderer: renderer}

	// Session routes
	api.Post("/session", sessionHandler.CreateSession)
	api.Get("/session", sessionHandler.GetSessions)
	api.Delete("/session", sessionHandler.DeleteSessions)
	api.Patch("/session", sessionHandler.LinkSessionVideo)

	// Message routes
	api.Post("/message", messageHandler.CreateMessage)
	api.Get("/message", messageHandler.GetMessages)

	// Video routes
	api.Post("/video", videoHandler.CreateVideo)
	api.Get("/video", videoHandler.GetVideos)
	api.Patch("/video", videoHandler.UpdateVideo)

	// Chat routes
	api.Post("/chat", chatHandler.Chat)
	api.Get("/chat", chatHandler.GetChatHistory)

	// Animation routes
	api.Post("/animation", animationHandler.GenerateAnimation)
	api.Get("/animation/:videoId", animationHandler.GetAnimationStatus)

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

	// Authorizer is initialized lazily by the auth middleware
	log.Printf("Authorizer will be initialized on first authenticated request")

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

	// Check if it's a middleware error
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
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
