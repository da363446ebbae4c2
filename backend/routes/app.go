package routes

import (
	"log"
	"strings"

	"examprep/backend/config"
	"examprep/backend/middleware"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// BodyLimit sits above storage.MaxUploadSize so that slightly oversized
// files still reach upload validation and get a descriptive 400.
const BodyLimit = 16 * 1024 * 1024

// NewApp builds the Fiber app with the global middleware stack but no routes.
func NewApp(cfg *config.Config, logger *log.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "examprep",
		BodyLimit:    BodyLimit,
		ErrorHandler: utils.FiberErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins(cfg.AllowedOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(middleware.LoggingMiddleware(logger))
	app.Use(compress.New())

	return app
}

func allowedOrigins(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "*"
	}
	return value
}
