package server

import (
	"time"

	"weatherapi/internal/handlers"
	"weatherapi/internal/middleware"
	"weatherapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// Deps are the services the HTTP layer dispatches to.
type Deps struct {
	Users   *services.UserService
	Weather *services.WeatherService
	Tokens  *services.TokenService
}

// New builds the Fiber app with all routes registered.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "weatherapi",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Output: log.Logger,
		Format: "${status} ${method} ${path} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")

	// Public
	handlers.NewAuthHandler(deps.Users).RegisterRoutes(api)

	// Authenticated
	userRoutes := api.Group("/users", middleware.AuthRequired(deps.Tokens))
	handlers.NewWeatherHandler(deps.Users, deps.Weather).RegisterRoutes(userRoutes)
	handlers.NewUserHandler(deps.Users).RegisterRoutes(userRoutes)

	return app
}
