package handlers

import (
	"errors"

	"weatherapi/internal/middleware"
	"weatherapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WeatherHandler serves the weather for the authenticated user's city.
type WeatherHandler struct {
	userService    *services.UserService
	weatherService *services.WeatherService
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(userService *services.UserService, weatherService *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{
		userService:    userService,
		weatherService: weatherService,
	}
}

// RegisterRoutes registers the weather route on the authenticated /users group.
func (h *WeatherHandler) RegisterRoutes(userRoutes fiber.Router) {
	userRoutes.Get("/weather", h.HandleGetWeather)
}

// HandleGetWeather fetches the current weather for the caller's city.
func (h *WeatherHandler) HandleGetWeather(c *fiber.Ctx) error {
	user, err := h.userService.Get(middleware.CurrentUserID(c))
	if err != nil {
		// The token outlived its user.
		if errors.Is(err, services.ErrUserNotFound) {
			return errorJSON(c, fiber.StatusUnauthorized, msgUnauthorized)
		}
		return respondError(c, err)
	}

	snapshot, err := h.weatherService.FetchForUser(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": snapshot,
	})
}
