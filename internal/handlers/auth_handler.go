package handlers

import (
	"errors"

	"weatherapi/internal/models"
	"weatherapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		log.Debug().Err(err).Msg("Error parsing register request body")
		return errorJSON(c, fiber.StatusUnprocessableEntity, msgInvalidBody)
	}

	user, token, err := h.userService.Register(input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    user.Summary(),
		"token":   token,
		"message": "User registered successfully",
	})
}

// HandleLogin handles user login and issues a JWT token.
// Malformed input is a 400 here rather than the 422 used elsewhere.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		log.Debug().Err(err).Msg("Error parsing login request body")
		return errorJSON(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	user, token, err := h.userService.Login(input)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return errorJSON(c, fiber.StatusBadRequest, validationErr.Message)
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Info().Str("email", input.Email).Msg("Failed login attempt")
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":    user.Summary(),
		"token":   token,
		"message": "Login successful",
	})
}
