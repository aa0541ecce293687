package handlers

import (
	"weatherapi/internal/middleware"
	"weatherapi/internal/models"
	"weatherapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for the user resource.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers the user routes on the authenticated /users group.
func (h *UserHandler) RegisterRoutes(userRoutes fiber.Router) {
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/show/:id", h.HandleGetUser)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Put("/update/:id", h.HandleUpdateUser)
	userRoutes.Delete("/delete/:id", h.HandleDeleteUser)
}

// HandleListUsers retrieves all users.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":    models.Summaries(users),
		"message": "Users retrieved successfully",
	})
}

// HandleGetUser retrieves a single user by its ID.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":    user.Detail(),
		"message": "User retrieved successfully",
	})
}

// HandleCreateUser creates a user without issuing a token.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		log.Debug().Err(err).Msg("Error parsing create user request body")
		return errorJSON(c, fiber.StatusUnprocessableEntity, msgInvalidBody)
	}

	user, err := h.userService.Create(input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    user.Summary(),
		"message": "User created successfully",
	})
}

// HandleUpdateUser updates the authenticated user's own profile.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var input models.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		// Existence and ownership are still checked first; an empty input then fails validation.
		log.Debug().Err(err).Msg("Error parsing update user request body")
		input = models.UpdateUserInput{}
	}

	user, err := h.userService.Update(middleware.CurrentUserID(c), c.Params("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":    user.Summary(),
		"message": "User updated successfully",
	})
}

// HandleDeleteUser deletes the authenticated user's own account.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.userService.Delete(middleware.CurrentUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
