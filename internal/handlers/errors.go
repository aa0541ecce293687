package handlers

import (
	"errors"

	"weatherapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	msgInvalidBody        = "Invalid request body"
	msgInvalidCredentials = "Invalid email or password"
	msgUnauthorized       = "Unauthorized"
	msgUserNotFound       = "User not found"
	msgNoCity             = "City not set for user"
)

// errorJSON writes the shared {"error": "..."} envelope.
func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// respondError maps a service error to its HTTP status and message.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr *services.ValidationError
		forbiddenErr  *services.ForbiddenError
		providerErr   *services.ProviderError
		fetchErr      *services.FetchError
	)

	switch {
	case errors.As(err, &validationErr):
		return errorJSON(c, fiber.StatusUnprocessableEntity, validationErr.Message)
	case errors.Is(err, services.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrExpiredToken):
		return errorJSON(c, fiber.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, services.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, msgUserNotFound)
	case errors.As(err, &forbiddenErr):
		return errorJSON(c, fiber.StatusForbidden, forbiddenErr.Error())
	case errors.Is(err, services.ErrNoCityConfigured):
		return errorJSON(c, fiber.StatusBadRequest, msgNoCity)
	case errors.As(err, &providerErr):
		return errorJSON(c, providerErr.StatusCode, providerErr.Message)
	case errors.As(err, &fetchErr):
		log.Error().Err(fetchErr.Err).Str("path", c.Path()).Msg("Weather provider unreachable")
		return errorJSON(c, fiber.StatusInternalServerError, fetchErr.Error())
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("Unexpected error")
	return errorJSON(c, fiber.StatusInternalServerError, "Unexpected error: "+err.Error())
}

// ErrorHandler renders errors that escape handlers (unknown routes, framework errors)
// in the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return errorJSON(c, fiberErr.Code, fiberErr.Message)
	}
	return respondError(c, err)
}
