package handlers

import (
	"errors"
	"fmt"

	"donation-api/internal/middleware"
	"donation-api/internal/models"
	"donation-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
)

// statusFor maps service failures to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes a service error. Unexpected failures are logged and
// hidden behind a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		return c.Status(status).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": utils.StatusMessage(status),
		"error":   err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// parseAndValidate decodes the request body into req and runs struct
// validation on it. It writes the 400 response itself and returns false when
// the request is rejected.
func parseAndValidate(c *fiber.Ctx, validate *validator.Validate, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		log.Debug().Err(err).Str("path", c.Path()).Msg("error parsing request body")
		return false, badRequest(c, "Invalid request body", err)
	}
	if ok, err := validateStruct(c, validate, req); !ok {
		return false, err
	}
	return true, nil
}

func validateStruct(c *fiber.Ctx, validate *validator.Validate, req interface{}) (bool, error) {
	err := validate.Struct(req)
	if err == nil {
		return true, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, badRequest(c, "Validation failed", err)
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// principal returns the caller stored by middleware.AuthRequired. Routes using
// it are always mounted behind that middleware.
func principal(c *fiber.Ctx) (models.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return p, fmt.Errorf("%w: authentication required", services.ErrUnauthorized)
	}
	return p, nil
}

func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}
