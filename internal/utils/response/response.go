package response

import (
	"errors"
	"log"

	apperrors "feecalc/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// ValidationError reports every offending field at once.
func ValidationError(c *fiber.Ctx, message string, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  message,
		"code":   apperrors.CodeInvalidInput,
		"fields": fields,
	})
}

// FromError maps a domain error onto its HTTP status. Anything that is not a
// DomainError is logged and hidden behind a generic 500.
func FromError(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return ServerError(c, "Internal server error")
	}

	switch de.Code {
	case apperrors.CodeInvalidInput:
		return ValidationError(c, de.Message, de.Fields)
	case apperrors.CodeNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": de.Message, "code": de.Code})
	default:
		log.Printf("%s on %s %s: %v", de.Code, c.Method(), c.Path(), de)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": de.Message, "code": de.Code})
	}
}
