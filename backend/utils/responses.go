package utils

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Success writes data with the given status.
func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Created writes a 201 response.
func Created(c *fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, data)
}

// NoContent writes a 204 response.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Error writes {"error": message} with optional details.
func Error(c *fiber.Ctx, status int, message string, details ...interface{}) error {
	response := ErrorResponse{Error: message}
	if len(details) > 0 {
		response.Details = details[0]
	}
	return c.Status(status).JSON(response)
}

func BadRequest(c *fiber.Ctx, message string, details ...interface{}) error {
	return Error(c, fiber.StatusBadRequest, message, details...)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// InternalServerError logs the cause and hides it from the caller.
func InternalServerError(c *fiber.Ctx, logger *log.Logger, message string, cause error) error {
	if logger != nil {
		logger.Printf("%s %s: %s: %v", c.Method(), c.Path(), message, cause)
	}
	return Error(c, fiber.StatusInternalServerError, message)
}

// ValidationError renders validator.ValidationErrors as a field -> tag map.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return BadRequest(c, "Validation error", err.Error())
	}

	details := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return BadRequest(c, "Validation error", details)
}

// OversizedBodyReason is reported when the server drops a body above its
// limit before any handler runs.
const OversizedBodyReason = "File too large: request body exceeds the upload limit"

// FiberErrorHandler renders errors returned from handlers and middleware in
// the same shape as the helpers above.
func FiberErrorHandler(logger *log.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code == fiber.StatusRequestEntityTooLarge {
				return BadRequest(c, "File upload error", OversizedBodyReason)
			}
			return Error(c, fe.Code, fe.Message)
		}
		return InternalServerError(c, logger, "Internal server error", err)
	}
}
