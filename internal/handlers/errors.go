package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"talentsync/resume-matcher/internal/logger"
	"talentsync/resume-matcher/internal/services"
)

// ErrorHandler translates the service error taxonomy to HTTP statuses:
// validation failures become 400s, processing failures 500s.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		logger.Warn().Str("path", c.Path()).Str("reason", validationErr.Reason).Msg("request rejected")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Reason,
			"code":  fiber.StatusBadRequest,
		})
	}

	var processingErr *services.ProcessingError
	if errors.As(err, &processingErr) {
		logger.Error().Err(processingErr.Err).Str("stage", processingErr.Stage).Msg("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": processingErr.Error(),
			"code":  fiber.StatusInternalServerError,
		})
	}

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
