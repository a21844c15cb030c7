package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hackhub/hackhub/internal/services"
	"github.com/hackhub/hackhub/internal/store"
)

// statusForError maps service and store errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrProjectNotFound),
		errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrAttachmentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrAlreadySubmitted),
		errors.Is(err, store.ErrVersionConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrProjectClosed),
		errors.Is(err, services.ErrEmptyDescription),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidReview),
		errors.Is(err, services.ErrInvalidProject),
		errors.Is(err, services.ErrPastDeadline):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}
