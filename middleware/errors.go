package middleware

import (
	"errors"

	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// ServiceErrorResponse maps service sentinel errors onto HTTP statuses:
// not found 404, unauthorized 403, conflict 409, invalid input 400.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidInput):
		status = fiber.StatusBadRequest
	}

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "Something went wrong!"
	}
	return JsonResponse(c, status, false, message, nil)
}
