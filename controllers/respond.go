package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/slotworks/booking-app/errs"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// respondError maps the domain error taxonomy onto HTTP statuses. Validation
// and conflict messages go to the caller verbatim so availability can be
// re-rendered; upstream failures are logged and surfaced generically.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindValidation:
		status = fiber.StatusBadRequest
	case errs.KindNotFound:
		status = fiber.StatusNotFound
	case errs.KindConflict:
		status = fiber.StatusConflict
	case errs.KindAuthorization:
		status = fiber.StatusForbidden
	default:
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(ErrorResponse{Message: errs.Message(err)})
}

// actor pulls the authenticated identity the JWT middleware stored in locals.
func actor(c *fiber.Ctx) (uint, string, bool) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return 0, "", false
	}
	role, ok := c.Locals("role").(string)
	if !ok {
		return 0, "", false
	}
	return userID, role, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Message: "authentication required"})
}

func forbidden(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Message: msg})
}
