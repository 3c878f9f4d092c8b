package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotworks/booking-app/controllers"
)

// SetupSlotRoutes exposes the public slot calendar.
func SetupSlotRoutes(app *fiber.App, slots *controllers.SlotController) {
	app.Get("/providers/:provider_id/slots", slots.GetSlots)
}
