package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotworks/booking-app/controllers"
	"github.com/slotworks/booking-app/middleware"
)

// SetupAvailabilityRoutes configures the provider schedule routes.
func SetupAvailabilityRoutes(app *fiber.App, availability *controllers.AvailabilityController, jwtSecret string) {
	group := app.Group("/availability", middleware.Protected(jwtSecret))
	group.Get("/", availability.GetRules)
	group.Put("/", availability.UpsertRules)
}
