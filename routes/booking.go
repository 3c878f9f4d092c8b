package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotworks/booking-app/controllers"
	"github.com/slotworks/booking-app/middleware"
)

// SetupBookingRoutes configures all booking related routes.
func SetupBookingRoutes(app *fiber.App, bookings *controllers.BookingController, jwtSecret string) {
	booking := app.Group("/bookings", middleware.Protected(jwtSecret))
	booking.Get("/", bookings.ListUpcoming)
	booking.Get("/:id", bookings.GetBooking)
	booking.Post("/", bookings.CreateBooking)
	booking.Patch("/:id/status", bookings.UpdateStatus)
}
