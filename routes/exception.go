package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotworks/booking-app/controllers"
	"github.com/slotworks/booking-app/middleware"
)

// SetupExceptionRoutes configures the closure window routes.
func SetupExceptionRoutes(app *fiber.App, exceptions *controllers.ExceptionController, jwtSecret string) {
	group := app.Group("/exceptions", middleware.Protected(jwtSecret))
	group.Get("/", exceptions.ListExceptions)
	group.Post("/", exceptions.CreateException)
	group.Delete("/:id", exceptions.DeleteException)
}
