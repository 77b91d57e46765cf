package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oggotrip/oggo-backend/handlers"
	"github.com/oggotrip/oggo-backend/middleware"
)

func PaymentMethodRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	methods := api.Group("/payment-methods", middleware.Protected())
	methods.Get("", handlers.ListPaymentMethods)
	methods.Post("", handlers.AddPaymentMethod)
	methods.Post("/:id/default", handlers.SetDefaultPaymentMethod)
	methods.Delete("/:id", handlers.RemovePaymentMethod)
}
