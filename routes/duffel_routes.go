package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oggotrip/oggo-backend/handlers"
	"github.com/oggotrip/oggo-backend/middleware"
)

func DuffelRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	duffel := api.Group("/admin/duffel", middleware.Protected(), middleware.AdminRequired())
	duffel.Post("/sync", handlers.SyncDuffelOrders)
	duffel.Get("/orders", handlers.ListDuffelOrders)
}
