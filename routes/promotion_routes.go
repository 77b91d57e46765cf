package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oggotrip/oggo-backend/handlers"
	"github.com/oggotrip/oggo-backend/middleware"
)

func PromotionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/promotions", handlers.ListPromotions)

	admin := api.Group("/admin/promotions", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreatePromotion)
	admin.Put("/:id", handlers.UpdatePromotion)
	admin.Delete("/:id", handlers.DeletePromotion)
}
