package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oggotrip/oggo-backend/handlers"
	"github.com/oggotrip/oggo-backend/middleware"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin/users", middleware.Protected(), middleware.AdminRequired())
	admin.Get("", handlers.ListUsers)
	admin.Get("/stats", handlers.GetUserStats)
	admin.Post("", handlers.CreateUser)
	admin.Get("/:id", handlers.GetUser)
	admin.Put("/:id", handlers.UpdateUser)
	admin.Post("/:id/deactivate", handlers.DeactivateUser)
	admin.Delete("/:id", handlers.DeleteUser)
}
