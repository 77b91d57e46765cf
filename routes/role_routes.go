package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oggotrip/oggo-backend/handlers"
	"github.com/oggotrip/oggo-backend/middleware"
)

func RoleRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	roles := api.Group("/admin/roles", middleware.Protected(), middleware.AdminRequired())
	roles.Get("", handlers.ListRoles)
	roles.Post("", handlers.CreateRole)
	roles.Get("/:id", handlers.GetRole)
	roles.Put("/:id", handlers.UpdateRole)
	roles.Delete("/:id", handlers.DeleteRole)

	permissions := api.Group("/admin/permissions", middleware.Protected(), middleware.AdminRequired())
	permissions.Get("", handlers.ListPermissions)
	permissions.Post("", handlers.CreatePermission)
	permissions.Get("/:id", handlers.GetPermission)
	permissions.Put("/:id", handlers.UpdatePermission)
	permissions.Delete("/:id", handlers.DeletePermission)
}
