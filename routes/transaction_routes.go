package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oggotrip/oggo-backend/handlers"
	"github.com/oggotrip/oggo-backend/middleware"
)

func TransactionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Create and confirmation are public: payment links are opened and the
	// confirmation page polls after the Revolut redirect, before any login
	// happens.
	api.Post("/transactions", handlers.CreateTransaction)
	api.Get("/transactions/confirmation", handlers.ConfirmTransaction)

	api.Get("/transactions/me", middleware.Protected(), handlers.GetMyPaymentHistory)

	admin := api.Group("/admin/transactions", middleware.Protected(), middleware.AdminRequired())
	admin.Get("", handlers.ListTransactions)
	admin.Get("/:id", handlers.GetTransaction)
	admin.Put("/:id", handlers.UpdateTransaction)
	admin.Delete("/:id", handlers.DeleteTransaction)
}
