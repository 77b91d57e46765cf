package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oggotrip/oggo-backend/handlers"
	"github.com/oggotrip/oggo-backend/middleware"
)

func ReferralRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	referrals := api.Group("/referrals", middleware.Protected())
	referrals.Get("/code", handlers.GetReferralCode)
	referrals.Post("/invite", handlers.SendReferralInvites)
}
