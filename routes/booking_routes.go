package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oggotrip/oggo-backend/handlers"
	"github.com/oggotrip/oggo-backend/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Public checkout: guests book and pay without an account. The
	// confirmation endpoint is polled by the redirect page, which carries
	// no token either.
	public := api.Group("/bookings")
	public.Post("/payment", handlers.CreateBookingWithPayment)
	public.Get("/payment/confirmation", handlers.ConfirmBookingPayment)

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Get("/me/stats", handlers.GetMyBookingStats)
	booking.Post("", handlers.CreateBooking)
	booking.Get("/:id", handlers.GetBooking)
	booking.Put("/:id", handlers.UpdateBooking)
	booking.Post("/:id/cancel", handlers.CancelBooking)

	admin := api.Group("/admin/bookings", middleware.Protected(), middleware.AdminRequired())
	admin.Get("", handlers.ListAllBookings)
	admin.Get("/stats", handlers.GetBookingStats)
	admin.Patch("/:id/status", handlers.UpdateBookingStatus)
	admin.Delete("/:id", handlers.DeleteBooking)
}
