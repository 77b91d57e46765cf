package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	config "github.com/oggotrip/oggo-backend/configs"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/middleware"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/services"
)

// SyncDuffelOrders rebuilds the local booking mirror from Duffel. Admin
// only, destructive, and synchronous: the response carries the counts.
func SyncDuffelOrders(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	pageLimit := c.QueryInt("limit", 50)
	after := c.Query("after")

	client := services.NewDuffelClient(config.LoadDuffelConfig())
	syncService := services.NewDuffelSyncService(client)

	result, err := syncService.SyncOrders(&userID, pageLimit, after)
	if err != nil {
		log.Printf("🔥 Duffel sync failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to sync orders from Duffel"})
	}

	log.Printf("✅ Duffel sync complete: %d fetched, %d bookings rebuilt", result.TotalFetched, result.BookingsCreated)
	return c.JSON(fiber.Map{
		"message": "Duffel sync complete",
		"result":  result,
	})
}

// ListDuffelOrders pages through the mirrored order rows.
func ListDuffelOrders(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	database.DB.Model(&models.DuffelOrder{}).Count(&total)

	var orders []models.DuffelOrder
	if err := database.DB.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch orders"})
	}

	return c.JSON(fiber.Map{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}
