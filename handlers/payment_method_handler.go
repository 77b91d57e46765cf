package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/middleware"
	"github.com/oggotrip/oggo-backend/models"
	"gorm.io/gorm"
)

type PaymentMethodRequest struct {
	PaymentMethodID string  `json:"paymentMethodId" validate:"required"`
	Provider        string  `json:"provider" validate:"omitempty,oneof=revolut"`
	Type            string  `json:"type" validate:"omitempty,oneof=card"`
	CardBrand       *string `json:"cardBrand,omitempty"`
	Last4           *string `json:"last4,omitempty" validate:"omitempty,len=4"`
	ExpiryMonth     *string `json:"expiryMonth,omitempty"`
	ExpiryYear      *string `json:"expiryYear,omitempty"`
	IsDefault       bool    `json:"isDefault"`
	Nickname        *string `json:"nickname,omitempty"`
}

func ListPaymentMethods(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var methods []models.PaymentMethod
	if err := database.DB.Where("user_id = ?", userID).Order("is_default DESC, added_at DESC").Find(&methods).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payment methods"})
	}
	return c.JSON(fiber.Map{"paymentMethods": methods})
}

// AddPaymentMethod saves a tokenized card reference. The first method a
// user saves becomes their default automatically.
func AddPaymentMethod(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req PaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing int64
	database.DB.Model(&models.PaymentMethod{}).Where("user_id = ?", userID).Count(&existing)

	method := models.PaymentMethod{
		UserID:          userID,
		PaymentMethodID: req.PaymentMethodID,
		CardBrand:       req.CardBrand,
		Last4:           req.Last4,
		ExpiryMonth:     req.ExpiryMonth,
		ExpiryYear:      req.ExpiryYear,
		IsDefault:       req.IsDefault || existing == 0,
		Nickname:        req.Nickname,
	}
	if req.Provider != "" {
		method.Provider = req.Provider
	} else {
		method.Provider = "revolut"
	}
	if req.Type != "" {
		method.Type = req.Type
	} else {
		method.Type = "card"
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if method.IsDefault {
			if err := tx.Model(&models.PaymentMethod{}).Where("user_id = ?", userID).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&method).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save payment method"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Payment method added", "paymentMethod": method})
}

// SetDefaultPaymentMethod flips the default flag atomically: exactly one
// method per user is default afterwards.
func SetDefaultPaymentMethod(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment method id"})
	}

	var method models.PaymentMethod
	if err := database.DB.First(&method, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment method not found"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PaymentMethod{}).Where("user_id = ?", userID).Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&method).Update("is_default", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update default payment method"})
	}

	method.IsDefault = true
	return c.JSON(fiber.Map{"message": "Default payment method updated", "paymentMethod": method})
}

// RemovePaymentMethod deletes a saved card; if it was the default, the most
// recently added remaining method takes over.
func RemovePaymentMethod(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment method id"})
	}

	var method models.PaymentMethod
	if err := database.DB.First(&method, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment method not found"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&method).Error; err != nil {
			return err
		}
		if method.IsDefault {
			var next models.PaymentMethod
			if err := tx.Where("user_id = ?", userID).Order("added_at DESC").First(&next).Error; err == nil {
				return tx.Model(&next).Update("is_default", true).Error
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove payment method"})
	}

	return c.JSON(fiber.Map{"message": "Payment method removed"})
}
