package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/oggotrip/oggo-backend/configs"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/middleware"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/notifications"
	"github.com/oggotrip/oggo-backend/utils"
)

const maxInvitesPerRequest = 5

type ReferralInviteRequest struct {
	Emails []string `json:"emails" validate:"required,min=1"`
}

// GetReferralCode returns the caller's code and shareable signup link.
func GetReferralCode(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if user.ReferralCode == nil {
		code := utils.GenerateReferralCode()
		if err := database.DB.Model(&user).Update("referral_code", code).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign referral code"})
		}
		user.ReferralCode = &code
	}

	return c.JSON(fiber.Map{
		"referralCode": user.ReferralCode,
		"referralLink": referralLink(*user.ReferralCode),
	})
}

// SendReferralInvites mails the caller's referral link to up to five
// addresses per request.
func SendReferralInvites(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req ReferralInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if len(req.Emails) > maxInvitesPerRequest {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("At most %d invites can be sent per request", maxInvitesPerRequest),
		})
	}
	for _, email := range req.Emails {
		if !utils.ValidateEmail(strings.TrimSpace(email)) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email address: " + email})
		}
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if user.ReferralCode == nil {
		code := utils.GenerateReferralCode()
		if err := database.DB.Model(&user).Update("referral_code", code).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign referral code"})
		}
		user.ReferralCode = &code
	}

	link := referralLink(*user.ReferralCode)
	sent := 0
	for _, email := range req.Emails {
		if err := notifications.SendReferralInvite(strings.TrimSpace(email), link, user.FullName()); err != nil {
			log.Printf("🔥 Failed to send referral invite to %s: %v", email, err)
			continue
		}
		sent++
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%d of %d invites sent", sent, len(req.Emails)),
		"sent":    sent,
	})
}

func referralLink(code string) string {
	base := config.Config("FRONTEND_URL")
	if base == "" {
		base = "https://payment.oggotrip.com"
	}
	return strings.TrimRight(base, "/") + "/signup?ref=" + code
}
