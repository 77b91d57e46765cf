package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/utils"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers is the admin user directory with search and pagination.
func ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := database.DB.Model(&models.User{}).Preload("Role")
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if userType := strings.TrimSpace(c.Query("type")); userType != "" {
		query = query.Where("type = ?", userType)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	profiles := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}

	return c.JSON(fiber.Map{
		"users": profiles,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var user models.User
	if err := database.DB.Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"user": user.Profile()})
}

type CreateUserRequest struct {
	FirstName string  `json:"firstName" validate:"required,min=2"`
	LastName  string  `json:"lastName" validate:"required,min=2"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	Phone     *string `json:"phone,omitempty"`
	Type      string  `json:"type" validate:"omitempty,oneof=customer admin"`
	RoleID    *string `json:"role,omitempty"`
}

// CreateUser lets admins provision accounts directly, skipping OTP
// verification.
func CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	userType := req.Type
	if userType == "" {
		userType = models.UserTypeCustomer
	}
	referralCode := utils.GenerateReferralCode()

	user := models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     string(hashedPassword),
		Phone:        req.Phone,
		Type:         userType,
		ReferralCode: &referralCode,
	}
	if req.RoleID != nil {
		roleID, err := uuid.Parse(*req.RoleID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role id"})
		}
		user.RoleID = &roleID
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created", "user": user.Profile()})
}

type AdminUpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Type      *string `json:"type,omitempty"`
	RoleID    *string `json:"role,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

func UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Type != nil {
		if *req.Type != models.UserTypeCustomer && *req.Type != models.UserTypeAdmin {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type must be customer or admin"})
		}
		updates["type"] = *req.Type
	}
	if req.RoleID != nil {
		roleID, err := uuid.Parse(*req.RoleID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role id"})
		}
		updates["role_id"] = roleID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
		}
	}

	database.DB.Preload("Role").First(&user, "id = ?", id)
	return c.JSON(fiber.Map{"message": "User updated", "user": user.Profile()})
}

// DeactivateUser soft-disables an account instead of deleting it; bookings
// and transactions keep their owner.
func DeactivateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":     false,
		"refresh_token": nil,
	})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate user"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User deactivated"})
}

func DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	result := database.DB.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// GetUserStats powers the admin dashboard header.
func GetUserStats(c *fiber.Ctx) error {
	var total, active, admins, newThisMonth int64

	database.DB.Model(&models.User{}).Count(&total)
	database.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&active)
	database.DB.Model(&models.User{}).Where("type = ?", models.UserTypeAdmin).Count(&admins)

	monthStart := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&models.User{}).Where("created_at >= ?", monthStart).Count(&newThisMonth)

	return c.JSON(fiber.Map{
		"total":        total,
		"active":       active,
		"admins":       admins,
		"newThisMonth": newThisMonth,
	})
}
