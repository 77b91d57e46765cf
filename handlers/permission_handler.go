package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/models"
)

type SubPermissionRequest struct {
	PermissionName     string `json:"permissionName" validate:"required,min=2"`
	PermissionKey      string `json:"permissionKey" validate:"required,min=2"`
	PermissionSequence int    `json:"permissionSequence"`
}

type PermissionRequest struct {
	PermissionName     string                 `json:"permissionName" validate:"required,min=2"`
	PermissionKey      string                 `json:"permissionKey" validate:"required,min=2"`
	PermissionSequence int                    `json:"permissionSequence"`
	SubPermissions     []SubPermissionRequest `json:"subPermissions"`
	IsActive           *bool                  `json:"isActive,omitempty"`
}

func ListPermissions(c *fiber.Ctx) error {
	var permissions []models.Permission
	if err := database.DB.Preload("SubPermissions").Order("permission_sequence ASC").Find(&permissions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch permissions"})
	}
	return c.JSON(fiber.Map{"permissions": permissions})
}

func GetPermission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid permission id"})
	}

	var permission models.Permission
	if err := database.DB.Preload("SubPermissions").First(&permission, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Permission not found"})
	}
	return c.JSON(fiber.Map{"permission": permission})
}

func CreatePermission(c *fiber.Ctx) error {
	var req PermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	permission := models.Permission{
		PermissionName:     strings.TrimSpace(req.PermissionName),
		PermissionKey:      strings.TrimSpace(req.PermissionKey),
		PermissionSequence: req.PermissionSequence,
	}
	if req.IsActive != nil {
		permission.IsActive = *req.IsActive
	} else {
		permission.IsActive = true
	}
	for _, sub := range req.SubPermissions {
		permission.SubPermissions = append(permission.SubPermissions, models.SubPermission{
			PermissionName:     strings.TrimSpace(sub.PermissionName),
			PermissionKey:      strings.TrimSpace(sub.PermissionKey),
			PermissionSequence: sub.PermissionSequence,
		})
	}

	if err := database.DB.Create(&permission).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A permission with that key already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Permission created", "permission": permission})
}

// UpdatePermission replaces the sub-permission list wholesale; sequence
// ordering is the client's responsibility.
func UpdatePermission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid permission id"})
	}

	var permission models.Permission
	if err := database.DB.Preload("SubPermissions").First(&permission, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Permission not found"})
	}

	var req PermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	permission.PermissionName = strings.TrimSpace(req.PermissionName)
	permission.PermissionKey = strings.TrimSpace(req.PermissionKey)
	permission.PermissionSequence = req.PermissionSequence
	if req.IsActive != nil {
		permission.IsActive = *req.IsActive
	}

	if err := database.DB.Where("permission_id = ?", permission.ID).Delete(&models.SubPermission{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update permission"})
	}
	permission.SubPermissions = nil
	for _, sub := range req.SubPermissions {
		permission.SubPermissions = append(permission.SubPermissions, models.SubPermission{
			PermissionID:       permission.ID,
			PermissionName:     strings.TrimSpace(sub.PermissionName),
			PermissionKey:      strings.TrimSpace(sub.PermissionKey),
			PermissionSequence: sub.PermissionSequence,
		})
	}

	if err := database.DB.Save(&permission).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update permission"})
	}
	return c.JSON(fiber.Map{"message": "Permission updated", "permission": permission})
}

func DeletePermission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid permission id"})
	}

	if err := database.DB.Where("permission_id = ?", id).Delete(&models.SubPermission{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete permission"})
	}

	result := database.DB.Delete(&models.Permission{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete permission"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Permission not found"})
	}
	return c.JSON(fiber.Map{"message": "Permission deleted"})
}
