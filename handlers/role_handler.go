package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/models"
)

type RoleRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=50"`
	Permissions []string `json:"permissions" validate:"required,min=1"`
}

func ListRoles(c *fiber.Ctx) error {
	var roles []models.Role
	if err := database.DB.Order("name ASC").Find(&roles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch roles"})
	}
	return c.JSON(fiber.Map{"roles": roles})
}

func GetRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role id"})
	}

	var role models.Role
	if err := database.DB.First(&role, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
	}
	return c.JSON(fiber.Map{"role": role})
}

// CreateRole validates every permission key against the permission catalog
// before the role is saved, so a role can never grant a key that does not
// exist.
func CreateRole(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if unknown := unknownPermissionKeys(req.Permissions); len(unknown) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":       "Unknown permission keys",
			"permissions": unknown,
		})
	}

	role := models.Role{
		Name:        strings.TrimSpace(req.Name),
		Permissions: models.StringList(req.Permissions),
	}
	if err := database.DB.Create(&role).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A role with that name already exists"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Role created", "role": role})
}

func UpdateRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role id"})
	}

	var role models.Role
	if err := database.DB.First(&role, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
	}

	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if unknown := unknownPermissionKeys(req.Permissions); len(unknown) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":       "Unknown permission keys",
			"permissions": unknown,
		})
	}

	role.Name = strings.TrimSpace(req.Name)
	role.Permissions = models.StringList(req.Permissions)
	if err := database.DB.Save(&role).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update role"})
	}

	return c.JSON(fiber.Map{"message": "Role updated", "role": role})
}

// DeleteRole refuses while any user still holds the role.
func DeleteRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role id"})
	}

	var assigned int64
	database.DB.Model(&models.User{}).Where("role_id = ?", id).Count(&assigned)
	if assigned > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Role is still assigned to users"})
	}

	result := database.DB.Delete(&models.Role{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete role"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
	}
	return c.JSON(fiber.Map{"message": "Role deleted"})
}

// unknownPermissionKeys returns requested keys that match neither a
// top-level permission nor a sub-permission.
func unknownPermissionKeys(keys []string) []string {
	known := map[string]bool{}

	var permissions []models.Permission
	database.DB.Preload("SubPermissions").Find(&permissions)
	for _, p := range permissions {
		known[p.PermissionKey] = true
		for _, sub := range p.SubPermissions {
			known[sub.PermissionKey] = true
		}
	}

	var unknown []string
	for _, key := range keys {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	return unknown
}
