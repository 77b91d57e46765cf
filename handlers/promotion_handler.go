package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/oggotrip/oggo-backend/configs"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/models"
)

// ListPromotions is public: the landing page carousel only sees active
// promotions. Admins pass ?all=true to see the full set.
func ListPromotions(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Promotion{})
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var promotions []models.Promotion
	if err := query.Order("created_at DESC").Find(&promotions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch promotions"})
	}
	return c.JSON(fiber.Map{"promotions": promotions})
}

// CreatePromotion accepts multipart form data: heading, subHeading and an
// image file uploaded to Cloudinary.
func CreatePromotion(c *fiber.Ctx) error {
	heading := strings.TrimSpace(c.FormValue("heading"))
	subHeading := strings.TrimSpace(c.FormValue("subHeading"))
	if heading == "" || subHeading == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Heading and sub-heading are required"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A promotion image is required"})
	}

	imageURL, err := uploadPromotionImage(fileHeader, heading)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload promotion image"})
	}

	promotion := models.Promotion{
		Heading:    heading,
		SubHeading: subHeading,
		Image:      imageURL,
		IsActive:   true,
	}
	if err := database.DB.Create(&promotion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create promotion"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Promotion created", "promotion": promotion})
}

func UpdatePromotion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid promotion id"})
	}

	var promotion models.Promotion
	if err := database.DB.First(&promotion, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Promotion not found"})
	}

	if heading := strings.TrimSpace(c.FormValue("heading")); heading != "" {
		promotion.Heading = heading
	}
	if subHeading := strings.TrimSpace(c.FormValue("subHeading")); subHeading != "" {
		promotion.SubHeading = subHeading
	}
	if isActive := c.FormValue("isActive"); isActive != "" {
		promotion.IsActive = isActive == "true"
	}
	if fileHeader, err := c.FormFile("image"); err == nil {
		imageURL, uploadErr := uploadPromotionImage(fileHeader, promotion.Heading)
		if uploadErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload promotion image"})
		}
		promotion.Image = imageURL
	}

	if err := database.DB.Save(&promotion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update promotion"})
	}
	return c.JSON(fiber.Map{"message": "Promotion updated", "promotion": promotion})
}

func DeletePromotion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid promotion id"})
	}

	result := database.DB.Delete(&models.Promotion{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete promotion"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Promotion not found"})
	}
	return c.JSON(fiber.Map{"message": "Promotion deleted"})
}

func uploadPromotionImage(fileHeader *multipart.FileHeader, heading string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	slug := strings.ToLower(strings.ReplaceAll(heading, " ", "_"))
	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: fmt.Sprintf("%s_%s", slug, uuid.New().String()),
		Folder:   "oggotrip_promotions",
	})
	if err != nil {
		return "", err
	}
	return uploadResult.SecureURL, nil
}
