package database

import (
	"fmt"
	"log"
	"strings"

	config "github.com/oggotrip/oggo-backend/configs"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.SubPermission{},
		&models.PaymentMethod{},
		&models.PassengerBooking{},
		&models.Transaction{},
		&models.Promotion{},
		&models.OTP{},
		&models.DuffelOrder{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

var defaultAdminPermissions = models.StringList{
	"readusers", "writeusers", "deleteusers", "addusers", "updateusers",
	"addbookings", "viewbookings", "deletebookings",
}

// SeedAdmin makes sure at least one admin account exists so the dashboard
// is reachable on a fresh deployment.
func SeedAdmin() {
	var count int64
	if err := DB.Model(&models.User{}).Where("type = ?", models.UserTypeAdmin).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}
	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	adminUsername := strings.ToLower(envOrDefault("ADMIN_USERNAME", "admin"))
	adminEmail := strings.ToLower(envOrDefault("ADMIN_EMAIL", "admin@oggoair.com"))
	adminPassword := envOrDefault("ADMIN_PASSWORD", "Admin@12345")

	var adminRole models.Role
	err := DB.Where("name = ?", "admin").First(&adminRole).Error
	if err == gorm.ErrRecordNotFound {
		adminRole = models.Role{Name: "admin", Permissions: defaultAdminPermissions}
		if err := DB.Create(&adminRole).Error; err != nil {
			log.Fatalf("🔥 Failed to create admin role: %v", err)
			return
		}
		log.Println("Admin role created")
	} else if err != nil {
		log.Fatalf("🔥 Failed to look up admin role: %v", err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	referralCode := utils.GenerateReferralCode()
	adminUser := models.User{
		FirstName:    envOrDefault("ADMIN_FIRST_NAME", "Administrator"),
		LastName:     envOrDefault("ADMIN_LAST_NAME", ""),
		Username:     &adminUsername,
		Email:        adminEmail,
		Password:     string(hashedPassword),
		Type:         models.UserTypeAdmin,
		RoleID:       &adminRole.ID,
		ReferralCode: &referralCode,
	}
	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

func envOrDefault(key, fallback string) string {
	if v := config.Config(key); v != "" {
		return v
	}
	return fallback
}
