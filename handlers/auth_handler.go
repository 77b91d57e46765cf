package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	config "github.com/oggotrip/oggo-backend/configs"
	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/middleware"
	"github.com/oggotrip/oggo-backend/models"
	"github.com/oggotrip/oggo-backend/notifications"
	"github.com/oggotrip/oggo-backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

const otpValidity = 10 * time.Minute

type SignupRequest struct {
	FirstName string  `json:"firstName" validate:"required,min=2"`
	LastName  string  `json:"lastName" validate:"required,min=2"`
	Username  *string `json:"username,omitempty"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty"`
	Password  string  `json:"password" validate:"required,min=8"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Signup stores the registration payload against a fresh OTP instead of
// creating the account immediately. The user only exists once the code is
// verified.
func Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}
	req.Password = string(hashedPassword)

	userData, err := json.Marshal(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare signup data"})
	}

	code := utils.GenerateOTP()

	// One live registration OTP per email.
	database.DB.Where("email = ? AND purpose = ?", req.Email, models.OTPPurposeRegistration).
		Delete(&models.OTP{})

	otp := models.OTP{
		Email:     req.Email,
		Code:      code,
		Purpose:   models.OTPPurposeRegistration,
		ExpiresAt: time.Now().Add(otpValidity),
		UserData:  models.JSONB(userData),
	}
	if err := database.DB.Create(&otp).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start registration"})
	}

	if err := notifications.SendOTPEmail(req.Email, code); err != nil {
		log.Printf("🔥 Failed to send OTP email to %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send verification email"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Verification code sent. Check your email to complete registration.",
		"email":   req.Email,
	})
}

// VerifyOTP checks the registration code and, on success, creates the
// account from the payload stored alongside it.
func VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var otp models.OTP
	err := database.DB.
		Where("email = ? AND purpose = ? AND is_used = ?", req.Email, models.OTPPurposeRegistration, false).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired verification code"})
	}
	if otp.IsExpired(time.Now()) || otp.Code != req.Code {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired verification code"})
	}

	var signup SignupRequest
	if err := json.Unmarshal(otp.UserData, &signup); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Corrupt registration data, please sign up again"})
	}

	var newUser models.User
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		referralCode := utils.GenerateReferralCode()

		newUser = models.User{
			FirstName:    signup.FirstName,
			LastName:     signup.LastName,
			Username:     signup.Username,
			Email:        signup.Email,
			Phone:        signup.Phone,
			Password:     signup.Password,
			Type:         models.UserTypeCustomer,
			ReferralCode: &referralCode,
		}
		if err := tx.Create(&newUser).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New("email already exists")
			}
			return err
		}

		otp.IsUsed = true
		otp.IsVerified = true
		return tx.Save(&otp).Error
	})
	if err != nil {
		if err.Error() == "email already exists" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
	}

	go notifications.SendEmail(newUser.FullName(), newUser.Email, "Welcome to OggoTrip!",
		"<h1>Welcome aboard!</h1><p>Your account is ready. Happy travels.</p>")

	accessToken, refreshToken, err := issueTokens(&newUser)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Account created successfully",
		"user":         newUser.Profile(),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// ResendOTP issues a fresh code for a pending registration.
func ResendOTP(c *fiber.Ctx) error {
	type Request struct {
		Email string `json:"email" validate:"required,email"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var otp models.OTP
	err := database.DB.
		Where("email = ? AND purpose = ? AND is_used = ?", email, models.OTPPurposeRegistration, false).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No pending registration for this email"})
	}

	code := utils.GenerateOTP()
	otp.Code = code
	otp.ExpiresAt = time.Now().Add(otpValidity)
	if err := database.DB.Save(&otp).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to refresh verification code"})
	}

	if err := notifications.SendOTPEmail(email, code); err != nil {
		log.Printf("🔥 Failed to resend OTP email to %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send verification email"})
	}

	return c.JSON(fiber.Map{"message": "Verification code resent"})
}

// Login accepts either a username or an email as the identifier.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	identifier := strings.TrimSpace(req.Identifier)

	var user models.User
	result := database.DB.Preload("Role").
		Where("email = ? OR username = ?", strings.ToLower(identifier), identifier).
		First(&user)
	if result.Error != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is deactivated"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	accessToken, refreshToken, err := issueTokens(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	now := time.Now()
	database.DB.Model(&user).Updates(map[string]interface{}{
		"last_login":    now,
		"refresh_token": refreshToken,
	})

	return c.JSON(fiber.Map{
		"user":         user.Profile(),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// RefreshToken exchanges a stored refresh token for a new token pair.
func RefreshToken(c *fiber.Ctx) error {
	type Request struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := jwt.Parse(req.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired refresh token"})
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["kind"] != "refresh" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired refresh token"})
	}

	var user models.User
	if err := database.DB.Where("id = ? AND refresh_token = ?", claims["user_id"], req.RefreshToken).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired refresh token"})
	}

	accessToken, refreshToken, err := issueTokens(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	database.DB.Model(&user).Update("refresh_token", refreshToken)

	return c.JSON(fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// Logout clears the stored refresh token so it can no longer be exchanged.
func Logout(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	database.DB.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token", nil)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := database.DB.Preload("Role").First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"user": user.Profile()})
}

type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Username       *string `json:"username,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	DateOfBirth    *string `json:"dateOfBirth,omitempty"`
	CountryOfBirth *string `json:"countryOfBirth,omitempty"`
	PassportNumber *string `json:"passportNumber,omitempty"`
	Address        *struct {
		Street     *string `json:"street,omitempty"`
		City       *string `json:"city,omitempty"`
		State      *string `json:"state,omitempty"`
		Country    *string `json:"country,omitempty"`
		PostalCode *string `json:"postalCode,omitempty"`
	} `json:"address,omitempty"`
}

func UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dateOfBirth must be YYYY-MM-DD"})
		}
		updates["date_of_birth"] = dob
	}
	if req.CountryOfBirth != nil {
		updates["country_of_birth"] = *req.CountryOfBirth
	}
	if req.PassportNumber != nil {
		passport := utils.UpperTrim(*req.PassportNumber)
		updates["passport_number"] = passport
	}
	if req.Address != nil {
		if req.Address.Street != nil {
			updates["address_street"] = *req.Address.Street
		}
		if req.Address.City != nil {
			updates["address_city"] = *req.Address.City
		}
		if req.Address.State != nil {
			updates["address_state"] = *req.Address.State
		}
		if req.Address.Country != nil {
			updates["address_country"] = *req.Address.Country
		}
		if req.Address.PostalCode != nil {
			updates["address_postal_code"] = *req.Address.PostalCode
		}
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
		}
	}

	database.DB.Preload("Role").First(&user, "id = ?", userID)
	return c.JSON(fiber.Map{"message": "Profile updated", "user": user.Profile()})
}

func issueTokens(user *models.User) (string, string, error) {
	secret := []byte(config.Config("JWT_SECRET"))

	accessClaims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"type":    user.Type,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(secret)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"kind":    "refresh",
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(secret)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
