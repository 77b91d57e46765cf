package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OTPPurposeRegistration  = "registration"
	OTPPurposeLogin         = "login"
	OTPPurposeBooking       = "booking"
	OTPPurposePasswordReset = "password_reset"
)

// OTP holds a one-time code plus the signup payload captured while the
// email is being verified.
type OTP struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email      string    `gorm:"size:255;not null;index:idx_otp_email_purpose" json:"email"`
	Code       string    `gorm:"size:6;not null" json:"-"`
	Purpose    string    `gorm:"size:20;not null;default:'booking';index:idx_otp_email_purpose" json:"purpose"`
	IsUsed     bool      `gorm:"default:false" json:"isUsed"`
	IsVerified bool      `gorm:"default:false" json:"isVerified"`
	ExpiresAt  time.Time `gorm:"not null;index" json:"expiresAt"`
	UserData   JSONB     `gorm:"type:jsonb" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (o *OTP) IsExpired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}
