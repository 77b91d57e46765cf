package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserTypeCustomer = "customer"
	UserTypeAdmin    = "admin"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName      string     `gorm:"size:50" json:"firstName"`
	LastName       string     `gorm:"size:50" json:"lastName"`
	Username       *string    `gorm:"size:30" json:"username"`
	Email          string     `gorm:"size:255;not null;unique" json:"email"`
	Phone          *string    `gorm:"size:30" json:"phone"`
	Password       string     `json:"-"`
	Type           string     `gorm:"size:20;not null;default:'customer';index" json:"type"`
	RoleID         *uuid.UUID `gorm:"index" json:"role"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	CountryOfBirth *string    `gorm:"size:100" json:"countryOfBirth"`
	PassportNumber *string    `gorm:"size:20;unique" json:"passportNumber"`

	AddressStreet     *string `gorm:"size:200" json:"-"`
	AddressCity       *string `gorm:"size:100" json:"-"`
	AddressState      *string `gorm:"size:100" json:"-"`
	AddressCountry    *string `gorm:"size:100" json:"-"`
	AddressPostalCode *string `gorm:"size:20" json:"-"`

	ReferralCode *string `gorm:"size:10;unique" json:"referralCode"`

	IsActive     bool       `gorm:"default:true" json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin"`
	RefreshToken *string    `gorm:"size:512" json:"-"`

	Role           *Role           `gorm:"foreignkey:RoleID" json:"-"`
	PaymentMethods []PaymentMethod `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

// Profile is the user shape returned to clients, password and tokens
// excluded.
func (u *User) Profile() map[string]interface{} {
	profile := map[string]interface{}{
		"id":             u.ID,
		"firstName":      u.FirstName,
		"lastName":       u.LastName,
		"username":       u.Username,
		"email":          u.Email,
		"phone":          u.Phone,
		"dateOfBirth":    u.DateOfBirth,
		"countryOfBirth": u.CountryOfBirth,
		"passportNumber": u.PassportNumber,
		"type":           u.Type,
		"isActive":       u.IsActive,
		"lastLogin":      u.LastLogin,
		"address": map[string]interface{}{
			"street":     u.AddressStreet,
			"city":       u.AddressCity,
			"state":      u.AddressState,
			"country":    u.AddressCountry,
			"postalCode": u.AddressPostalCode,
		},
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
	if u.Role != nil {
		profile["role"] = map[string]interface{}{
			"id":          u.Role.ID,
			"name":        u.Role.Name,
			"permissions": u.Role.Permissions,
		}
	} else {
		profile["role"] = u.RoleID
	}
	return profile
}
