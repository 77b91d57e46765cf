package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"not null;index" json:"-"`
	PaymentMethodID string    `gorm:"size:255;not null" json:"paymentMethodId"`
	Provider        string    `gorm:"size:20;not null;default:'revolut'" json:"provider"`
	Type            string    `gorm:"size:20;not null;default:'card'" json:"type"`
	CardBrand       *string   `gorm:"size:20" json:"cardBrand"`
	Last4           *string   `gorm:"size:4" json:"last4"`
	ExpiryMonth     *string   `gorm:"size:2" json:"expiryMonth"`
	ExpiryYear      *string   `gorm:"size:4" json:"expiryYear"`
	IsDefault       bool      `gorm:"default:false" json:"isDefault"`
	Nickname        *string   `gorm:"size:50" json:"nickname"`
	AddedAt         time.Time `gorm:"autoCreateTime" json:"addedAt"`
}
