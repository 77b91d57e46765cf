package models

import (
	"time"

	"github.com/google/uuid"
)

type Promotion struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Heading    string    `gorm:"size:100;not null" json:"heading"`
	SubHeading string    `gorm:"size:200;not null" json:"subHeading"`
	Image      string    `gorm:"size:1024;not null" json:"image"`
	IsActive   bool      `gorm:"default:true;index" json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
