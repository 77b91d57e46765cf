package models

import (
	"time"

	"github.com/google/uuid"
)

type SubPermission struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PermissionID       uuid.UUID `gorm:"not null;index" json:"-"`
	PermissionName     string    `gorm:"size:100;not null" json:"permissionName"`
	PermissionKey      string    `gorm:"size:50;not null" json:"permissionKey"`
	PermissionSequence int       `gorm:"not null" json:"permissionSequence"`
}

type Permission struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PermissionName     string          `gorm:"size:100;not null" json:"permissionName"`
	PermissionKey      string          `gorm:"size:50;not null;unique" json:"permissionKey"`
	PermissionSequence int             `gorm:"not null" json:"permissionSequence"`
	SubPermissions     []SubPermission `gorm:"foreignkey:PermissionID" json:"subPermissions"`
	IsActive           bool            `gorm:"default:true" json:"isActive"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
