package models

import (
	"time"

	"github.com/google/uuid"
)

// DuffelOrder mirrors one flight order fetched from the Duffel API. The
// full order payload is kept verbatim in Data; the indexed columns exist
// only for lookups and dashboards.
type DuffelOrder struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DuffelOrderID    string     `gorm:"size:64;not null;unique;index" json:"duffelOrderId"`
	BookingReference *string    `gorm:"size:30;index" json:"bookingReference"`
	Status           *string    `gorm:"size:30;index" json:"status"`
	PassengerNames   StringList `gorm:"type:jsonb" json:"passengerNames"`
	TotalAmount      *string    `gorm:"size:20" json:"totalAmount"`
	Currency         *string    `gorm:"size:3" json:"currency"`
	Data             JSONB      `gorm:"type:jsonb;not null" json:"data"`
	LastSyncedAt     time.Time  `json:"lastSyncedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
