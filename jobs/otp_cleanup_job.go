package jobs

import (
	"log"
	"time"

	"github.com/oggotrip/oggo-backend/database"
	"github.com/oggotrip/oggo-backend/models"
)

// CleanupExpiredOTPs removes codes that expired more than an hour ago.
// Recently expired codes are kept so "code expired" can be distinguished
// from "no registration in progress".
func CleanupExpiredOTPs() {
	log.Println("Running job: CleanupExpiredOTPs...")

	cutoff := time.Now().Add(-1 * time.Hour)

	result := database.DB.Where("expires_at < ?", cutoff).Delete(&models.OTP{})
	if result.Error != nil {
		log.Printf("Error cleaning up expired OTPs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Removed %d expired OTP(s).", result.RowsAffected)
	}
}
